package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	testErr := errors.New("test error")
	tests := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("symbol", "i32_add"), "symbol", "i32_add"},
		{"Int", Int("workers", 8), "workers", 8},
		{"Uint64", Uint64("word", 0xffff_ffff_8000_0000), "word", uint64(0xffff_ffff_8000_0000)},
		{"Float64", Float64("result", 0.5), "result", 0.5},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err", Err(testErr), "error", testErr},
		{"Err with nil", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.wantKey)
			}
			if tt.field.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.wantValue)
			}
		})
	}
}

func TestNewZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))
	if adapter == nil {
		t.Fatal("NewZerologAdapter returned nil")
	}

	adapter.Info("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("NewZerologAdapter logger not working, output: %s", buf.String())
	}
}

func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "server")
	logger.Info("listening")

	output := buf.String()
	if !strings.Contains(output, `"component":"server"`) {
		t.Errorf("NewLogger should include component field, got: %s", output)
	}
	if !strings.Contains(output, "listening") {
		t.Errorf("NewLogger should include message, got: %s", output)
	}
}

func TestNewConsoleLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantErr   bool
	}{
		{"default level hides debug", "", false, false},
		{"debug level shows debug", "debug", true, false},
		{"level is case insensitive", "DEBUG", true, false},
		{"unknown level", "chatty", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewConsoleLogger(&buf, "repl", tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error for an unknown level")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConsoleLogger: %v", err)
			}
			logger.Debug("decoded operands", String("a", "0x7fff"))
			logger.Info("evaluated")

			output := buf.String()
			if got := strings.Contains(output, "decoded operands"); got != tt.wantDebug {
				t.Errorf("debug entry present = %v, want %v; output: %s", got, tt.wantDebug, output)
			}
			if !strings.Contains(output, "evaluated") {
				t.Errorf("info entry missing, output: %s", output)
			}
		})
	}
}

func TestZerologAdapter_Info(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		fields   []Field
		contains []string
	}{
		{
			name:     "no fields",
			msg:      "test message",
			contains: []string{"test message", "info"},
		},
		{
			name:     "with string field",
			msg:      "call",
			fields:   []Field{String("symbol", "i16_negate")},
			contains: []string{"call", "i16_negate"},
		},
		{
			name:     "with multiple fields",
			msg:      "request processed",
			fields:   []Field{String("method", "GET"), Int("status", 200)},
			contains: []string{"request processed", "GET", "200"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Info(tt.msg, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestZerologAdapter_Error(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		err      error
		fields   []Field
		contains []string
	}{
		{
			name:     "with error",
			msg:      "call failed",
			err:      errors.New("i32_divide: integer division by zero"),
			contains: []string{"call failed", "division by zero", "error"},
		},
		{
			name:     "with nil error",
			msg:      "warning",
			contains: []string{"warning", "error"},
		},
		{
			name:     "with error and fields",
			msg:      "verify failed",
			err:      errors.New("timeout"),
			fields:   []Field{String("kind", "i64"), Int("worker", 3)},
			contains: []string{"verify failed", "timeout", "i64", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Error(tt.msg, tt.err, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("debug message", String("key", "value"))

	output := buf.String()
	if !strings.Contains(output, "debug message") || !strings.Contains(output, "debug") {
		t.Errorf("Debug output should contain message and level, got: %s", output)
	}
}

func TestZerologAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "server").With(String("request_id", "r-17"))

	logger.Info("first")
	logger.Info("second")

	if n := strings.Count(buf.String(), "r-17"); n != 2 {
		t.Errorf("request_id should appear on both entries, found %d; output: %s", n, buf.String())
	}
}

func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("formatted %s %d", "message", 42)
	logger.Println("hello", "world")

	output := buf.String()
	if !strings.Contains(output, "formatted message 42") {
		t.Errorf("Printf should format message, got: %s", output)
	}
	if !strings.Contains(output, "hello world") {
		t.Errorf("Println should include all arguments, got: %s", output)
	}
}

func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"duration field", Field{Key: "took", Value: 1500 * time.Millisecond}, "1500"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"interface field", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Info("test", tt.field)

			if output := buf.String(); !strings.Contains(output, tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, output)
			}
		})
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("ignored")
	logger.Error("ignored", errors.New("x"))
}

func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{
			name:     "Info",
			log:      func(l Logger) { l.Info("user action", String("user", "bob")) },
			contains: []string{"[INFO]", "user action", "user=bob"},
		},
		{
			name:     "Error",
			log:      func(l Logger) { l.Error("db failed", errors.New("timeout"), String("db", "mysql")) },
			contains: []string{"[ERROR]", "db failed", "timeout", "mysql"},
		},
		{
			name:     "Debug",
			log:      func(l Logger) { l.Debug("trace", Int("line", 42)) },
			contains: []string{"[DEBUG]", "trace", "line=42"},
		},
		{
			name:     "Printf",
			log:      func(l Logger) { l.Printf("value is %d", 123) },
			contains: []string{"value is 123"},
		},
		{
			name:     "Println",
			log:      func(l Logger) { l.Println("a", "b", "c") },
			contains: []string{"a b c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
	var _ Logger = NewNopLogger()
}
