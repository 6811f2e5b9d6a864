package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/numrt/abi"
	apperrors "github.com/agbru/numrt/internal/errors"
	"github.com/agbru/numrt/internal/format"
	"github.com/agbru/numrt/internal/logging"
	"github.com/agbru/numrt/internal/metrics"
)

const (
	contentTypeJSON = "application/json"
	contentTypeCBOR = "application/cbor"
)

type conventionInfo struct {
	Template   string `json:"template" cbor:"template"`
	Prefix     string `json:"prefix,omitempty" cbor:"prefix,omitempty"`
	NarrowInts string `json:"narrow_ints" cbor:"narrow_ints"`
	Float32    string `json:"float32" cbor:"float32"`
	Errors     string `json:"errors" cbor:"errors"`
	Semantics  string `json:"semantics" cbor:"semantics"`
}

type symbolInfo struct {
	Name   string `json:"name" cbor:"name"`
	Symbol string `json:"symbol" cbor:"symbol"`
	Kind   string `json:"kind" cbor:"kind"`
	Op     string `json:"op" cbor:"op"`
	Arity  int    `json:"arity" cbor:"arity"`
}

type symbolsResponse struct {
	Convention conventionInfo `json:"convention" cbor:"convention"`
	Symbols    []symbolInfo   `json:"symbols" cbor:"symbols"`
}

type callRequest struct {
	Name     string   `json:"name" cbor:"name"`
	Operands []string `json:"operands" cbor:"operands"`
}

type batchRequest struct {
	Hex   bool          `json:"hex,omitempty" cbor:"hex,omitempty"`
	Calls []callRequest `json:"calls" cbor:"calls"`
}

// callResult is the outcome of one call. Code carries the HTTP status the
// call would have had on its own, so batch clients can classify results.
type callResult struct {
	Name     string   `json:"name" cbor:"name"`
	Symbol   string   `json:"symbol,omitempty" cbor:"symbol,omitempty"`
	Operands []string `json:"operands,omitempty" cbor:"operands,omitempty"`
	Result   string   `json:"result,omitempty" cbor:"result,omitempty"`
	Word     string   `json:"word,omitempty" cbor:"word,omitempty"`
	Status   string   `json:"status" cbor:"status"`
	Code     int      `json:"code" cbor:"code"`
	Error    string   `json:"error,omitempty" cbor:"error,omitempty"`
}

type batchResponse struct {
	Results []callResult `json:"results" cbor:"results"`
}

type healthResponse struct {
	Status  string                  `json:"status" cbor:"status"`
	Symbols int                     `json:"symbols" cbor:"symbols"`
	Runtime metrics.RuntimeSnapshot `json:"runtime" cbor:"runtime"`
}

type errorResponse struct {
	Error string `json:"error" cbor:"error"`
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	p := abi.ProfileOf(s.evaluator.Convention())
	resp := symbolsResponse{
		Convention: conventionInfo{
			Template:   p.Naming.Template,
			Prefix:     p.Naming.Prefix,
			NarrowInts: p.NarrowInts,
			Float32:    p.Float32,
			Errors:     p.Errors,
			Semantics:  p.Semantics,
		},
	}
	for _, b := range s.evaluator.Bindings() {
		sym := b.Symbol()
		resp.Symbols = append(resp.Symbols, symbolInfo{
			Name:   b.Name,
			Symbol: sym.String(),
			Kind:   sym.Kind.String(),
			Op:     sym.Op.String(),
			Arity:  b.Entry.Arity(),
		})
	}
	s.writeResponse(w, r, http.StatusOK, resp)
}

// handleCall serves GET /v1/call/{symbol}?a=..&b=..[&hex=1].
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("b") && !q.Has("a") {
		res := callResult{
			Name:   r.PathValue("symbol"),
			Code:   http.StatusBadRequest,
			Status: abi.StatusInvalid.String(),
			Error:  "operand b given without operand a",
		}
		s.writeResponse(w, r, res.Code, res)
		return
	}
	var operands []string
	for _, key := range []string{"a", "b"} {
		if !q.Has(key) {
			break
		}
		operands = append(operands, q.Get(key))
	}
	hex, _ := strconv.ParseBool(q.Get("hex"))

	res := s.call(r.Context(), r.PathValue("symbol"), operands, hex)
	s.writeResponse(w, r, res.Code, res)
}

// handleBatch serves POST /v1/batch. The request and the response use the
// encoding named by Content-Type, JSON unless it is application/cbor.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.security.MaxBodyBytes)

	var req batchRequest
	if err := decodeRequest(r, &req); err != nil {
		code := http.StatusBadRequest
		if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
			code = http.StatusRequestEntityTooLarge
		}
		s.writeError(w, r, code, fmt.Errorf("decode batch: %w", err))
		return
	}
	if s.security.MaxBatchSize > 0 && len(req.Calls) > s.security.MaxBatchSize {
		s.writeError(w, r, http.StatusRequestEntityTooLarge,
			fmt.Errorf("batch of %d calls exceeds the limit of %d", len(req.Calls), s.security.MaxBatchSize))
		return
	}

	resp := batchResponse{Results: make([]callResult, 0, len(req.Calls))}
	for _, c := range req.Calls {
		if err := r.Context().Err(); err != nil {
			s.writeError(w, r, http.StatusServiceUnavailable, err)
			return
		}
		resp.Results = append(resp.Results, s.call(r.Context(), c.Name, c.Operands, req.Hex))
	}
	s.writeResponse(w, r, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, r, http.StatusOK, healthResponse{
		Status:  "ok",
		Symbols: len(s.evaluator.Bindings()),
		Runtime: metrics.ReadRuntime(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.log().Debug("metrics: method not allowed", logging.String("method", r.Method))
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// call performs one evaluation inside its own span.
func (s *Server) call(ctx context.Context, name string, operands []string, hex bool) callResult {
	_, span := s.tracer.Start(ctx, "numrt.call", trace.WithAttributes(
		attribute.String("numrt.name", name),
		attribute.Int("numrt.operands", len(operands)),
	))
	defer span.End()

	res := callResult{Name: name}
	ev, err := s.evaluator.Evaluate(name, operands...)
	if err != nil {
		res.Code, res.Status = classifyRequestError(err)
		res.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, res.Status)
		return res
	}

	res.Symbol = ev.Symbol.String()
	for _, v := range ev.Operands {
		res.Operands = append(res.Operands, format.FormatValue(v, hex))
	}
	res.Status = ev.Status.String()
	span.SetAttributes(
		attribute.String("numrt.symbol", res.Symbol),
		attribute.String("numrt.status", res.Status),
	)
	if ev.Failed() {
		res.Code = http.StatusUnprocessableEntity
		res.Error = ev.Err.Error()
		span.SetStatus(codes.Error, res.Status)
		return res
	}
	res.Code = http.StatusOK
	res.Result = format.FormatValue(ev.Result, hex)
	res.Word = format.FormatWord(ev.Word)
	return res
}

func classifyRequestError(err error) (int, string) {
	var unknown *abi.UnknownSymbolError
	var invalid apperrors.ValidationError
	switch {
	case errors.As(err, &unknown):
		return http.StatusNotFound, "unknown_symbol"
	case errors.As(err, &invalid):
		return http.StatusBadRequest, abi.StatusInvalid.String()
	}
	return http.StatusInternalServerError, "internal"
}

func isCBOR(header string) bool {
	mt, _, err := mime.ParseMediaType(header)
	return err == nil && mt == contentTypeCBOR
}

func decodeRequest(r *http.Request, v any) error {
	if isCBOR(r.Header.Get("Content-Type")) {
		return cbor.NewDecoder(r.Body).Decode(v)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeResponse encodes v as CBOR when the request was CBOR or asks for it
// through Accept, and as JSON otherwise.
func (s *Server) writeResponse(w http.ResponseWriter, r *http.Request, code int, v any) {
	if isCBOR(r.Header.Get("Content-Type")) || isCBOR(r.Header.Get("Accept")) {
		data, err := cbor.Marshal(v)
		if err != nil {
			s.log().Error("encode cbor response", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeCBOR)
		w.WriteHeader(code)
		_, _ = w.Write(data)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log().Error("encode json response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	s.log().Debug("request rejected", logging.Int("status", code), logging.Err(err))
	s.writeResponse(w, r, code, errorResponse{Error: err.Error()})
}
