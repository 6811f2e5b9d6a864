package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell generators read flagRegistry, so adding a flag only requires
// appending to it.
type FlagCompletion struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // label for the value in zsh
	IsFile    bool     // true if the flag takes a file path
}

var flagRegistry = []FlagCompletion{
	{Long: "profile", Help: "YAML calling convention profile", IsFile: true, ValueName: "file"},
	{Long: "checked", Help: "Use the checked table"},
	{Long: "hex", Help: "Hexadecimal integer output"},
	{Long: "json", Help: "JSON output"},
	{Long: "quiet", Short: "q", Help: "Print only results"},
	{Long: "verbose", Short: "v", Help: "Print details"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "timeout", Help: "Time limit", Values: []string{"10s", "1m", "5m"}, ValueName: "duration"},
	{Long: "samples", Help: "Random vectors per symbol", Values: []string{"100", "1000", "10000"}, ValueName: "count"},
	{Long: "seed", Help: "Random vector seed", ValueName: "seed"},
	{Long: "workers", Help: "Concurrent verify workers", ValueName: "count"},
	{Long: "addr", Help: "Listen address for serve", Values: []string{":8080", "127.0.0.1:8080"}, ValueName: "address"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
}

// commandHelp pairs each subcommand with its description.
var commandHelp = [][2]string{
	{"call", "Invoke one entry point"},
	{"list", "List entry points"},
	{"verify", "Run the conformance suite"},
	{"repl", "Interactive session"},
	{"serve", "Diagnostic HTTP service"},
	{"profile", "Print the active profile"},
	{"completion", "Generate a completion script"},
	{"version", "Print version information"},
}

var completionShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion writes a completion script for shell. symbols are the
// entry point names offered after "call".
func GenerateCompletion(out io.Writer, shell string, symbols []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, symbols)
	case "zsh":
		return generateZshCompletion(out, symbols)
	case "fish":
		return generateFishCompletion(out, symbols)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(completionShells, ", "))
	}
}

func commandNames() []string {
	names := make([]string, len(commandHelp))
	for i, c := range commandHelp {
		names[i] = c[0]
	}
	return names
}

func generateBashCompletion(out io.Writer, symbols []string) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, "--"+f.Long)
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var cases strings.Builder
	for _, f := range flagRegistry {
		switch {
		case f.IsFile:
			fmt.Fprintf(&cases, "        --%s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", f.Long)
		case len(f.Values) > 0:
			fmt.Fprintf(&cases, "        --%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n", f.Long, strings.Join(f.Values, " "))
		}
	}

	_, err := fmt.Fprintf(out, `# bash completion for numrt
_numrt() {
    local cur prev opts commands symbols
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    commands="%s"
    symbols="%s"

    case "${prev}" in
%s        call)
            COMPREPLY=( $(compgen -W "${symbols}" -- "${cur}") )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ ${cur} == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
    else
        COMPREPLY=( $(compgen -W "${commands}" -- "${cur}") )
    fi
    return 0
}
complete -F _numrt numrt
`, strings.Join(opts, " "), strings.Join(commandNames(), " "), strings.Join(symbols, " "),
		cases.String(), strings.Join(completionShells, " "))
	return err
}

func zshArgEntry(f FlagCompletion) string {
	value := ""
	switch {
	case f.IsFile:
		value = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		value = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		value = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("    '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, f.Help, value)
	}
	return fmt.Sprintf("    '--%s[%s]%s' \\\n", f.Long, f.Help, value)
}

func generateZshCompletion(out io.Writer, symbols []string) error {
	var b strings.Builder
	b.WriteString("#compdef numrt\n\n_numrt() {\n  local -a commands\n  commands=(\n")
	for _, c := range commandHelp {
		fmt.Fprintf(&b, "    '%s:%s'\n", c[0], c[1])
	}
	b.WriteString("  )\n\n  _arguments -C \\\n")
	for _, f := range flagRegistry {
		b.WriteString(zshArgEntry(f))
	}
	b.WriteString("    '1:command:->command' \\\n    '*::arg:->args'\n\n")
	b.WriteString("  case $state in\n    command)\n      _describe 'command' commands\n      ;;\n    args)\n      case $words[1] in\n")
	fmt.Fprintf(&b, "        call)\n          _values 'entry point' %s\n          ;;\n", strings.Join(symbols, " "))
	fmt.Fprintf(&b, "        completion)\n          _values 'shell' %s\n          ;;\n", strings.Join(completionShells, " "))
	b.WriteString("      esac\n      ;;\n  esac\n}\n\n_numrt \"$@\"\n")
	_, err := io.WriteString(out, b.String())
	return err
}

func generateFishCompletion(out io.Writer, symbols []string) error {
	var b strings.Builder
	b.WriteString("# fish completion for numrt\n")
	for _, c := range commandHelp {
		fmt.Fprintf(&b, "complete -c numrt -n __fish_use_subcommand -f -a %s -d '%s'\n", c[0], c[1])
	}
	for _, f := range flagRegistry {
		line := "complete -c numrt -l " + f.Long
		if f.Short != "" {
			line += " -s " + f.Short
		}
		switch {
		case f.IsFile:
			line += " -r -F"
		case len(f.Values) > 0:
			line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
		case f.ValueName != "":
			line += " -x"
		}
		fmt.Fprintf(&b, "%s -d '%s'\n", line, f.Help)
	}
	fmt.Fprintf(&b, "complete -c numrt -n '__fish_seen_subcommand_from call' -f -a '%s'\n", strings.Join(symbols, " "))
	fmt.Fprintf(&b, "complete -c numrt -n '__fish_seen_subcommand_from completion' -f -a '%s'\n", strings.Join(completionShells, " "))
	_, err := io.WriteString(out, b.String())
	return err
}
