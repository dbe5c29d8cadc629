package debugger

import (
	"fmt"
	"strings"
)

// LLDBUnavailable is printed by lldb for variables that are optimized out or out of scope.
const LLDBUnavailable = "<variable not available>"

// LLDB drives lldb with --batch --source.
type LLDB struct{}

func (LLDB) Name() string { return "lldb" }

func (LLDB) SetBreakpoint(line, column int) string {
	return fmt.Sprintf("breakpoint set --line %d --column %d", line, column)
}

func (LLDB) Run() string { return "run" }

func (LLDB) Continue() string { return "c" }

func (LLDB) ReadVariable(name string) string {
	return "frame variable " + name
}

func (LLDB) Terminate() []string { return []string{"exit"} }

func (LLDB) BatchArgs(scriptPath, executable string) []string {
	return []string{"--batch", "--source", scriptPath, executable}
}

// Extract looks for "(type) name = value". The search starts after the echoed
// frame variable command when lldb echoes it, so program output printed before
// the breakpoint cannot shadow the real value.
func (l LLDB) Extract(output, variable string) Extraction {
	from := 0
	if idx := strings.LastIndex(output, l.ReadVariable(variable)); idx >= 0 {
		from = idx + len(l.ReadVariable(variable))
	}

	raw, ok := rawToken(output, variable+" = ", from)
	if !ok {
		return ParseError("", fmt.Errorf("marker %q not found in debugger output", variable+" = "))
	}
	if raw == LLDBUnavailable {
		return Unavailable(raw)
	}

	n, err := parseInteger(raw)
	if err != nil {
		return ParseError(raw, err)
	}
	return Value(n, raw)
}
