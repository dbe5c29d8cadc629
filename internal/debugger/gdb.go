package debugger

import (
	"fmt"
	"regexp"
)

// GDBUnavailable is printed by gdb for variables that are optimized out.
const GDBUnavailable = "<optimized out>"

var (
	gdbValueMarker = regexp.MustCompile(`(?m)^\$[0-9]+ = `)
	gdbStopMarker  = regexp.MustCompile(`(?m)^(?:Thread .* hit )?Breakpoint [0-9]+, `)
)

// GDB drives gdb with -batch -x. gdb has no column breakpoints, so only the
// line is used.
type GDB struct{}

func (GDB) Name() string { return "gdb" }

func (GDB) SetBreakpoint(line, _ int) string {
	return fmt.Sprintf("break %d", line)
}

func (GDB) Run() string { return "run" }

func (GDB) Continue() string { return "continue" }

func (GDB) ReadVariable(name string) string {
	return "print " + name
}

func (GDB) Terminate() []string { return []string{"kill", "quit"} }

func (GDB) BatchArgs(scriptPath, executable string) []string {
	return []string{"-batch", "-nx", "-x", scriptPath, executable}
}

// Extract looks for the "$N = value" line that print emits after the last
// breakpoint stop. Output the program wrote before that stop is ignored, and a
// session that never stopped has no value.
func (GDB) Extract(output, variable string) Extraction {
	stops := gdbStopMarker.FindAllStringIndex(output, -1)
	if len(stops) == 0 {
		return ParseError("", fmt.Errorf("breakpoint was not hit before reading %q", variable))
	}
	from := stops[len(stops)-1][1]

	loc := gdbValueMarker.FindStringIndex(output[from:])
	if loc == nil {
		return ParseError("", fmt.Errorf("no value of %q found in debugger output", variable))
	}

	raw, _ := rawToken(output, output[from+loc[0]:from+loc[1]], from+loc[0])
	if raw == GDBUnavailable {
		return Unavailable(raw)
	}

	n, err := parseInteger(raw)
	if err != nil {
		return ParseError(raw, err)
	}
	return Value(n, raw)
}
