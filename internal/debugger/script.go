package debugger

import (
	"strings"

	"github.com/scan-io-git/wmverify/internal/watermark"
)

// Script is an ordered list of debugger commands for one session.
type Script []string

// BuildScript returns the commands that stop at the HitCount-th visit of the
// descriptor's location, print its variable and end the session.
func BuildScript(d Dialect, desc watermark.Descriptor) Script {
	script := make(Script, 0, desc.HitCount+3)
	script = append(script, d.SetBreakpoint(desc.Line, desc.Column), d.Run())
	for i := 1; i < desc.HitCount; i++ {
		script = append(script, d.Continue())
	}
	script = append(script, d.ReadVariable(desc.Variable))
	script = append(script, d.Terminate()...)
	return script
}

// String renders the script as newline-terminated commands.
func (s Script) String() string {
	if len(s) == 0 {
		return ""
	}
	return strings.Join(s, "\n") + "\n"
}

// Continues returns the number of continue commands in the script.
func (s Script) Continues(d Dialect) int {
	n := 0
	for _, cmd := range s {
		if cmd == d.Continue() {
			n++
		}
	}
	return n
}
