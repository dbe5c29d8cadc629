package debugger

import (
	"fmt"
	"sort"
	"strings"
)

// Dialect is the command language and output format of one debugger.
type Dialect interface {
	// Name is the dialect identifier used in configuration.
	Name() string
	SetBreakpoint(line, column int) string
	Run() string
	Continue() string
	ReadVariable(name string) string
	Terminate() []string
	// BatchArgs returns the debugger arguments that execute scriptPath unattended against executable.
	BatchArgs(scriptPath, executable string) []string
	// Extract recovers the value of variable from the captured standard output.
	Extract(output, variable string) Extraction
}

var dialects = map[string]Dialect{
	"lldb": LLDB{},
	"gdb":  GDB{},
}

// Lookup returns the dialect registered under name.
func Lookup(name string) (Dialect, error) {
	if d, ok := dialects[strings.ToLower(name)]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w %q, expected one of: %s", ErrUnknownDialect, name, strings.Join(Names(), ", "))
}

// Names returns the registered dialect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
