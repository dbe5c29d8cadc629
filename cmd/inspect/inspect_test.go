package inspect

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/wmverify/internal/debugger"
	"github.com/scan-io-git/wmverify/internal/watermark"
)

const fakeGDB = `#!/bin/sh
script="$4"
var=$(sed -n 's/^print //p' "$script")
echo '$1 = 7'
echo "Breakpoint 1, main () at main.c:10"
case "$var" in
  wm) echo '$2 = 42' ;;
  gone) echo '$2 = <optimized out>' ;;
  *) echo "No symbol \"$var\" in current context." ;;
esac
`

func setup(t *testing.T) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	dir := t.TempDir()
	dbg := filepath.Join(dir, "gdb")
	exe := filepath.Join(dir, "watermarked")
	require.NoError(t, os.WriteFile(dbg, []byte(fakeGDB), 0755))
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755))
	return dbg, exe
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var options RunOptionsInspect
	cmd := &cobra.Command{
		Use:          "inspect",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &options)
		},
	}
	addFlags(cmd.Flags(), &options)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color", "-d", "gdb", "--temp-folder", t.TempDir()}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestInspectValue(t *testing.T) {
	dbg, exe := setup(t)

	out, err := execute(t, dbg, exe, "-l", "10", "-n", "3", "-v", "wm", "-e", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Descriptor: 10 1 3 wm 42\n")
	assert.Contains(t, out, "Kind:       value\n")
	assert.Contains(t, out, "Value:      42\n")
	assert.Contains(t, out, "WATERMARK CORRECT\n")
}

func TestInspectWithoutExpected(t *testing.T) {
	dbg, exe := setup(t)

	out, err := execute(t, dbg, exe, "-l", "10", "-v", "wm")
	require.NoError(t, err)
	assert.Contains(t, out, "Value:      42\n")
	assert.NotContains(t, out, "WATERMARK")
}

func TestInspectUnavailable(t *testing.T) {
	dbg, exe := setup(t)

	out, err := execute(t, dbg, exe, "-l", "10", "-v", "gone", "-e", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Kind:       unavailable\n")
	assert.Contains(t, out, "WATERMARK UNAVAILABLE\n")
}

func TestInspectParseError(t *testing.T) {
	dbg, exe := setup(t)

	out, err := execute(t, "--show-output", dbg, exe, "-l", "10", "-v", "missing")
	assert.ErrorIs(t, err, debugger.ErrExtraction)
	assert.Contains(t, out, "--- script\nbreak 10\nrun\nprint missing\n")
	assert.Contains(t, out, "No symbol \"missing\" in current context.")
}

func TestValidateInspectArgs(t *testing.T) {
	dbg, exe := setup(t)
	valid := func() RunOptionsInspect {
		o := RunOptionsInspect{Dialect: "gdb"}
		o.Line, o.Column, o.HitCount, o.Variable = 10, 1, 1, "wm"
		return o
	}

	options := valid()
	target, desc, err := validateInspectArgs(&options, []string{dbg, exe}, nil)
	require.NoError(t, err)
	assert.Equal(t, Target{Debugger: dbg, Executable: exe}, target)
	assert.Equal(t, "wm", desc.Variable)

	options = valid()
	options.Variable = "wm; kill"
	_, _, err = validateInspectArgs(&options, []string{dbg, exe}, nil)
	assert.ErrorIs(t, err, watermark.ErrMalformedDescriptor)

	options = valid()
	_, _, err = validateInspectArgs(&options, []string{exe}, nil)
	assert.ErrorContains(t, err, "the debugger path must be specified")

	options = valid()
	_, _, err = validateInspectArgs(&options, nil, nil)
	assert.ErrorContains(t, err, "expected [DEBUGGER_PATH] EXECUTABLE_PATH, got 0 argument(s)")
}
