package files

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineFileFullPath(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "previous.json")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0644))

	tests := []struct {
		name         string
		inputPath    string
		nameTemplate string
		expectFile   string
		expectFolder string
	}{
		{
			name:         "existing directory gets the template name",
			inputPath:    tmpDir,
			nameTemplate: "wmverify-report.json",
			expectFile:   filepath.Join(tmpDir, "wmverify-report.json"),
			expectFolder: tmpDir,
		},
		{
			name:         "existing file is overwritten",
			inputPath:    existing,
			nameTemplate: "ignored.json",
			expectFile:   existing,
			expectFolder: tmpDir,
		},
		{
			name:         "missing path without extension is a folder",
			inputPath:    filepath.Join(tmpDir, "results"),
			nameTemplate: "wmverify-report.sarif",
			expectFile:   filepath.Join(tmpDir, "results", "wmverify-report.sarif"),
			expectFolder: filepath.Join(tmpDir, "results"),
		},
		{
			name:         "missing path with extension is a file",
			inputPath:    filepath.Join(tmpDir, "nested", "out.sarif"),
			nameTemplate: "ignored.json",
			expectFile:   filepath.Join(tmpDir, "nested", "out.sarif"),
			expectFolder: filepath.Join(tmpDir, "nested"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath, folderPath, err := DetermineFileFullPath(tt.inputPath, tt.nameTemplate)
			require.NoError(t, err)
			assert.Equal(t, tt.expectFile, filePath)
			assert.Equal(t, tt.expectFolder, folderPath)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/keys/key.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "keys", "key.txt"), got)

	got, err = ExpandPath("/tmp/key.txt")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/key.txt", got)
}

func TestValidateExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute bits are not meaningful on windows")
	}
	dir := t.TempDir()
	exe := filepath.Join(dir, "watermarked")
	plain := filepath.Join(dir, "key.txt")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755))
	require.NoError(t, os.WriteFile(plain, []byte("1 1 1 x 1\n"), 0644))

	assert.NoError(t, ValidateExecutable(exe))
	assert.ErrorContains(t, ValidateExecutable(plain), "not executable")
	assert.ErrorContains(t, ValidateExecutable(dir), "is a directory")
	assert.Error(t, ValidateExecutable(filepath.Join(dir, "missing")))
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSONFile(path, []byte(`{"a":1}`)))
	require.NoError(t, WriteJSONFile(path, []byte(`{}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
