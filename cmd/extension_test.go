package cmd

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script requires a POSIX shell")
	}
	tempDir := t.TempDir()
	script := `#!/bin/sh
echo "args=$*"
echo "` + EnvDeadLetterFile + `=$` + EnvDeadLetterFile + `"
echo "` + EnvCurrency + `=$` + EnvCurrency + `"
exit 3
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ExtensionPrefix+"hello"), []byte(script), 0755))
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	withDeadLetterFile(t, "dead.jsonl")
	oldCurrency := currency
	xyz := "XYZ"
	currency = &xyz
	t.Cleanup(func() { currency = oldCurrency })

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	found, code := RunExtension("hello", []string{"a", "b"})
	w.Close()
	os.Stdout = oldStdout
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.True(t, found)
	assert.Equal(t, 3, code)
	assert.Contains(t, string(out), "args=a b\n")
	assert.Contains(t, string(out), EnvDeadLetterFile+"=dead.jsonl\n")
	assert.Contains(t, string(out), EnvCurrency+"=XYZ\n")
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	found, code := RunExtension("nope", nil)
	assert.False(t, found)
	assert.Equal(t, 0, code)
}
