package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const applyDiff = "@@ -2,1 +2,1 @@\n-two\n+TWO\n"

func TestApplyCommandConfirmed(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "notes.txt")
	patch := filepath.Join(dir, "change.diff")
	writeFile(t, target, "one\ntwo\nthree\n")
	writeFile(t, patch, applyDiff)

	code, _, errOut := runCLI(t, "y\n", "apply", "--file", target, "--diff", patch)

	require.Equal(t, ExitOK, code, errOut)
	assert.Equal(t, "one\nTWO\nthree\n", readFile(t, target))
}

func TestApplyCommandRejected(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "notes.txt")
	patch := filepath.Join(dir, "change.diff")
	writeFile(t, target, "one\ntwo\nthree\n")
	writeFile(t, patch, applyDiff)

	code, out, _ := runCLI(t, "n\n", "apply", "-f", target, "-d", patch)

	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "left untouched")
	assert.Equal(t, "one\ntwo\nthree\n", readFile(t, target))
}

func TestApplyCommandFromStdinNeedsYes(t *testing.T) {
	target := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, target, "one\ntwo\n")

	code, _, _ := runCLI(t, applyDiff, "apply", "--file", target, "--diff", "-")
	require.Equal(t, ExitUsage, code)

	code, _, errOut := runCLI(t, applyDiff, "apply", "--file", target, "--diff", "-", "--yes")
	require.Equal(t, ExitOK, code, errOut)
	assert.Equal(t, "one\nTWO\n", readFile(t, target))
}

func TestApplyCommandMissingFile(t *testing.T) {
	dir := t.TempDir()
	patch := filepath.Join(dir, "change.diff")
	writeFile(t, patch, applyDiff)

	code, _, errOut := runCLI(t, "", "apply", "--file", filepath.Join(dir, "missing.txt"), "--diff", patch, "--yes")

	require.Equal(t, ExitError, code)
	assert.Contains(t, errOut, "file_not_found")
}

func TestApplyCommandRequiresFlags(t *testing.T) {
	code, _, _ := runCLI(t, "", "apply")
	assert.Equal(t, ExitUsage, code)
}
