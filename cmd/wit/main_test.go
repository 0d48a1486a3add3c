package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

// newWorkspace creates an empty directory, makes it the working directory
// and points the log file at a scratch location.
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Setenv(logDirEnv, t.TempDir())
	chdirForTest(t, dir)
	return dir
}

// runWit executes the full command tree in-process and returns stdout.
func runWit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--quiet"}, args...))

	err := root.Execute()
	closeLogFile()
	logger = zerolog.Nop()
	return out.String(), err
}

func mustWit(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runWit(t, args...)
	require.NoError(t, err, "wit %v", args)
	return out
}

func writeFile(t *testing.T, rel, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(rel), 0o755))
	require.NoError(t, os.WriteFile(rel, []byte(content), 0o644))
}
