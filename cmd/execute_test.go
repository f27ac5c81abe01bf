package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"dibuild/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
[module]
name = "hello"

[compile-unit]
file = "hello.c"
directory = "/src"
language = "c11"

[[types]]
name = "int"
size = 32
encoding = "signed"

[[functions]]
name = "main"
line = 1
types = ["int"]

  [[functions.locations]]
  line = 2
  column = 3
`

func writeManifest(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hello.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestEmit(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	path := writeManifest(t, testManifest)
	outPath := filepath.Join(filepath.Dir(path), "out.ll")

	require.Equal(t, 0, emit(path, outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@main")
	assert.Contains(t, string(data), "hello.c")
}

func TestEmitDefaultOutput(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	path := writeManifest(t, testManifest)
	require.Equal(t, 0, emit(path, ""))

	_, err := os.Stat(filepath.Join(filepath.Dir(path), "hello.ll"))
	assert.NoError(t, err)
}

func TestEmitInvalidManifest(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	path := writeManifest(t, "[module]\nname = \"hello\"\n")
	assert.Equal(t, 1, emit(path, ""))
	assert.True(t, report.AnyErrors())
}

func TestRunVersion(t *testing.T) {
	assert.Equal(t, 0, run([]string{"dibuild", "version"}))
}
