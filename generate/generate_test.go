package generate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"dibuild/llvm"
	"dibuild/manifest"

	"github.com/llir/llvm/ir/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoManifest = `
[module]
name = "demo"

[compile-unit]
file = "filename"
directory = "directory"
language = "rust"
emission-kind = "line-tables-only"
producer = "inkwell test"

[[types]]
name = "i32"
size = 32
encoding = "signed"

[[types]]
name = "f64"
size = 64
encoding = "float"

[[modules]]
name = "core"

[[functions]]
name = "function"
linkage-name = "_Z8functioni"
line = 3
flags = ["public"]

  [[functions.locations]]
  line = 3
  column = 1

[[functions]]
name = "scale"
scope = "core"
line = 7
types = ["f64", "f64", "i32"]

  [[functions.blocks]]
  line = 8
  column = 3

  [[functions.locations]]
  line = 8
  column = 5
  block = 1

  [[functions.locations]]
  line = 9
  column = 5
  block = 1
  inlined-at = 1
`

func loadDemo(t *testing.T) *manifest.Manifest {
	t.Helper()

	m, err := manifest.Parse([]byte(demoManifest))
	require.NoError(t, err)
	return m
}

func TestGenerate(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	g := NewGenerator(ctx, loadDemo(t), zerolog.Nop())
	mod := g.Generate()

	assert.Equal(t, llvm.BuilderDisposed, g.dib.State())
	assert.Equal(t, llvm.DWARFSourceLanguageRust, g.cu.Language())
	assert.False(t, g.scopes["core"].IsNil())

	fn, ok := mod.GetFunction("function")
	require.True(t, ok)

	sp, ok := fn.Subprogram()
	require.True(t, ok)
	assert.Equal(t, "_Z8functioni", sp.LinkageName())
	assert.Equal(t, llvm.DIFlagPublic, sp.Flags())

	scale, ok := mod.GetFunction("scale")
	require.True(t, ok)
	assert.Equal(t, 2, scale.NumParams())

	ir := mod.String()
	assert.Contains(t, ir, "llvm.dbg.cu")
	assert.Contains(t, ir, "_Z8functioni")
	assert.Contains(t, ir, "!dbg")
}

func TestSignature(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	g := NewGenerator(ctx, loadDemo(t), zerolog.Nop())

	ret, params := g.signature(g.m.Functions[0])
	assert.True(t, ret.Equal(types.Void))
	assert.Empty(t, params)

	ret, params = g.signature(g.m.Functions[1])
	assert.True(t, ret.Equal(types.Double))
	require.Len(t, params, 2)
	assert.True(t, params[0].Equal(types.Double))
	assert.True(t, params[1].Equal(types.I32))
}

func TestEmit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Emit(loadDemo(t), &buf, zerolog.Nop()))

	assert.Contains(t, buf.String(), "DICompileUnit")
	assert.Contains(t, buf.String(), "inkwell test")
}

func TestEmitFile(t *testing.T) {
	m := loadDemo(t)
	m.Path = filepath.Join(t.TempDir(), "demo.toml")

	outPath, err := EmitFile(m, "", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(m.Path), "demo.ll"), outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "define void @function()")
}

func TestEmitFileBadPath(t *testing.T) {
	_, err := EmitFile(loadDemo(t), filepath.Join(t.TempDir(), "missing", "out.ll"), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestEmitFileLeavesNoPartialOutput(t *testing.T) {
	m := loadDemo(t)
	outPath := filepath.Join(t.TempDir(), "broken.ll")

	// Loaded manifests never hold a negative line, so the builder rejects it
	// part way through generation.
	m.Functions[0].Line = -1

	assert.Panics(t, func() { EmitFile(m, outPath, zerolog.Nop()) })

	_, err := os.Stat(outPath)
	assert.True(t, os.IsNotExist(err), "expected no output file, got %v", err)
}

func TestDefaultOutputPath(t *testing.T) {
	m := loadDemo(t)
	assert.Equal(t, "demo.ll", DefaultOutputPath(m))

	m.Path = filepath.Join("dir", "dbg.toml")
	assert.Equal(t, filepath.Join("dir", "dbg.ll"), DefaultOutputPath(m))
}
