package manifest

import (
	"path/filepath"
	"testing"

	"dibuild/llvm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "demo.toml")

	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, m.Path)
	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "x86_64-unknown-linux-gnu", m.Target)
	assert.False(t, m.AllowUnresolved)

	cu := m.CompileUnit
	require.NotNil(t, cu)
	assert.Equal(t, "main.rs", cu.File)
	assert.Equal(t, "/home/user/demo", cu.Directory)
	assert.Equal(t, llvm.DWARFSourceLanguageRust, cu.Language)
	assert.Equal(t, llvm.DWARFEmissionFull, cu.EmissionKind)
	assert.Equal(t, "dibuild", cu.Options.Producer)

	require.Len(t, m.Types, 2)
	assert.Equal(t, &BasicType{Name: "i32", Size: 32, Encoding: llvm.SignedTypeEncoding}, m.Types[0])

	require.Len(t, m.Modules, 1)
	assert.Equal(t, "/include", m.Modules[0].Options.IncludePath)

	require.Len(t, m.Namespaces, 1)
	assert.Equal(t, "core", m.Namespaces[0].Parent)

	require.Len(t, m.Functions, 2)

	main := m.Functions[0]
	assert.Equal(t, "main", main.Name)
	assert.Equal(t, 3, main.ScopeLine)
	assert.True(t, main.IsDefinition)
	assert.Equal(t, llvm.DIFlagPublic.Union(llvm.DIFlagPrototyped), main.Flags)
	assert.Equal(t, []*Block{{Line: 5, Column: 5}}, main.Blocks)
	assert.Equal(t, []*Location{
		{Line: 3, Column: 1},
		{Line: 6, Column: 9, Block: 1, InlinedAt: 1},
	}, main.Locations)

	isEven := m.Functions[1]
	assert.Equal(t, "util", isEven.Scope)
	assert.Equal(t, 11, isEven.ScopeLine)
	assert.True(t, isEven.IsLocal)
	assert.Equal(t, []string{"bool", "i32"}, isEven.Types)
	assert.Equal(t, llvm.DIFlagPrototyped, isEven.SubroutineFlags)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest")
}

const minimalManifest = `
[module]
name = "m"

[compile-unit]
file = "a.c"
language = "c99"
`

func TestParseDefaults(t *testing.T) {
	m, err := Parse([]byte(minimalManifest))
	require.NoError(t, err)

	assert.Equal(t, llvm.DWARFSourceLanguageC99, m.CompileUnit.Language)
	assert.Equal(t, llvm.DWARFEmissionFull, m.CompileUnit.EmissionKind)
	assert.Empty(t, m.Functions)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		err      string
	}{
		{
			"bad toml",
			`[module`,
			"failed to decode manifest",
		},
		{
			"no module",
			`[compile-unit]
file = "a.c"`,
			"missing module name",
		},
		{
			"no compile unit",
			`[module]
name = "m"`,
			"module `m` has no compile unit",
		},
		{
			"unknown language",
			`[module]
name = "m"
[compile-unit]
file = "a.chai"
language = "chai"`,
			"invalid compile unit: unknown source language `chai`",
		},
		{
			"unknown emission kind",
			minimalManifest + `emission-kind = "some"`,
			"unknown emission kind `some`",
		},
		{
			"unknown encoding",
			minimalManifest + `
[[types]]
name = "i32"
encoding = "twos-complement"`,
			"unknown encoding `twos-complement` for type `i32`",
		},
		{
			"undefined parent",
			minimalManifest + `
[[modules]]
name = "a"
parent = "b"`,
			"undefined scope `b`",
		},
		{
			"duplicate scope",
			minimalManifest + `
[[modules]]
name = "a"
[[namespaces]]
name = "a"`,
			"multiple scopes named `a`",
		},
		{
			"undefined type",
			minimalManifest + `
[[functions]]
name = "f"
types = ["i32"]`,
			"undefined type `i32` in function `f`",
		},
		{
			"unknown flag",
			minimalManifest + `
[[functions]]
name = "f"
flags = ["loud"]`,
			"unknown flag `loud`",
		},
		{
			"declaration",
			minimalManifest + `
[[functions]]
name = "f"
declaration = true`,
			"does not allow unresolved functions",
		},
		{
			"duplicate function",
			minimalManifest + `
[[functions]]
name = "f"
[[functions]]
name = "f"`,
			"multiple functions named `f`",
		},
		{
			"inlined at later location",
			minimalManifest + `
[[functions]]
name = "f"
  [[functions.locations]]
  line = 1
  inlined-at = 1`,
			"location 1 of function `f` must be inlined at an earlier location",
		},
		{
			"undefined block",
			minimalManifest + `
[[functions]]
name = "f"
  [[functions.locations]]
  line = 1
  block = 2`,
			"refers to undefined block 2",
		},
		{
			"conflicting access flags",
			minimalManifest + `
[[functions]]
name = "f"
flags = ["private", "protected"]`,
			"conflicting flags `DIFlagPrivate` and `DIFlagProtected`",
		},
		{
			"conflicting inheritance flags",
			minimalManifest + `
[[functions]]
name = "f"
subroutine-flags = ["SingleInheritance", "VirtualInheritance"]`,
			"in subroutine type of function `f`: conflicting flags",
		},
		{
			"negative function line",
			minimalManifest + `
[[functions]]
name = "f"
line = -4`,
			"function `f` has a negative line number",
		},
		{
			"negative scope line",
			minimalManifest + `
[[functions]]
name = "f"
line = 4
scope-line = -1`,
			"function `f` has a negative line number",
		},
		{
			"negative block column",
			minimalManifest + `
[[functions]]
name = "f"
  [[functions.blocks]]
  line = 2
  column = -1`,
			"block 1 of function `f` has a negative line or column",
		},
		{
			"negative location line",
			minimalManifest + `
[[functions]]
name = "f"
  [[functions.locations]]
  line = -1`,
			"location 1 of function `f` has a negative line or column",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.manifest))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.err)
		})
	}
}

func TestParseDeclarations(t *testing.T) {
	m, err := Parse([]byte(`
[module]
name = "m"
allow-unresolved = true

[compile-unit]
file = "a.c"
language = "c"

[[functions]]
name = "puts"
declaration = true
`))
	require.NoError(t, err)

	require.Len(t, m.Functions, 1)
	assert.False(t, m.Functions[0].IsDefinition)
}
