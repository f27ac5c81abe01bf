package generate

import (
	"dibuild/llvm"
	"dibuild/manifest"

	"github.com/rs/zerolog"
)

// Generator is responsible for converting a debug manifest into an LLVM module
// carrying the debug information it describes.  Every function in the manifest
// becomes an LLVM function with its sub-program attached.  Function
// definitions are given a body which returns a zero value from a `ret`
// instruction tagged with the function's last location.
type Generator struct {
	// m is the manifest being converted.
	m *manifest.Manifest

	ctx *llvm.Context

	// mod is the LLVM module being generated.
	mod *llvm.Module

	dib *llvm.DIBuilder
	irb *llvm.IRBuilder

	// file is the DI file of the compile unit.
	file llvm.DIFile

	cu llvm.DICompileUnit

	// scopes maps the names of the modules and namespaces of the manifest to
	// their DI scopes.
	scopes map[string]llvm.DIScope

	// types maps the names of the types of the manifest to their DI types.
	types map[string]llvm.DIType

	logger zerolog.Logger
}

// NewGenerator creates a new generator for the given manifest in ctx.
func NewGenerator(ctx *llvm.Context, m *manifest.Manifest, logger zerolog.Logger) *Generator {
	return &Generator{
		m:      m,
		ctx:    ctx,
		scopes: make(map[string]llvm.DIScope),
		types:  make(map[string]llvm.DIType),
		logger: logger.With().Str("manifest", m.Name).Logger(),
	}
}

// Generate generates the LLVM module for the manifest.  The module is owned by
// the generator's context.
func (g *Generator) Generate() *llvm.Module {
	g.mod = g.ctx.NewModule(g.m.Name)
	if g.m.Target != "" {
		g.mod.SetTarget(g.m.Target)
	}

	g.dib = g.mod.NewDIBuilder(g.m.AllowUnresolved).WithLogger(g.logger)
	defer g.dib.Dispose()

	g.irb = g.ctx.NewIRBuilder()

	g.genCompileUnit()

	for _, bt := range g.m.Types {
		g.types[bt.Name] = g.dib.NewBasicType(bt.Name, bt.Size, bt.Encoding, bt.Flags)
	}

	for _, dm := range g.m.Modules {
		g.scopes[dm.Name] = g.dib.NewModule(g.scope(dm.Parent), dm.Name, dm.Options).AsScope()
	}

	for _, ns := range g.m.Namespaces {
		g.scopes[ns.Name] = g.dib.NewNamespace(g.scope(ns.Parent), ns.Name, ns.ExportSymbols).AsScope()
	}

	for _, fn := range g.m.Functions {
		g.genFunction(fn)
	}

	g.dib.Finalize()

	g.logger.Debug().
		Int("functions", len(g.m.Functions)).
		Int("debug-metadata-version", llvm.DebugMetadataVersion()).
		Msg("generated module")

	return g.mod
}

// genCompileUnit generates the file and compile unit of the manifest.
func (g *Generator) genCompileUnit() {
	cu := g.m.CompileUnit

	g.file = g.dib.NewFile(cu.File, cu.Directory)
	g.cu = g.dib.NewCompileUnit(g.file, cu.Language, cu.EmissionKind, cu.Options)
}

// scope returns the DI scope with the given name.  The empty name is the
// compile unit.
func (g *Generator) scope(name string) llvm.DIScope {
	if name == "" {
		return g.cu.AsScope()
	}

	return g.scopes[name]
}
