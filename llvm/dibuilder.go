package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir/metadata"
	"github.com/rs/zerolog"
)

// BuilderState represents the state of a DI builder.
type BuilderState int

// Enumeration of DI builder states.
const (
	// BuilderCreated is the state of a builder that has created no nodes.
	BuilderCreated BuilderState = iota

	// BuilderBuilding is the state of a builder with nodes that have not been
	// finalized.
	BuilderBuilding

	// BuilderFinalized is the state of a builder whose nodes have all been
	// finalized.
	BuilderFinalized

	// BuilderDisposed is the final state of every builder.
	BuilderDisposed
)

func (bs BuilderState) String() string {
	switch bs {
	case BuilderCreated:
		return "created"
	case BuilderBuilding:
		return "building"
	case BuilderFinalized:
		return "finalized"
	case BuilderDisposed:
		return "disposed"
	}

	return fmt.Sprintf("BuilderState(%d)", int(bs))
}

// DIBuilder represents an LLVM debug info builder.  A DI builder is bound to a
// single module and may only be passed metadata created in the context of that
// module.  It is released by Dispose: typically via `defer dib.Dispose()`.  If
// the caller never disposes it, it is disposed along with its context.
type DIBuilder struct {
	mod    *Module
	native *nativeDIBuilder
	state  BuilderState

	// cu is the compile unit of the builder.  It is nil until NewCompileUnit is
	// called.
	cu DICompileUnit

	logger zerolog.Logger
}

// NewDIBuilder creates a new DI builder for the module.  If allowUnresolved is
// false, every function created with the builder must be a definition.
func (m *Module) NewDIBuilder(allowUnresolved bool) *DIBuilder {
	m.checkAlive("Module.NewDIBuilder")

	dib := &DIBuilder{
		mod:    m,
		native: newNativeDIBuilder(m.m, allowUnresolved),
		logger: zerolog.Nop(),
	}

	m.ctx.takeOwnership(dib)
	return dib
}

// WithLogger sets the logger the builder reports its lifecycle to.
func (dib *DIBuilder) WithLogger(logger zerolog.Logger) *DIBuilder {
	dib.logger = logger.With().Str("module", dib.mod.name).Logger()
	return dib
}

// State returns the current state of the builder.
func (dib *DIBuilder) State() BuilderState {
	return dib.state
}

// CompileUnit returns the compile unit of the builder.  The returned handle is
// nil if no compile unit has been created.
func (dib *DIBuilder) CompileUnit() DICompileUnit {
	return dib.cu
}

// AllowsUnresolved returns whether the builder permits unresolved nodes.
func (dib *DIBuilder) AllowsUnresolved() bool {
	return dib.native.allowUnresolved
}

// begin validates that the builder can be used for op and moves it into the
// building state.
func (dib *DIBuilder) begin(op string) {
	if dib.state == BuilderDisposed {
		contractViolation(op, "DI builder has been disposed")
	}

	if dib.mod.ctx.disposed {
		contractViolation(op, "context %d has been disposed", dib.mod.ctx.id)
	}

	dib.state = BuilderBuilding
}

// define numbers def in the module and returns its handle record.
func (dib *DIBuilder) define(def metadata.Definition, kind MetadataKind) *node {
	id := dib.native.define(def)

	dib.logger.Trace().
		Stringer("kind", kind).
		Int64("id", id).
		Msg("created metadata node")

	return dib.mod.ctx.register(def, id, kind)
}

// -----------------------------------------------------------------------------

// NewFile creates a new DI file.
func (dib *DIBuilder) NewFile(filename, directory string) (dif DIFile) {
	dib.begin("DIBuilder.NewFile")

	dif.n = dib.define(dib.native.createFile(filename, directory), DIFileMetadataKind)
	return
}

// CompileUnitOptions represents the optional parameters of a compile unit.
type CompileUnitOptions struct {
	// Producer identifies the program that produced the debug info.
	Producer string

	// Optimized indicates whether the compile unit was optimized.
	Optimized bool

	// Flags are the command line flags passed to the producer.
	Flags string

	// RuntimeVersion is the Objective-C runtime version.
	RuntimeVersion uint

	// SplitName is the name of the split debug file.
	SplitName string

	// DWOId is the ID of the split debug info unit.
	DWOId uint64

	SplitDebugInlining    bool
	DebugInfoForProfiling bool
}

// NewCompileUnit creates a new DI compile unit.  Each builder has exactly one
// compile unit: it must be created before any function and before the builder
// is finalized.
func (dib *DIBuilder) NewCompileUnit(
	file DIFile,
	lang DWARFSourceLanguage,
	kind DWARFEmissionKind,
	opts CompileUnitOptions,
) DICompileUnit {
	const op = "DIBuilder.NewCompileUnit"
	dib.begin(op)

	if !dib.cu.IsNil() {
		contractViolation(op, "module `%s` already has a compile unit", dib.mod.name)
	}

	file.check(op, "file", dib.mod.ctx)

	cu := dib.native.createCompileUnit(
		lang,
		file.n.def.(*metadata.DIFile),
		kind,
		opts,
	)

	dib.cu.n = dib.define(cu, DICompileUnitMetadataKind)
	return dib.cu
}

// ModuleOptions represents the optional parameters of a DI module.
type ModuleOptions struct {
	// ConfigMacros is a space separated list of -D macro definitions as they
	// would appear on a command line.
	ConfigMacros string

	// IncludePath is the path to the module map file.
	IncludePath string

	// Isysroot is the clang system root.  It is recorded on the handle only:
	// the emitter no longer stores it in the node.
	Isysroot string
}

// NewModule creates a new DI module (a source language module, not an LLVM
// module) nested in parent.
func (dib *DIBuilder) NewModule(parent DIScope, name string, opts ModuleOptions) (dim DIModule) {
	const op = "DIBuilder.NewModule"
	dib.begin(op)

	parent.check(op, "parent", dib.mod.ctx)

	dim.n = dib.define(
		dib.native.createModule(parent.field(), name, opts),
		DIModuleMetadataKind,
	)
	dim.n.isysroot = opts.Isysroot
	return
}

// NewNamespace creates a new DI namespace nested in parent.
func (dib *DIBuilder) NewNamespace(parent DIScope, name string, exportSymbols bool) (din DINamespace) {
	const op = "DIBuilder.NewNamespace"
	dib.begin(op)

	parent.check(op, "parent", dib.mod.ctx)

	din.n = dib.define(
		dib.native.createNamespace(parent.field(), name, exportSymbols),
		DINamespaceMetadataKind,
	)
	return
}

// NewFunction creates a new DI sub-program.  ty must be a subroutine type.  If
// the builder does not allow unresolved nodes, isDefinition must be true.
func (dib *DIBuilder) NewFunction(
	scope DIScope,
	name, linkageName string,
	file DIFile,
	line int,
	ty DIType,
	isLocalToUnit, isDefinition bool,
	scopeLine int,
	flags DIFlags,
	isOptimized bool,
) (dis DISubprogram) {
	const op = "DIBuilder.NewFunction"
	dib.begin(op)

	if dib.cu.IsNil() {
		contractViolation(op, "function `%s` created before the compile unit of module `%s`", name, dib.mod.name)
	}

	if !isDefinition && !dib.native.allowUnresolved {
		contractViolation(op, "function `%s` is a declaration but the DI builder does not allow unresolved nodes", name)
	}

	scope.check(op, "scope", dib.mod.ctx)
	file.check(op, "file", dib.mod.ctx)
	ty.check(op, "ty", dib.mod.ctx)

	if ty.Kind() != DISubroutineTypeMetadataKind {
		contractViolation(op, "ty must be a subroutine type, not %s", ty.Kind())
	}

	if line < 0 || scopeLine < 0 {
		contractViolation(op, "function `%s` has a negative line %d or scope line %d", name, line, scopeLine)
	}

	sp := dib.native.createFunction(
		scope.field(),
		name, linkageName,
		file.n.def.(*metadata.DIFile),
		line,
		ty.n.def.(*metadata.DISubroutineType),
		isLocalToUnit, isDefinition,
		scopeLine,
		flags,
		isOptimized,
	)

	dis.n = dib.define(sp, DISubprogramMetadataKind)
	return
}

// NewLexicalBlock creates a new DI lexical block nested in scope.
func (dib *DIBuilder) NewLexicalBlock(scope DIScope, file DIFile, line, col int) (dlb DILexicalBlock) {
	const op = "DIBuilder.NewLexicalBlock"
	dib.begin(op)

	scope.check(op, "scope", dib.mod.ctx)
	file.check(op, "file", dib.mod.ctx)
	checkPosition(op, line, col)

	dlb.n = dib.define(
		dib.native.createLexicalBlock(scope.field(), file.n.def.(*metadata.DIFile), line, col),
		DILexicalBlockMetadataKind,
	)
	return
}

// NewBasicType creates a new DI basic type of the given size in bits.
func (dib *DIBuilder) NewBasicType(name string, bits uint64, encoding DWARFTypeEncoding, flags DIFlags) (dit DIType) {
	dib.begin("DIBuilder.NewBasicType")

	dit.n = dib.define(
		dib.native.createBasicType(name, bits, encoding, flags),
		DIBasicTypeMetadataKind,
	)
	return
}

// NewSubroutineType creates a new DI subroutine type.  The first type is the
// return type of the subroutine and the remaining types are its parameter
// types.  If no types are given, the subroutine type has an empty type array.
func (dib *DIBuilder) NewSubroutineType(file DIFile, flags DIFlags, types ...DIType) (dit DIType) {
	const op = "DIBuilder.NewSubroutineType"
	dib.begin(op)

	file.check(op, "file", dib.mod.ctx)

	fields := make([]metadata.Field, len(types))
	for i, typ := range types {
		typ.check(op, fmt.Sprintf("types[%d]", i), dib.mod.ctx)
		fields[i] = typ.field()
	}

	tuple := dib.native.createTypeArray(fields)
	dib.define(tuple, MDTupleMetadataKind)

	dit.n = dib.define(
		dib.native.createSubroutineType(tuple, flags),
		DISubroutineTypeMetadataKind,
	)
	return
}

// NewDebugLocation creates a new DI location.  inlinedAt may be a nil location
// in which case the location is not inlined.  Unlike the locations created with
// Context.NewDILocation, the location is numbered in the module.
func (dib *DIBuilder) NewDebugLocation(line, col int, scope DIScope, inlinedAt DILocation) (dil DILocation) {
	const op = "DIBuilder.NewDebugLocation"
	dib.begin(op)

	dil.n = dib.define(
		dib.mod.ctx.newLocation(op, line, col, scope, inlinedAt),
		DILocationMetadataKind,
	)
	return
}

// -----------------------------------------------------------------------------

// Finalize finalizes the generation of debug information: it attaches the
// compile unit to the module.  Finalize may be called any number of times and
// nodes may still be created after it: they are finalized by the next call to
// Finalize or by Dispose.
func (dib *DIBuilder) Finalize() {
	const op = "DIBuilder.Finalize"

	if dib.state == BuilderDisposed {
		contractViolation(op, "DI builder has been disposed")
	}

	if dib.cu.IsNil() {
		contractViolation(op, "module `%s` has no compile unit", dib.mod.name)
	}

	dib.native.finalize()
	dib.state = BuilderFinalized

	dib.logger.Debug().Int("count", dib.native.finalizeCount).Msg("finalized debug info")
}

// Dispose releases the builder, finalizing it first if it has nodes that have
// not been finalized.  Disposing a disposed builder does nothing.
func (dib *DIBuilder) Dispose() {
	if dib.state == BuilderDisposed {
		return
	}

	if dib.state == BuilderBuilding {
		if dib.cu.IsNil() {
			dib.logger.Warn().Msg("disposing DI builder with no compile unit: debug info discarded")
		} else {
			dib.Finalize()
		}
	}

	dib.native.dispose()
	dib.state = BuilderDisposed

	dib.logger.Debug().Msg("disposed DI builder")
}

// dispose disposes of the DI builder.
func (dib *DIBuilder) dispose() {
	dib.Dispose()
}
