package llvm

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/metadata"
)

// dbgCUName is the named metadata listing the compile units of a module.
const dbgCUName = "llvm.dbg.cu"

// nativeDIBuilder is the emitter-side half of a DI builder: it constructs the
// metadata nodes of a single module.  It performs no validation; that is the
// job of DIBuilder.
type nativeDIBuilder struct {
	m *ir.Module

	// allowUnresolved indicates whether unresolved (non-definition) nodes may
	// be left in the module at finalization.
	allowUnresolved bool

	// cu is the compile unit of the module if it has been created.
	cu *metadata.DICompileUnit

	// declarations are the non-definition sub-programs created by the
	// builder.  They are retained by the compile unit at finalization.
	declarations []*metadata.DISubprogram

	// retained is the retained types tuple of the compile unit, created by the
	// first finalization which has declarations to retain.
	retained *metadata.Tuple

	// The number of times finalize and dispose have been invoked.
	finalizeCount, disposeCount int
}

func newNativeDIBuilder(m *ir.Module, allowUnresolved bool) *nativeDIBuilder {
	return &nativeDIBuilder{m: m, allowUnresolved: allowUnresolved}
}

// define appends a new numbered metadata definition to the module and returns
// its metadata ID.
func (nb *nativeDIBuilder) define(def metadata.Definition) int64 {
	id := int64(len(nb.m.MetadataDefs))
	def.SetID(id)
	nb.m.MetadataDefs = append(nb.m.MetadataDefs, def)
	return id
}

func (nb *nativeDIBuilder) createFile(filename, directory string) *metadata.DIFile {
	return &metadata.DIFile{
		Filename:  filename,
		Directory: directory,
	}
}

func (nb *nativeDIBuilder) createCompileUnit(
	lang DWARFSourceLanguage,
	file *metadata.DIFile,
	kind DWARFEmissionKind,
	opts CompileUnitOptions,
) *metadata.DICompileUnit {
	nb.cu = &metadata.DICompileUnit{
		Distinct:              true,
		Language:              enum.DwarfLang(lang.Native()),
		File:                  file,
		Producer:              opts.Producer,
		IsOptimized:           opts.Optimized,
		Flags:                 opts.Flags,
		RuntimeVersion:        uint64(opts.RuntimeVersion),
		SplitDebugFilename:    opts.SplitName,
		EmissionKind:          enum.EmissionKind(kind.Native()),
		DwoID:                 opts.DWOId,
		SplitDebugInlining:    opts.SplitDebugInlining,
		DebugInfoForProfiling: opts.DebugInfoForProfiling,
	}

	return nb.cu
}

func (nb *nativeDIBuilder) createModule(scope metadata.Field, name string, opts ModuleOptions) *metadata.DIModule {
	return &metadata.DIModule{
		Scope:        scope,
		Name:         name,
		ConfigMacros: opts.ConfigMacros,
		IncludePath:  opts.IncludePath,
	}
}

func (nb *nativeDIBuilder) createNamespace(scope metadata.Field, name string, exportSymbols bool) *metadata.DINamespace {
	return &metadata.DINamespace{
		Scope:         scope,
		Name:          name,
		ExportSymbols: exportSymbols,
	}
}

func (nb *nativeDIBuilder) createFunction(
	scope metadata.Field,
	name, linkageName string,
	file *metadata.DIFile,
	line int,
	ty *metadata.DISubroutineType,
	isLocalToUnit, isDefinition bool,
	scopeLine int,
	flags DIFlags,
	isOptimized bool,
) *metadata.DISubprogram {
	sp := &metadata.DISubprogram{
		// Definitions must be distinct: they are never uniqued.
		Distinct:     isDefinition,
		Scope:        scope,
		Name:         name,
		LinkageName:  linkageName,
		File:         file,
		Line:         int64(line),
		Type:         ty,
		IsLocal:      isLocalToUnit,
		IsDefinition: isDefinition,
		ScopeLine:    int64(scopeLine),
		Flags:        enum.DIFlag(flags.Native()),
		IsOptimized:  isOptimized,
	}

	if isDefinition {
		sp.Unit = nb.cu
	} else {
		nb.declarations = append(nb.declarations, sp)
	}

	return sp
}

func (nb *nativeDIBuilder) createLexicalBlock(scope metadata.Field, file *metadata.DIFile, line, col int) *metadata.DILexicalBlock {
	return &metadata.DILexicalBlock{
		Distinct: true,
		Scope:    scope,
		File:     file,
		Line:     int64(line),
		Column:   int64(col),
	}
}

// DW_TAG_base_type
const dwarfTagBaseType = 0x24

func (nb *nativeDIBuilder) createBasicType(name string, bits uint64, encoding DWARFTypeEncoding, flags DIFlags) *metadata.DIBasicType {
	return &metadata.DIBasicType{
		Tag:      enum.DwarfTag(dwarfTagBaseType),
		Name:     name,
		Size:     bits,
		Encoding: enum.DwarfAttEncoding(encoding),
		Flags:    enum.DIFlag(flags.Native()),
	}
}

// createTypeArray creates the tuple holding the types of a subroutine type.
func (nb *nativeDIBuilder) createTypeArray(types []metadata.Field) *metadata.Tuple {
	return &metadata.Tuple{Fields: types}
}

func (nb *nativeDIBuilder) createSubroutineType(types *metadata.Tuple, flags DIFlags) *metadata.DISubroutineType {
	return &metadata.DISubroutineType{
		Flags: enum.DIFlag(flags.Native()),
		Types: types,
	}
}

// finalize retains the declared sub-programs in the compile unit and attaches
// the compile unit to the module.  The retained tuple and the named metadata
// are replaced rather than extended so finalizing more than once leaves the
// module unchanged.
func (nb *nativeDIBuilder) finalize() {
	nb.finalizeCount++

	if nb.cu == nil {
		return
	}

	if len(nb.declarations) > 0 {
		if nb.retained == nil {
			nb.retained = &metadata.Tuple{}
			nb.define(nb.retained)
			nb.cu.RetainedTypes = nb.retained
		}

		fields := make([]metadata.Field, len(nb.declarations))
		for i, sp := range nb.declarations {
			var def metadata.Definition = sp
			fields[i] = def.(metadata.Field)
		}
		nb.retained.Fields = fields
	}

	if nb.m.NamedMetadataDefs == nil {
		nb.m.NamedMetadataDefs = make(map[string]*metadata.NamedDef)
	}

	var cu metadata.Definition = nb.cu
	nb.m.NamedMetadataDefs[dbgCUName] = &metadata.NamedDef{
		Name:  dbgCUName,
		Nodes: []metadata.Node{cu.(metadata.Node)},
	}
}

// dispose releases the builder.  The nodes it created are owned by the module
// and survive it.
func (nb *nativeDIBuilder) dispose() {
	nb.disposeCount++
	nb.declarations = nil
}
