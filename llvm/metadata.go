package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir/metadata"
)

// MetadataKind represents the LLVM metadata kind.
type MetadataKind int

// Enumeration of metadata kinds.
const (
	MDTupleMetadataKind MetadataKind = iota
	DILocationMetadataKind
	DIBasicTypeMetadataKind
	DISubroutineTypeMetadataKind
	DIFileMetadataKind
	DICompileUnitMetadataKind
	DISubprogramMetadataKind
	DILexicalBlockMetadataKind
	DINamespaceMetadataKind
	DIModuleMetadataKind
)

var metadataKindNames = [...]string{
	MDTupleMetadataKind:          "MDTuple",
	DILocationMetadataKind:       "DILocation",
	DIBasicTypeMetadataKind:      "DIBasicType",
	DISubroutineTypeMetadataKind: "DISubroutineType",
	DIFileMetadataKind:           "DIFile",
	DICompileUnitMetadataKind:    "DICompileUnit",
	DISubprogramMetadataKind:     "DISubprogram",
	DILexicalBlockMetadataKind:   "DILexicalBlock",
	DINamespaceMetadataKind:      "DINamespace",
	DIModuleMetadataKind:         "DIModule",
}

func (mk MetadataKind) String() string {
	if mk < 0 || int(mk) >= len(metadataKindNames) {
		return fmt.Sprintf("MetadataKind(%d)", int(mk))
	}

	return metadataKindNames[mk]
}

// Metadata represents LLVM metadata.
type Metadata interface {
	// ptr returns the internal metadata node.
	ptr() metadata.Definition

	// Kind returns the kind of the metadata.
	Kind() MetadataKind

	// ID returns the metadata ID the node is printed with: `!<ID>`.  It is -1
	// for nodes which are printed inline.
	ID() int64

	// IsNil returns whether the handle refers to no node.
	IsNil() bool

	// Context returns the context that owns the metadata.
	Context() *Context
}

// node is the record backing a metadata handle.  Handles only ever hold a
// pointer to their record so copies of a handle compare equal.
type node struct {
	def  metadata.Definition
	id   int64
	kind MetadataKind
	ctx  *Context

	// isysroot is the system root of a DI module.
	isysroot string
}

// metaBase the base struct for all metadata classes.
type metaBase struct {
	n *node
}

func (mb metaBase) ptr() metadata.Definition {
	if mb.n == nil {
		return nil
	}

	return mb.n.def
}

func (mb metaBase) Kind() MetadataKind {
	if mb.n == nil {
		return -1
	}

	return mb.n.kind
}

func (mb metaBase) ID() int64 {
	if mb.n == nil {
		return -1
	}

	return mb.n.id
}

func (mb metaBase) IsNil() bool {
	return mb.n == nil
}

func (mb metaBase) Context() *Context {
	if mb.n == nil {
		return nil
	}

	return mb.n.ctx
}

func (mb metaBase) String() string {
	if mb.n == nil {
		return "null"
	}

	if mb.n.id < 0 {
		return fmt.Sprintf("<inline %s>", mb.n.kind)
	}

	return fmt.Sprintf("!%d", mb.n.id)
}

// check validates that the handle may be passed as the argument named arg of
// op on an object belonging to ctx.
func (mb metaBase) check(op, arg string, ctx *Context) {
	switch {
	case mb.n == nil:
		contractViolation(op, "%s is a nil metadata handle", arg)
	case mb.n.ctx.disposed:
		contractViolation(op, "%s belongs to context %d which has been disposed", arg, mb.n.ctx.id)
	case mb.n.ctx != ctx:
		contractViolation(op, "%s belongs to context %d, not context %d", arg, mb.n.ctx.id, ctx.id)
	}
}

// field returns the node as a metadata field of another node.
func (mb metaBase) field() metadata.Field {
	return mb.n.def.(metadata.Field)
}

// -----------------------------------------------------------------------------

// MDNode represents an LLVM MD node.
type MDNode struct {
	metaBase
}

// -----------------------------------------------------------------------------

// DIScope represents an LLVM debug entry for a scope.
type DIScope struct {
	MDNode
}

// scopeOf converts the given handle into a DI scope.
func scopeOf(mb metaBase) (dis DIScope) {
	dis.n = mb.n
	return
}

// -----------------------------------------------------------------------------

// DIFile represents an LLVM debug info entry for a file.
type DIFile struct {
	MDNode
}

// Directory returns the directory of the DI file.
func (dif DIFile) Directory() string {
	return dif.n.def.(*metadata.DIFile).Directory
}

// FileName returns the file name of the DI file.
func (dif DIFile) FileName() string {
	return dif.n.def.(*metadata.DIFile).Filename
}

// AsScope converts the given DI file into a DI scope.
func (dif DIFile) AsScope() DIScope {
	return scopeOf(dif.metaBase)
}

// -----------------------------------------------------------------------------

// DICompileUnit represents an LLVM debug entry for a compile unit.  It can only
// be obtained from DIBuilder.NewCompileUnit and it is the only way to obtain a
// compile unit scope.
type DICompileUnit struct {
	MDNode
}

// File returns the DI file of the compile unit.
func (dicu DICompileUnit) File() (dif DIFile) {
	if n, ok := dicu.n.ctx.lookup(dicu.n.def.(*metadata.DICompileUnit).File); ok {
		dif.n = n
	}

	return
}

// Producer returns the producer string of the compile unit.
func (dicu DICompileUnit) Producer() string {
	return dicu.n.def.(*metadata.DICompileUnit).Producer
}

// Language returns the source language of the compile unit.
func (dicu DICompileUnit) Language() DWARFSourceLanguage {
	return SourceLanguageFromNative(uint32(dicu.n.def.(*metadata.DICompileUnit).Language))
}

// EmissionKind returns the emission kind of the compile unit.
func (dicu DICompileUnit) EmissionKind() DWARFEmissionKind {
	return EmissionKindFromNative(uint32(dicu.n.def.(*metadata.DICompileUnit).EmissionKind))
}

// AsScope converts the compile unit into a DI scope.
func (dicu DICompileUnit) AsScope() DIScope {
	return scopeOf(dicu.metaBase)
}

// -----------------------------------------------------------------------------

// DIModule represents an LLVM debug entry for a module.
type DIModule struct {
	MDNode
}

// Name returns the name of the module.
func (dim DIModule) Name() string {
	return dim.n.def.(*metadata.DIModule).Name
}

// Isysroot returns the system root the module was created with.
func (dim DIModule) Isysroot() string {
	return dim.n.isysroot
}

// AsScope converts the module into a DI scope.
func (dim DIModule) AsScope() DIScope {
	return scopeOf(dim.metaBase)
}

// DINamespace represents an LLVM debug entry for a namespace.
type DINamespace struct {
	MDNode
}

// AsScope converts the namespace into a DI scope.
func (din DINamespace) AsScope() DIScope {
	return scopeOf(din.metaBase)
}

// DILexicalBlock represents an LLVM debug entry for a lexical block.
type DILexicalBlock struct {
	MDNode
}

// AsScope converts the lexical block into a DI scope.
func (dlb DILexicalBlock) AsScope() DIScope {
	return scopeOf(dlb.metaBase)
}

// -----------------------------------------------------------------------------

// DILocation represents an LLVM debug entry for a location.
type DILocation struct {
	MDNode
}

// Line returns the line number of the DI location.
func (dil DILocation) Line() int {
	return int(dil.n.def.(*metadata.DILocation).Line)
}

// Column returns the column number of the DI location.
func (dil DILocation) Column() int {
	return int(dil.n.def.(*metadata.DILocation).Column)
}

// Scope returns the DI scope associated with the DI location.
func (dil DILocation) Scope() (dis DIScope) {
	if n, ok := dil.n.ctx.lookupField(dil.n.def.(*metadata.DILocation).Scope); ok {
		dis.n = n
	}

	return
}

// InlinedAt returns the inlined location of this debug location.  The returned
// location is nil if the location is not inlined.
func (dil DILocation) InlinedAt() (inlinedAt DILocation) {
	if n, ok := dil.n.ctx.lookupField(dil.n.def.(*metadata.DILocation).InlinedAt); ok {
		inlinedAt.n = n
	}

	return
}

// -----------------------------------------------------------------------------

// DIType represents an LLVM debug entry for a type.
type DIType struct {
	MDNode
}

// Name returns the name of the DI type.  Subroutine types have no name.
func (dit DIType) Name() string {
	if bt, ok := dit.n.def.(*metadata.DIBasicType); ok {
		return bt.Name
	}

	return ""
}

// Flags returns the DI flags assigned to the DI type.
func (dit DIType) Flags() DIFlags {
	switch md := dit.n.def.(type) {
	case *metadata.DIBasicType:
		return DIFlagsFromNative(uint32(md.Flags))
	case *metadata.DISubroutineType:
		return DIFlagsFromNative(uint32(md.Flags))
	}

	return DIFlagZero
}

// -----------------------------------------------------------------------------

// DISubprogram represents an LLVM debug entry for a sub-program.
type DISubprogram struct {
	MDNode
}

// Name returns the name of the DI sub-program.
func (dis DISubprogram) Name() string {
	return dis.n.def.(*metadata.DISubprogram).Name
}

// LinkageName returns the linkage (mangled) name of the DI sub-program.
func (dis DISubprogram) LinkageName() string {
	return dis.n.def.(*metadata.DISubprogram).LinkageName
}

// Line returns the line the DI sub-program begins on.
func (dis DISubprogram) Line() int {
	return int(dis.n.def.(*metadata.DISubprogram).Line)
}

// Flags returns the DI flags of the DI sub-program.
func (dis DISubprogram) Flags() DIFlags {
	return DIFlagsFromNative(uint32(dis.n.def.(*metadata.DISubprogram).Flags))
}

// IsDefinition returns whether the DI sub-program describes a definition.
func (dis DISubprogram) IsDefinition() bool {
	return dis.n.def.(*metadata.DISubprogram).IsDefinition
}

// AsScope returns the scope of the DI sub-program.
func (dis DISubprogram) AsScope() DIScope {
	return scopeOf(dis.metaBase)
}
