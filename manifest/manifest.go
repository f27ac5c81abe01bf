package manifest

import (
	"dibuild/llvm"
)

// Manifest describes the debug information of a single LLVM module: the source
// file and compile unit it was generated from and the scopes, types, functions,
// and locations within it.
type Manifest struct {
	// Path is the path to the manifest file.  It is empty for manifests that
	// were not loaded from a file.
	Path string

	// Name is the name of the LLVM module.
	Name string

	// Target is the target triple of the LLVM module.  It may be empty.
	Target string

	// AllowUnresolved indicates whether functions may be declarations.
	AllowUnresolved bool

	CompileUnit *CompileUnit

	// Types lists the basic types in definition order.
	Types []*BasicType

	// Modules lists the source language modules in definition order.  A
	// module's parent always precedes it.
	Modules []*Module

	// Namespaces lists the namespaces in definition order.  A namespace's
	// parent always precedes it.
	Namespaces []*Namespace

	Functions []*Function
}

// CompileUnit is the compile unit of a manifest.
type CompileUnit struct {
	File, Directory string
	Language        llvm.DWARFSourceLanguage
	EmissionKind    llvm.DWARFEmissionKind
	Options         llvm.CompileUnitOptions
}

// BasicType is a basic type referenced by the functions of a manifest.
type BasicType struct {
	Name     string
	Size     uint64
	Encoding llvm.DWARFTypeEncoding
	Flags    llvm.DIFlags
}

// Module is a source language module.
type Module struct {
	Name string

	// Parent is the name of the enclosing scope or empty if the module is
	// nested directly in the compile unit.
	Parent string

	Options llvm.ModuleOptions
}

// Namespace is a namespace.
type Namespace struct {
	Name, Parent  string
	ExportSymbols bool
}

// Function is a function with debug information.
type Function struct {
	Name, LinkageName string

	// Scope is the name of the module or namespace enclosing the function or
	// empty if the function is in the compile unit.
	Scope string

	Line, ScopeLine int

	IsLocal, IsDefinition, IsOptimized bool

	Flags llvm.DIFlags

	// Types are the names of the types of the function's subroutine type.  The
	// first type is the return type.
	Types           []string
	SubroutineFlags llvm.DIFlags

	Blocks    []*Block
	Locations []*Location
}

// Block is a lexical block within a function.
type Block struct {
	Line, Column int
}

// Location is a debug location within a function.
type Location struct {
	Line, Column int

	// Block is the 1-based index of the lexical block the location is scoped
	// to or 0 if it is scoped to the function itself.
	Block int

	// InlinedAt is the 1-based index of the location this location is inlined
	// at or 0 if it is not inlined.  It always refers to an earlier location.
	InlinedAt int
}
