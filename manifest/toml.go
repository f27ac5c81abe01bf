package manifest

// tomlManifest represents the debug manifest as it is encoded in TOML.
type tomlManifest struct {
	Module      *tomlModule      `toml:"module"`
	CompileUnit *tomlCompileUnit `toml:"compile-unit"`
	Types       []*tomlBasicType `toml:"types"`
	Modules     []*tomlDIModule  `toml:"modules"`
	Namespaces  []*tomlNamespace `toml:"namespaces"`
	Functions   []*tomlFunction  `toml:"functions"`
}

// tomlModule represents the LLVM module settings as they are encoded in TOML.
type tomlModule struct {
	Name            string `toml:"name"`
	Target          string `toml:"target,omitempty"`
	AllowUnresolved bool   `toml:"allow-unresolved"`
}

// tomlCompileUnit represents the compile unit as it is encoded in TOML.
type tomlCompileUnit struct {
	File                  string `toml:"file"`
	Directory             string `toml:"directory"`
	Language              string `toml:"language"`
	EmissionKind          string `toml:"emission-kind"`
	Producer              string `toml:"producer"`
	Optimized             bool   `toml:"optimized"`
	Flags                 string `toml:"flags,omitempty"`
	RuntimeVersion        uint   `toml:"runtime-version"`
	SplitName             string `toml:"split-name,omitempty"`
	DWOId                 uint64 `toml:"dwo-id"`
	SplitDebugInlining    bool   `toml:"split-debug-inlining"`
	DebugInfoForProfiling bool   `toml:"debug-info-for-profiling"`
}

// tomlBasicType represents a basic type as it is encoded in TOML.
type tomlBasicType struct {
	Name     string   `toml:"name"`
	Size     uint64   `toml:"size"`
	Encoding string   `toml:"encoding"`
	Flags    []string `toml:"flags,omitempty"`
}

// tomlDIModule represents a source language module as it is encoded in TOML.
type tomlDIModule struct {
	Name         string `toml:"name"`
	Parent       string `toml:"parent,omitempty"`
	ConfigMacros string `toml:"config-macros,omitempty"`
	IncludePath  string `toml:"include-path,omitempty"`
	Isysroot     string `toml:"isysroot,omitempty"`
}

// tomlNamespace represents a namespace as it is encoded in TOML.
type tomlNamespace struct {
	Name          string `toml:"name"`
	Parent        string `toml:"parent,omitempty"`
	ExportSymbols bool   `toml:"export-symbols"`
}

// tomlFunction represents a function as it is encoded in TOML.
type tomlFunction struct {
	Name            string          `toml:"name"`
	LinkageName     string          `toml:"linkage-name,omitempty"`
	Scope           string          `toml:"scope,omitempty"`
	Line            int             `toml:"line"`
	ScopeLine       int             `toml:"scope-line"`
	Local           bool            `toml:"local"`
	Declaration     bool            `toml:"declaration"`
	Optimized       bool            `toml:"optimized"`
	Flags           []string        `toml:"flags,omitempty"`
	Types           []string        `toml:"types,omitempty"`
	SubroutineFlags []string        `toml:"subroutine-flags,omitempty"`
	Blocks          []*tomlBlock    `toml:"blocks"`
	Locations       []*tomlLocation `toml:"locations"`
}

// tomlBlock represents a lexical block as it is encoded in TOML.
type tomlBlock struct {
	Line   int `toml:"line"`
	Column int `toml:"column"`
}

// tomlLocation represents a debug location as it is encoded in TOML.
type tomlLocation struct {
	Line      int `toml:"line"`
	Column    int `toml:"column"`
	Block     int `toml:"block"`
	InlinedAt int `toml:"inlined-at"`
}
