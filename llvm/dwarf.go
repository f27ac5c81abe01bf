package llvm

import (
	"fmt"
	"strings"
)

// DWARFSourceLanguage represents a DWARF source language.
type DWARFSourceLanguage int

// Enumeration of DWARF source languages.
const (
	DWARFSourceLanguageC89 DWARFSourceLanguage = iota
	DWARFSourceLanguageC
	DWARFSourceLanguageAda83
	DWARFSourceLanguageC_plus_plus
	DWARFSourceLanguageCobol74
	DWARFSourceLanguageCobol85
	DWARFSourceLanguageFortran77
	DWARFSourceLanguageFortran90
	DWARFSourceLanguagePascal83
	DWARFSourceLanguageModula2
	DWARFSourceLanguageJava
	DWARFSourceLanguageC99
	DWARFSourceLanguageAda95
	DWARFSourceLanguageFortran95
	DWARFSourceLanguagePLI
	DWARFSourceLanguageObjC
	DWARFSourceLanguageObjC_plus_plus
	DWARFSourceLanguageUPC
	DWARFSourceLanguageD
	DWARFSourceLanguagePython
	DWARFSourceLanguageOpenCL
	DWARFSourceLanguageGo
	DWARFSourceLanguageModula3
	DWARFSourceLanguageHaskell
	DWARFSourceLanguageC_plus_plus_03
	DWARFSourceLanguageC_plus_plus_11
	DWARFSourceLanguageOCaml
	DWARFSourceLanguageRust
	DWARFSourceLanguageC11
	DWARFSourceLanguageSwift
	DWARFSourceLanguageJulia
	DWARFSourceLanguageDylan
	DWARFSourceLanguageC_plus_plus_14
	DWARFSourceLanguageFortran03
	DWARFSourceLanguageFortran08
	DWARFSourceLanguageRenderScript
	DWARFSourceLanguageBLISS
	DWARFSourceLanguageMips_Assembler
	DWARFSourceLanguageGOOGLE_RenderScript
	DWARFSourceLanguageBORLAND_Delphi

	numSourceLanguages = iota
)

// sourceLanguageInfo holds the DW_LANG code and name of every source language.
// The last three languages are vendor extensions.
var sourceLanguageInfo = [numSourceLanguages]struct {
	native uint32
	name   string
}{
	{0x0001, "DW_LANG_C89"},
	{0x0002, "DW_LANG_C"},
	{0x0003, "DW_LANG_Ada83"},
	{0x0004, "DW_LANG_C_plus_plus"},
	{0x0005, "DW_LANG_Cobol74"},
	{0x0006, "DW_LANG_Cobol85"},
	{0x0007, "DW_LANG_Fortran77"},
	{0x0008, "DW_LANG_Fortran90"},
	{0x0009, "DW_LANG_Pascal83"},
	{0x000a, "DW_LANG_Modula2"},
	{0x000b, "DW_LANG_Java"},
	{0x000c, "DW_LANG_C99"},
	{0x000d, "DW_LANG_Ada95"},
	{0x000e, "DW_LANG_Fortran95"},
	{0x000f, "DW_LANG_PLI"},
	{0x0010, "DW_LANG_ObjC"},
	{0x0011, "DW_LANG_ObjC_plus_plus"},
	{0x0012, "DW_LANG_UPC"},
	{0x0013, "DW_LANG_D"},
	{0x0014, "DW_LANG_Python"},
	{0x0015, "DW_LANG_OpenCL"},
	{0x0016, "DW_LANG_Go"},
	{0x0017, "DW_LANG_Modula3"},
	{0x0018, "DW_LANG_Haskell"},
	{0x0019, "DW_LANG_C_plus_plus_03"},
	{0x001a, "DW_LANG_C_plus_plus_11"},
	{0x001b, "DW_LANG_OCaml"},
	{0x001c, "DW_LANG_Rust"},
	{0x001d, "DW_LANG_C11"},
	{0x001e, "DW_LANG_Swift"},
	{0x001f, "DW_LANG_Julia"},
	{0x0020, "DW_LANG_Dylan"},
	{0x0021, "DW_LANG_C_plus_plus_14"},
	{0x0022, "DW_LANG_Fortran03"},
	{0x0023, "DW_LANG_Fortran08"},
	{0x0024, "DW_LANG_RenderScript"},
	{0x0025, "DW_LANG_BLISS"},
	{0x8001, "DW_LANG_Mips_Assembler"},
	{0x8e57, "DW_LANG_GOOGLE_RenderScript"},
	{0xb000, "DW_LANG_BORLAND_Delphi"},
}

// sourceLanguagesByNative is the inverse of sourceLanguageInfo.
var sourceLanguagesByNative = make(map[uint32]DWARFSourceLanguage, numSourceLanguages)

func init() {
	for i, info := range sourceLanguageInfo {
		sourceLanguagesByNative[info.native] = DWARFSourceLanguage(i)
	}
}

// Native returns the DW_LANG code of the source language.
func (lang DWARFSourceLanguage) Native() uint32 {
	if lang < 0 || lang >= numSourceLanguages {
		contractViolation("DWARFSourceLanguage.Native", "undefined source language %d", int(lang))
	}

	return sourceLanguageInfo[lang].native
}

// SourceLanguageFromNative returns the source language with the given DW_LANG
// code.  An unknown code indicates an incompatible emitter and is fatal.
func SourceLanguageFromNative(native uint32) DWARFSourceLanguage {
	lang, ok := sourceLanguagesByNative[native]
	if !ok {
		panic(fmt.Sprintf("llvm: unknown native DWARF source language %#x", native))
	}

	return lang
}

func (lang DWARFSourceLanguage) String() string {
	if lang < 0 || lang >= numSourceLanguages {
		return fmt.Sprintf("DWARFSourceLanguage(%d)", int(lang))
	}

	return sourceLanguageInfo[lang].name
}

// ParseSourceLanguage returns the source language with the given name.  Names
// are matched case insensitively with or without the `DW_LANG_` prefix: eg.
// `rust`, `Rust`, and `DW_LANG_Rust`.
func ParseSourceLanguage(name string) (DWARFSourceLanguage, bool) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "dw_lang_")

	for i, info := range sourceLanguageInfo {
		if strings.ToLower(strings.TrimPrefix(info.name, "DW_LANG_")) == name {
			return DWARFSourceLanguage(i), true
		}
	}

	return 0, false
}

// -----------------------------------------------------------------------------

// DWARFEmissionKind represents a DWARF emission kind: the amount of debug
// information to emit.
type DWARFEmissionKind int

// Enumeration of DWARF emission kinds.
const (
	DWARFEmissionNone DWARFEmissionKind = iota
	DWARFEmissionFull
	DWARFEmissionLineTablesOnly

	numEmissionKinds = iota
)

var emissionKindInfo = [numEmissionKinds]struct {
	native uint32
	name   string
	alias  string
}{
	{0, "NoDebug", "none"},
	{1, "FullDebug", "full"},
	{2, "LineTablesOnly", "line-tables-only"},
}

// Native returns the emitter's code for the emission kind.
func (kind DWARFEmissionKind) Native() uint32 {
	if kind < 0 || kind >= numEmissionKinds {
		contractViolation("DWARFEmissionKind.Native", "undefined emission kind %d", int(kind))
	}

	return emissionKindInfo[kind].native
}

// EmissionKindFromNative returns the emission kind with the given code.  An
// unknown code indicates an incompatible emitter and is fatal.
func EmissionKindFromNative(native uint32) DWARFEmissionKind {
	for i, info := range emissionKindInfo {
		if info.native == native {
			return DWARFEmissionKind(i)
		}
	}

	panic(fmt.Sprintf("llvm: unknown native DWARF emission kind %#x", native))
}

func (kind DWARFEmissionKind) String() string {
	if kind < 0 || kind >= numEmissionKinds {
		return fmt.Sprintf("DWARFEmissionKind(%d)", int(kind))
	}

	return emissionKindInfo[kind].name
}

// ParseEmissionKind returns the emission kind with the given name: either its
// LLVM name (`LineTablesOnly`) or its short form (`line-tables-only`).
func ParseEmissionKind(name string) (DWARFEmissionKind, bool) {
	name = strings.TrimSpace(name)

	for i, info := range emissionKindInfo {
		if strings.EqualFold(info.name, name) || strings.EqualFold(info.alias, name) {
			return DWARFEmissionKind(i), true
		}
	}

	return 0, false
}

// -----------------------------------------------------------------------------

// DWARFTypeEncoding represents a DWARF base type encoding (DW_ATE_*).  The
// values are the DWARF codes themselves.
type DWARFTypeEncoding uint32

// Enumeration of DWARF type encodings.
const (
	AddressTypeEncoding DWARFTypeEncoding = iota + 1
	BooleanTypeEncoding
	ComplexFloatTypeEncoding
	FloatTypeEncoding
	SignedTypeEncoding
	SignedCharTypeEncoding
	UnsignedTypeEncoding
	UnsignedCharTypeEncoding
	ImaginaryFloatTypeEncoding
	PackedDecimalTypeEncoding
	NumericStringTypeEncoding
	EditedTypeEncoding
	SignedFixedTypeEncoding
	UnsignedFixedTypeEncoding
	DecimalFloatTypeEncoding
	UTFTypeEncoding
	UCSTypeEncoding
	ASCIITypeEncoding
)

var typeEncodingNames = [...]string{
	AddressTypeEncoding:        "address",
	BooleanTypeEncoding:        "boolean",
	ComplexFloatTypeEncoding:   "complex-float",
	FloatTypeEncoding:          "float",
	SignedTypeEncoding:         "signed",
	SignedCharTypeEncoding:     "signed-char",
	UnsignedTypeEncoding:       "unsigned",
	UnsignedCharTypeEncoding:   "unsigned-char",
	ImaginaryFloatTypeEncoding: "imaginary-float",
	PackedDecimalTypeEncoding:  "packed-decimal",
	NumericStringTypeEncoding:  "numeric-string",
	EditedTypeEncoding:         "edited",
	SignedFixedTypeEncoding:    "signed-fixed",
	UnsignedFixedTypeEncoding:  "unsigned-fixed",
	DecimalFloatTypeEncoding:   "decimal-float",
	UTFTypeEncoding:            "utf",
	UCSTypeEncoding:            "ucs",
	ASCIITypeEncoding:          "ascii",
}

func (enc DWARFTypeEncoding) String() string {
	if enc == 0 || int(enc) >= len(typeEncodingNames) {
		return fmt.Sprintf("DWARFTypeEncoding(%d)", uint32(enc))
	}

	return typeEncodingNames[enc]
}

// ParseTypeEncoding returns the type encoding with the given name: eg.
// `signed` or `unsigned-char`.
func ParseTypeEncoding(name string) (DWARFTypeEncoding, bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	for i, encName := range typeEncodingNames {
		if i > 0 && encName == name {
			return DWARFTypeEncoding(i), true
		}
	}

	return 0, false
}

// -----------------------------------------------------------------------------

// DebugMetadataVersion returns the version of the debug metadata format written
// by the emitter.  Front ends stamp it into the `Debug Info Version` module
// flag.
func DebugMetadataVersion() int {
	return 3
}
