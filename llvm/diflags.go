package llvm

import (
	"fmt"
	"math/bits"
	"strings"
)

// DIFlags represents a set of LLVM debug info flags.  Every flag occupies its
// own bit and flags are combined with `|` or Union.  The accessibility flags
// (Private, Protected, Public) and the inheritance flags (Single, Multiple,
// Virtual) each share one native field, so at most one flag of each group may
// be set; see Conflict.  The set is converted to the encoding the emitter
// expects with Native.
type DIFlags uint64

// DIFlagZero is the empty set of debug info flags.
const DIFlagZero DIFlags = 0

// Enumeration of LLVM debug info flags.
const (
	DIFlagPrivate DIFlags = 1 << iota
	DIFlagProtected
	DIFlagPublic
	DIFlagFwdDecl
	DIFlagAppleBlock
	DIFlagReservedBit4
	DIFlagVirtual
	DIFlagArtificial
	DIFlagExplicit
	DIFlagPrototyped
	DIFlagObjcClassComplete
	DIFlagObjectPointer
	DIFlagVector
	DIFlagStaticMember
	DIFlagLValueReference
	DIFlagRValueReference
	DIFlagReserved
	DIFlagSingleInheritance
	DIFlagMultipleInheritance
	DIFlagVirtualInheritance
	DIFlagIntroducedVirtual
	DIFlagBitField
	DIFlagNoReturn
	DIFlagTypePassByValue
	DIFlagTypePassByReference
	DIFlagEnumClass
	DIFlagThunk
	DIFlagNonTrivial
	DIFlagBigEndian
	DIFlagLittleEndian
	DIFlagIndirectVirtualBase

	// numDIFlags is the number of distinct debug info flags.
	numDIFlags = iota
)

// Native encodings of the flags which are not single bits.
const (
	nativeAccessibility       uint32 = 3
	nativePtrToMemberRep      uint32 = 3 << 16
	nativeIndirectVirtualBase uint32 = (1 << 2) | (1 << 5)
)

// diFlagInfo is the native encoding and name of a single debug info flag,
// indexed by bit position.
var diFlagInfo = [numDIFlags]struct {
	native uint32
	name   string
}{
	{1, "DIFlagPrivate"},
	{2, "DIFlagProtected"},
	{3, "DIFlagPublic"},
	{1 << 2, "DIFlagFwdDecl"},
	{1 << 3, "DIFlagAppleBlock"},
	{1 << 4, "DIFlagReservedBit4"},
	{1 << 5, "DIFlagVirtual"},
	{1 << 6, "DIFlagArtificial"},
	{1 << 7, "DIFlagExplicit"},
	{1 << 8, "DIFlagPrototyped"},
	{1 << 9, "DIFlagObjcClassComplete"},
	{1 << 10, "DIFlagObjectPointer"},
	{1 << 11, "DIFlagVector"},
	{1 << 12, "DIFlagStaticMember"},
	{1 << 13, "DIFlagLValueReference"},
	{1 << 14, "DIFlagRValueReference"},
	{1 << 15, "DIFlagReserved"},
	{1 << 16, "DIFlagSingleInheritance"},
	{2 << 16, "DIFlagMultipleInheritance"},
	{3 << 16, "DIFlagVirtualInheritance"},
	{1 << 18, "DIFlagIntroducedVirtual"},
	{1 << 19, "DIFlagBitField"},
	{1 << 20, "DIFlagNoReturn"},
	{1 << 22, "DIFlagTypePassByValue"},
	{1 << 23, "DIFlagTypePassByReference"},
	{1 << 24, "DIFlagEnumClass"},
	{1 << 25, "DIFlagThunk"},
	{1 << 26, "DIFlagNonTrivial"},
	{1 << 27, "DIFlagBigEndian"},
	{1 << 28, "DIFlagLittleEndian"},
	{nativeIndirectVirtualBase, "DIFlagIndirectVirtualBase"},
}

// Union returns the set of flags in f or in any of others.
func (f DIFlags) Union(others ...DIFlags) DIFlags {
	for _, other := range others {
		f |= other
	}

	return f
}

// Intersect returns the set of flags in both f and other.
func (f DIFlags) Intersect(other DIFlags) DIFlags {
	return f & other
}

// Without returns f with all the flags of other removed.
func (f DIFlags) Without(other DIFlags) DIFlags {
	return f &^ other
}

// Has returns whether every flag in other is set in f.  The empty set is never
// considered to be contained.
func (f DIFlags) Has(other DIFlags) bool {
	return other != 0 && f&other == other
}

// IsZero returns whether no flags are set.
func (f DIFlags) IsZero() bool {
	return f == 0
}

// Flags splits the set into its individual flags in ascending bit order.
func (f DIFlags) Flags() []DIFlags {
	var flags []DIFlags
	for rest := uint64(f); rest != 0; rest &= rest - 1 {
		flags = append(flags, DIFlags(1)<<bits.TrailingZeros64(rest))
	}

	return flags
}

// Groups of flags which are encoded as a single native field.
const (
	diFlagAccessibility = DIFlagPrivate | DIFlagProtected | DIFlagPublic
	diFlagInheritance   = DIFlagSingleInheritance | DIFlagMultipleInheritance | DIFlagVirtualInheritance
)

// Conflict returns the first two flags of f which share a native field and
// therefore cannot be encoded together.  ok is false if f has no such pair.
func (f DIFlags) Conflict() (first, second DIFlags, ok bool) {
	for _, group := range [...]DIFlags{diFlagAccessibility, diFlagInheritance} {
		if set := f & group; bits.OnesCount64(uint64(set)) > 1 {
			flags := set.Flags()
			return flags[0], flags[1], true
		}
	}

	return 0, 0, false
}

// Native returns the encoding of the flag set expected by the emitter: the
// bitwise OR of the native values of every flag in the set.  Setting two
// flags of the same field is a contract violation.
func (f DIFlags) Native() uint32 {
	if f>>numDIFlags != 0 {
		contractViolation("DIFlags.Native", "undefined debug info flag bits %#x", uint64(f>>numDIFlags<<numDIFlags))
	}

	if first, second, ok := f.Conflict(); ok {
		contractViolation("DIFlags.Native", "conflicting debug info flags %s and %s", first, second)
	}

	var native uint32
	for _, flag := range f.Flags() {
		native |= diFlagInfo[bits.TrailingZeros64(uint64(flag))].native
	}

	return native
}

// DIFlagsFromNative converts a native debug info flag word back into a flag
// set.  The word is split the same way LLVM splits flags: the accessibility
// and inheritance fields are decoded as a whole, then the indirect virtual base
// combination, then every remaining single bit.  Bits which correspond to no
// known flag indicate an incompatible emitter and are fatal.
func DIFlagsFromNative(native uint32) DIFlags {
	var f DIFlags

	switch native & nativeAccessibility {
	case 1:
		f |= DIFlagPrivate
	case 2:
		f |= DIFlagProtected
	case 3:
		f |= DIFlagPublic
	}
	native &^= nativeAccessibility

	switch native & nativePtrToMemberRep {
	case 1 << 16:
		f |= DIFlagSingleInheritance
	case 2 << 16:
		f |= DIFlagMultipleInheritance
	case 3 << 16:
		f |= DIFlagVirtualInheritance
	}
	native &^= nativePtrToMemberRep

	if native&nativeIndirectVirtualBase == nativeIndirectVirtualBase {
		f |= DIFlagIndirectVirtualBase
		native &^= nativeIndirectVirtualBase
	}

	for i, info := range diFlagInfo {
		if bits.OnesCount32(info.native) == 1 && native&info.native != 0 {
			f |= DIFlags(1) << i
			native &^= info.native
		}
	}

	if native != 0 {
		panic(fmt.Sprintf("llvm: unknown native debug info flags %#x", native))
	}

	return f
}

// String returns the flags in LLVM assembly syntax: eg. `DIFlagPublic |
// DIFlagPrototyped`.
func (f DIFlags) String() string {
	if f == 0 {
		return "DIFlagZero"
	}

	var names []string
	for _, flag := range f.Flags() {
		if i := bits.TrailingZeros64(uint64(flag)); i < numDIFlags {
			names = append(names, diFlagInfo[i].name)
		} else {
			names = append(names, fmt.Sprintf("DIFlags(%#x)", uint64(flag)))
		}
	}

	return strings.Join(names, " | ")
}

// ParseDIFlag returns the flag with the given name.  The name is matched case
// insensitively with or without its `DIFlag` prefix: `public`, `Public`, and
// `DIFlagPublic` all name DIFlagPublic.
func ParseDIFlag(name string) (DIFlags, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "diflag")

	if name == "zero" {
		return DIFlagZero, true
	}

	for i, info := range diFlagInfo {
		if strings.ToLower(strings.TrimPrefix(info.name, "DIFlag")) == name {
			return DIFlags(1) << i, true
		}
	}

	return 0, false
}
