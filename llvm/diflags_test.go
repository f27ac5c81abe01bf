package llvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allDIFlags() []DIFlags {
	flags := make([]DIFlags, numDIFlags)
	for i := range flags {
		flags[i] = DIFlags(1) << i
	}

	return flags
}

func TestDIFlagNativeRoundTrip(t *testing.T) {
	seen := make(map[uint32]DIFlags)

	for _, flag := range allDIFlags() {
		native := flag.Native()

		other, dup := seen[native]
		require.False(t, dup, "%s and %s share native value %#x", flag, other, native)
		seen[native] = flag

		assert.Equal(t, flag, DIFlagsFromNative(native), "round trip of %s", flag)
	}

	assert.Equal(t, DIFlagZero, DIFlagsFromNative(0))
	assert.Equal(t, uint32(0), DIFlagZero.Native())
}

func TestDIFlagNativeValues(t *testing.T) {
	tests := []struct {
		flags  DIFlags
		native uint32
	}{
		{DIFlagPrivate, 1},
		{DIFlagProtected, 2},
		{DIFlagPublic, 3},
		{DIFlagFwdDecl, 1 << 2},
		{DIFlagPrototyped, 1 << 8},
		{DIFlagSingleInheritance, 1 << 16},
		{DIFlagMultipleInheritance, 2 << 16},
		{DIFlagVirtualInheritance, 3 << 16},
		{DIFlagIntroducedVirtual, 1 << 18},
		{DIFlagNoReturn, 1 << 20},
		{DIFlagLittleEndian, 1 << 28},
		{DIFlagIndirectVirtualBase, (1 << 2) | (1 << 5)},
		{DIFlagPublic.Union(DIFlagPrototyped), 3 | 1<<8},
		{DIFlagArtificial.Union(DIFlagNoReturn).Union(DIFlagThunk), 1<<6 | 1<<20 | 1<<25},
	}

	for _, test := range tests {
		t.Run(test.flags.String(), func(t *testing.T) {
			assert.Equal(t, test.native, test.flags.Native())
			assert.Equal(t, test.flags, DIFlagsFromNative(test.native))
		})
	}
}

func TestDIFlagsFromNativeSplitsFields(t *testing.T) {
	// FwdDecl and Virtual together are the indirect virtual base flag.
	assert.Equal(t, DIFlagIndirectVirtualBase, DIFlagsFromNative(1<<2|1<<5))
	assert.Equal(t, DIFlagFwdDecl, DIFlagsFromNative(1<<2))
	assert.Equal(t, DIFlagVirtual, DIFlagsFromNative(1<<5))

	assert.Equal(t,
		DIFlagProtected.Union(DIFlagVirtualInheritance).Union(DIFlagBitField),
		DIFlagsFromNative(2|3<<16|1<<19),
	)
}

func TestDIFlagsFromNativeUnknownBits(t *testing.T) {
	assert.Panics(t, func() { DIFlagsFromNative(1 << 30) })
	assert.Panics(t, func() { DIFlagsFromNative(1 << 21) })
}

func TestDIFlagSetOperations(t *testing.T) {
	flags := DIFlagPublic.Union(DIFlagPrototyped, DIFlagNoReturn)

	assert.True(t, flags.Has(DIFlagPublic))
	assert.True(t, flags.Has(DIFlagPublic.Union(DIFlagNoReturn)))
	assert.False(t, flags.Has(DIFlagPrivate))
	assert.False(t, flags.Has(DIFlagZero))

	assert.Equal(t, DIFlagPrototyped, flags.Intersect(DIFlagPrototyped.Union(DIFlagVirtual)))
	assert.Equal(t, DIFlagPublic.Union(DIFlagNoReturn), flags.Without(DIFlagPrototyped))
	assert.Equal(t, []DIFlags{DIFlagPublic, DIFlagPrototyped, DIFlagNoReturn}, flags.Flags())

	assert.True(t, DIFlagZero.IsZero())
	assert.False(t, flags.IsZero())
	assert.True(t, flags.Without(flags).IsZero())
}

func TestDIFlagStrings(t *testing.T) {
	assert.Equal(t, "DIFlagZero", DIFlagZero.String())
	assert.Equal(t, "DIFlagPublic", DIFlagPublic.String())
	assert.Equal(t, "DIFlagPublic | DIFlagPrototyped", DIFlagPublic.Union(DIFlagPrototyped).String())

	for _, flag := range allDIFlags() {
		parsed, ok := ParseDIFlag(flag.String())
		require.True(t, ok, flag.String())
		assert.Equal(t, flag, parsed)
	}

	parsed, ok := ParseDIFlag("noreturn")
	require.True(t, ok)
	assert.Equal(t, DIFlagNoReturn, parsed)

	_, ok = ParseDIFlag("bogus")
	assert.False(t, ok)
}

func TestDIFlagNativeUndefinedBits(t *testing.T) {
	assert.PanicsWithError(t,
		"llvm: DIFlags.Native: undefined debug info flag bits 0x80000000",
		func() { DIFlags(1 << 31).Native() },
	)
}

func TestDIFlagConflicts(t *testing.T) {
	tests := []struct {
		flags         DIFlags
		first, second DIFlags
	}{
		{DIFlagPrivate | DIFlagProtected, DIFlagPrivate, DIFlagProtected},
		{DIFlagProtected | DIFlagPublic | DIFlagPrototyped, DIFlagProtected, DIFlagPublic},
		{DIFlagSingleInheritance | DIFlagMultipleInheritance, DIFlagSingleInheritance, DIFlagMultipleInheritance},
		{DIFlagPublic | DIFlagSingleInheritance | DIFlagVirtualInheritance, DIFlagSingleInheritance, DIFlagVirtualInheritance},
	}

	for _, test := range tests {
		t.Run(test.flags.String(), func(t *testing.T) {
			first, second, ok := test.flags.Conflict()
			require.True(t, ok)
			assert.Equal(t, test.first, first)
			assert.Equal(t, test.second, second)

			assert.Panics(t, func() { test.flags.Native() })
		})
	}

	// One flag from each field is fine.
	_, _, ok := DIFlagPublic.Union(DIFlagVirtualInheritance).Conflict()
	assert.False(t, ok)
}

func TestDIFlagNativeConflictMessage(t *testing.T) {
	// Private and Protected would otherwise encode to Public.
	assert.PanicsWithError(t,
		"llvm: DIFlags.Native: conflicting debug info flags DIFlagPrivate and DIFlagProtected",
		func() { (DIFlagPrivate | DIFlagProtected).Native() },
	)

	assertContractViolation(t, "DIFlags.Native", func() {
		(DIFlagSingleInheritance | DIFlagMultipleInheritance).Native()
	})
}
