package llvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalContext(t *testing.T) {
	ctx := GetGlobalContext()
	require.NotNil(t, ctx)
	assert.Same(t, ctx, GetGlobalContext())

	ctx.Dispose()

	fresh := GetGlobalContext()
	assert.NotSame(t, ctx, fresh)
	assert.False(t, fresh.IsDisposed())
}

func TestContextsAreDistinct(t *testing.T) {
	a, b := NewContext(), NewContext()
	defer a.Dispose()
	defer b.Dispose()

	assert.NotEqual(t, a.id, b.id)
}

func TestContextDisposesInReverseOrder(t *testing.T) {
	ctx := NewContext()

	var order []string
	ctx.takeOwnership(recorder{"first", &order})
	ctx.takeOwnership(recorder{"second", &order})

	ctx.Dispose()
	assert.Equal(t, []string{"second", "first"}, order)
	assert.True(t, ctx.IsDisposed())
}

func TestDisposedContext(t *testing.T) {
	ctx := NewContext()
	mod := ctx.NewModule("m")
	ctx.Dispose()

	assertContractViolation(t, "Context.NewModule", func() { ctx.NewModule("n") })
	assertContractViolation(t, "Module.NewDIBuilder", func() { mod.NewDIBuilder(false) })
	assertContractViolation(t, "Module.String", func() { _ = mod.String() })
}

// recorder is an owned object which records its disposal.
type recorder struct {
	name  string
	order *[]string
}

func (r recorder) dispose() {
	*r.order = append(*r.order, r.name)
}
