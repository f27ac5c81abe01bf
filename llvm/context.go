package llvm

import (
	"sync/atomic"

	"github.com/llir/llvm/ir/metadata"
)

// OwnedObject represents an LLVM object that can be disposed.
type OwnedObject interface {
	// dispose frees all the resources associated with the LLVM object.
	dispose()
}

// Context represents an LLVM context.  It is the allocation root for every
// module and every metadata node created for those modules: metadata handles
// are tagged with the context that produced them and are only valid while that
// context is alive.
type Context struct {
	// id uniquely identifies the context within the process.
	id uint64

	// The list of LLVM objects owned by this context.
	ownedObjects []OwnedObject

	// nodes maps every metadata node created in this context to the record
	// backing its handles so that nodes read back from the IR resolve to the
	// same handle identity.
	nodes map[metadata.Definition]*node

	// disposed indicates whether the context has been disposed.
	disposed bool
}

// contextCounter is used to hand out context IDs.
var contextCounter uint64

// NewContext creates a new LLVM context.
func NewContext() *Context {
	return &Context{
		id:    atomic.AddUint64(&contextCounter, 1),
		nodes: make(map[metadata.Definition]*node),
	}
}

// The global context reference.
var globalCtx *Context

// GetGlobalContext returns the global context, creating it if it does not exist
// or if it has been disposed.
func GetGlobalContext() *Context {
	if globalCtx == nil || globalCtx.disposed {
		globalCtx = NewContext()
	}

	return globalCtx
}

// takeOwnership marks the given disposable LLVM object as being owned by this
// context: this context is responsible for its disposal.
func (c *Context) takeOwnership(obj OwnedObject) {
	c.ownedObjects = append(c.ownedObjects, obj)
}

// Dispose frees all the resources associated with this context: the context
// itself and all the owned resources of this context.  Owned objects are
// disposed in the reverse order they were created in so that debug info
// builders are finalized while their modules are still alive.
func (c *Context) Dispose() {
	if c.disposed {
		contractViolation("Context.Dispose", "context %d disposed twice", c.id)
	}

	for i := len(c.ownedObjects) - 1; i >= 0; i-- {
		c.ownedObjects[i].dispose()
	}

	c.ownedObjects = nil
	c.nodes = nil
	c.disposed = true
}

// IsDisposed returns whether the context has been disposed.
func (c *Context) IsDisposed() bool {
	return c.disposed
}

// -----------------------------------------------------------------------------

// register records a newly created metadata node in the context and returns
// the record backing its handles.
func (c *Context) register(def metadata.Definition, id int64, kind MetadataKind) *node {
	n := &node{def: def, id: id, kind: kind, ctx: c}
	c.nodes[def] = n
	return n
}

// lookup returns the record for a metadata node created in this context.
func (c *Context) lookup(def metadata.Definition) (*node, bool) {
	if c.disposed || def == nil {
		return nil, false
	}

	n, ok := c.nodes[def]
	return n, ok
}

// lookupField resolves a metadata field read back from the IR to its record.
func (c *Context) lookupField(field metadata.Field) (*node, bool) {
	if field == nil {
		return nil, false
	}

	def, ok := field.(metadata.Definition)
	if !ok {
		return nil, false
	}

	return c.lookup(def)
}

// -----------------------------------------------------------------------------

// NewDILocation creates a new DI location in the context.  inlinedAt may be a
// nil location in which case the location is not inlined.  Locations created
// directly on the context belong to no module and are not numbered: they are
// printed inline wherever they are attached.
func (c *Context) NewDILocation(line, col int, scope DIScope, inlinedAt DILocation) (dil DILocation) {
	loc := c.newLocation("Context.NewDILocation", line, col, scope, inlinedAt)
	loc.SetID(-1)

	dil.n = c.register(loc, -1, DILocationMetadataKind)
	return
}

// newLocation builds the location node shared by the context and DI builder
// location constructors.
func (c *Context) newLocation(op string, line, col int, scope DIScope, inlinedAt DILocation) *metadata.DILocation {
	if c.disposed {
		contractViolation(op, "context %d has been disposed", c.id)
	}

	scope.check(op, "scope", c)
	checkPosition(op, line, col)

	loc := &metadata.DILocation{
		Line:   int64(line),
		Column: int64(col),
		Scope:  scope.field(),
	}

	if !inlinedAt.IsNil() {
		inlinedAt.check(op, "inlinedAt", c)
		loc.InlinedAt = inlinedAt.n.def.(*metadata.DILocation)
	}

	return loc
}
