package llvm

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/metadata"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// dbgAttachment is the name of the debug info metadata attachment.
const dbgAttachment = "dbg"

// attach sets the `!dbg` attachment of a list of attachments to def.
func attach(mds []*metadata.Attachment, def metadata.Definition) []*metadata.Attachment {
	md := &metadata.Attachment{Name: dbgAttachment, Node: def.(metadata.MDNode)}

	for i, prev := range mds {
		if prev.Name == dbgAttachment {
			mds[i] = md
			return mds
		}
	}

	return append(mds, md)
}

// attachment returns the record of the `!dbg` attachment of a list of
// attachments.
func attachment(ctx *Context, mds []*metadata.Attachment) (*node, bool) {
	for _, md := range mds {
		if md.Name == dbgAttachment {
			def, ok := md.Node.(metadata.Definition)
			if !ok {
				return nil, false
			}

			return ctx.lookup(def)
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// Function represents an LLVM function.
type Function struct {
	f   *ir.Func
	mod *Module
}

// AddFunction adds a new function to the module.
func (m *Module) AddFunction(name string, retType types.Type, paramTypes ...types.Type) Function {
	m.checkAlive("Module.AddFunction")

	params := make([]*ir.Param, len(paramTypes))
	for i, typ := range paramTypes {
		params[i] = ir.NewParam("", typ)
	}

	return Function{f: m.m.NewFunc(name, retType, params...), mod: m}
}

// GetFunction gets a function by name from the module.
func (m *Module) GetFunction(name string) (Function, bool) {
	for _, f := range m.m.Funcs {
		if f.Name() == name {
			return Function{f: f, mod: m}, true
		}
	}

	return Function{}, false
}

// Name returns the name of the function.
func (fn Function) Name() string {
	return fn.f.Name()
}

// NumParams returns the number of parameters the function takes.
func (fn Function) NumParams() int {
	return len(fn.f.Params)
}

// Subprogram returns the sub-program associated with the function.
func (fn Function) Subprogram() (dis DISubprogram, exists bool) {
	dis.n, exists = attachment(fn.mod.ctx, fn.f.Metadata)
	return
}

// SetSubprogram sets the sub-program associated with the function to dis.
func (fn Function) SetSubprogram(dis DISubprogram) {
	const op = "Function.SetSubprogram"
	fn.mod.checkAlive(op)
	dis.check(op, "dis", fn.mod.ctx)

	fn.f.Metadata = attach(fn.f.Metadata, dis.ptr())
}

// NewBlock appends a new basic block to the function.
func (fn Function) NewBlock(name string) BasicBlock {
	fn.mod.checkAlive("Function.NewBlock")
	return BasicBlock{b: fn.f.NewBlock(name), fn: fn}
}

// -----------------------------------------------------------------------------

// BasicBlock represents an LLVM basic block.
type BasicBlock struct {
	b  *ir.Block
	fn Function
}

// Name returns the name of the basic block.
func (bb BasicBlock) Name() string {
	return bb.b.Name()
}

// Parent returns the function containing the basic block.
func (bb BasicBlock) Parent() Function {
	return bb.fn
}

// Terminator returns the terminator of the basic block if it has one.
func (bb BasicBlock) Terminator() (term Terminator, exists bool) {
	if ret, ok := bb.b.Term.(*ir.TermRet); ok {
		return Terminator{t: ret, ctx: bb.fn.mod.ctx}, true
	}

	return
}

// -----------------------------------------------------------------------------

// Terminator represents an LLVM terminator instruction.
type Terminator struct {
	t   *ir.TermRet
	ctx *Context
}

// Location returns the debug location of the terminator.
func (term Terminator) Location() (dil DILocation, exists bool) {
	dil.n, exists = attachment(term.ctx, term.t.Metadata)
	return
}

// -----------------------------------------------------------------------------

// IRBuilder represents an LLVM IR builder.  The builder tags every instruction
// it builds with its current debug location.
type IRBuilder struct {
	ctx   *Context
	block BasicBlock
	loc   DILocation
}

// NewIRBuilder creates a new IR builder in the given context.
func (c *Context) NewIRBuilder() *IRBuilder {
	return &IRBuilder{ctx: c}
}

// Block returns the current basic block the builder is positioned over.
func (irb *IRBuilder) Block() BasicBlock {
	return irb.block
}

// MoveToEnd moves the builder to the end of bb.
func (irb *IRBuilder) MoveToEnd(bb BasicBlock) {
	if bb.fn.mod.ctx != irb.ctx {
		contractViolation("IRBuilder.MoveToEnd", "block `%s` belongs to another context", bb.Name())
	}

	irb.block = bb
}

// Location returns the current debug location of the builder.
func (irb *IRBuilder) Location() (DILocation, bool) {
	return irb.loc, !irb.loc.IsNil()
}

// SetLocation sets the current debug location of the builder.
func (irb *IRBuilder) SetLocation(dil DILocation) {
	dil.check("IRBuilder.SetLocation", "dil", irb.ctx)
	irb.loc = dil
}

// ClearLocation clears the current debug location of the builder.
func (irb *IRBuilder) ClearLocation() {
	irb.loc = DILocation{}
}

// BuildRet builds a `ret` instruction.  Aggregate returns are not supported:
// at most one value may be returned.
func (irb *IRBuilder) BuildRet(values ...value.Value) (ret Terminator) {
	const op = "IRBuilder.BuildRet"

	if irb.block.b == nil {
		contractViolation(op, "IR builder is not positioned over a block")
	}

	irb.block.fn.mod.checkAlive(op)

	var x value.Value
	switch len(values) {
	case 0:
	case 1:
		x = values[0]
	default:
		contractViolation(op, "cannot return %d values", len(values))
	}

	ret.t = irb.block.b.NewRet(x)
	ret.ctx = irb.ctx

	if !irb.loc.IsNil() {
		irb.loc.check(op, "location", irb.ctx)
		ret.t.Metadata = attach(ret.t.Metadata, irb.loc.ptr())
	}

	return
}
