package llvm

import (
	"io"
	"os"

	"github.com/llir/llvm/ir"
	"github.com/pkg/errors"
)

// Module represents an LLVM module.
type Module struct {
	m    *ir.Module
	ctx  *Context
	name string

	// disposed indicates whether the module has been disposed.
	disposed bool
}

// NewModule creates a new module with the given name in the context.
func (c *Context) NewModule(name string) *Module {
	if c.disposed {
		contractViolation("Context.NewModule", "context %d has been disposed", c.id)
	}

	m := &Module{m: ir.NewModule(), ctx: c, name: name}
	m.m.SourceFilename = name
	c.takeOwnership(m)
	return m
}

// dispose disposes of the current module.
func (m *Module) dispose() {
	m.disposed = true
}

// checkAlive validates that the module can still be used by op.
func (m *Module) checkAlive(op string) {
	if m.disposed || m.ctx.disposed {
		contractViolation(op, "module `%s` has been disposed", m.name)
	}
}

// Context returns the context that owns the module.
func (m *Module) Context() *Context {
	return m.ctx
}

// Name returns the name of the module.
func (m *Module) Name() string {
	return m.name
}

// SourceFileName returns the source file name of the module.
func (m *Module) SourceFileName() string {
	return m.m.SourceFilename
}

// SetSourceFileName sets the source file name of the module to fname.
func (m *Module) SetSourceFileName(fname string) {
	m.checkAlive("Module.SetSourceFileName")
	m.m.SourceFilename = fname
}

// Target returns the target triple of the module.
func (m *Module) Target() string {
	return m.m.TargetTriple
}

// SetTarget sets the target triple of the module.
func (m *Module) SetTarget(triple string) {
	m.checkAlive("Module.SetTarget")
	m.m.TargetTriple = triple
}

// -----------------------------------------------------------------------------

// String returns the LLVM IR of the module.
func (m *Module) String() string {
	m.checkAlive("Module.String")
	return m.m.String()
}

// WriteTo writes the LLVM IR of the module to w.
func (m *Module) WriteTo(w io.Writer) (int64, error) {
	m.checkAlive("Module.WriteTo")
	return m.m.WriteTo(w)
}

// WriteToFile writes the LLVM IR of the module to a file.
func (m *Module) WriteToFile(filepath string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	defer f.Close()

	if _, err := m.WriteTo(f); err != nil {
		return errors.Wrapf(err, "failed to write module `%s`", m.name)
	}

	return nil
}
