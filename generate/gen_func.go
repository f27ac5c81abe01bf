package generate

import (
	"dibuild/llvm"
	"dibuild/manifest"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genFunction generates a function and its debug information.
func (g *Generator) genFunction(fn *manifest.Function) {
	diTypes := make([]llvm.DIType, len(fn.Types))
	for i, name := range fn.Types {
		diTypes[i] = g.types[name]
	}

	sp := g.dib.NewFunction(
		g.scope(fn.Scope),
		fn.Name, fn.LinkageName,
		g.file, fn.Line,
		g.dib.NewSubroutineType(g.file, fn.SubroutineFlags, diTypes...),
		fn.IsLocal, fn.IsDefinition,
		fn.ScopeLine,
		fn.Flags,
		fn.IsOptimized,
	)

	retType, paramTypes := g.signature(fn)
	llFunc := g.mod.AddFunction(fn.Name, retType, paramTypes...)
	llFunc.SetSubprogram(sp)

	if !fn.IsDefinition {
		return
	}

	blocks := make([]llvm.DIScope, len(fn.Blocks))
	for i, b := range fn.Blocks {
		blocks[i] = g.dib.NewLexicalBlock(sp.AsScope(), g.file, b.Line, b.Column).AsScope()
	}

	locs := make([]llvm.DILocation, len(fn.Locations))
	for i, loc := range fn.Locations {
		scope := sp.AsScope()
		if loc.Block > 0 {
			scope = blocks[loc.Block-1]
		}

		var inlinedAt llvm.DILocation
		if loc.InlinedAt > 0 {
			inlinedAt = locs[loc.InlinedAt-1]
		}

		locs[i] = g.dib.NewDebugLocation(loc.Line, loc.Column, scope, inlinedAt)
	}

	g.irb.MoveToEnd(llFunc.NewBlock("entry"))
	if len(locs) > 0 {
		g.irb.SetLocation(locs[len(locs)-1])
	} else {
		g.irb.ClearLocation()
	}

	if retType.Equal(types.Void) {
		g.irb.BuildRet()
	} else {
		g.irb.BuildRet(zeroValue(retType))
	}
}

// signature returns the IR return and parameter types of a function.  The
// first of the function's types is its return type.
func (g *Generator) signature(fn *manifest.Function) (types.Type, []types.Type) {
	if len(fn.Types) == 0 {
		return types.Void, nil
	}

	var irTypes []types.Type
	for _, name := range fn.Types {
		irTypes = append(irTypes, g.irType(name))
	}

	return irTypes[0], irTypes[1:]
}

// irType returns the IR type used to represent the basic type with the given
// name.
func (g *Generator) irType(name string) types.Type {
	for _, bt := range g.m.Types {
		if bt.Name != name {
			continue
		}

		switch bt.Encoding {
		case llvm.FloatTypeEncoding:
			switch bt.Size {
			case 16:
				return types.Half
			case 32:
				return types.Float
			case 64:
				return types.Double
			}
		case llvm.BooleanTypeEncoding:
			return types.I1
		}

		if bt.Size > 0 {
			return types.NewInt(bt.Size)
		}
	}

	return types.I8
}

// zeroValue returns the zero value of an IR type.
func zeroValue(typ types.Type) value.Value {
	switch t := typ.(type) {
	case *types.IntType:
		return constant.NewInt(t, 0)
	case *types.FloatType:
		return constant.NewFloat(t, 0)
	}

	return constant.NewZeroInitializer(typ)
}
