package manifest

import (
	"os"

	"dibuild/llvm"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Load loads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read manifest")
	}

	m, err := Parse(buff)
	if err != nil {
		return nil, err
	}

	m.Path = path
	return m, nil
}

// Parse decodes and validates a manifest from its TOML encoding.
func Parse(buff []byte) (*Manifest, error) {
	tm := &tomlManifest{}
	if err := toml.Unmarshal(buff, tm); err != nil {
		return nil, errors.Wrap(err, "failed to decode manifest")
	}

	v := &validator{
		m:      &Manifest{},
		scopes: make(map[string]bool),
		types:  make(map[string]bool),
	}

	if err := v.validate(tm); err != nil {
		return nil, err
	}

	return v.m, nil
}

// validator converts a decoded manifest into a manifest, checking that every
// name it references is defined.
type validator struct {
	m *Manifest

	// scopes is the set of module and namespace names defined so far.
	scopes map[string]bool

	// types is the set of type names defined so far.
	types map[string]bool
}

func (v *validator) validate(tm *tomlManifest) error {
	if tm.Module == nil || tm.Module.Name == "" {
		return errors.New("missing module name")
	}

	v.m.Name = tm.Module.Name
	v.m.Target = tm.Module.Target
	v.m.AllowUnresolved = tm.Module.AllowUnresolved

	if tm.CompileUnit == nil {
		return errors.Errorf("module `%s` has no compile unit", v.m.Name)
	}

	cu, err := convertCompileUnit(tm.CompileUnit)
	if err != nil {
		return errors.Wrap(err, "invalid compile unit")
	}
	v.m.CompileUnit = cu

	for i, tt := range tm.Types {
		if err := v.addType(tt); err != nil {
			return errors.Wrapf(err, "invalid type %d", i+1)
		}
	}

	for i, tdm := range tm.Modules {
		if err := v.addModule(tdm); err != nil {
			return errors.Wrapf(err, "invalid module %d", i+1)
		}
	}

	for i, tns := range tm.Namespaces {
		if err := v.addNamespace(tns); err != nil {
			return errors.Wrapf(err, "invalid namespace %d", i+1)
		}
	}

	funcNames := make(map[string]bool)
	for i, tf := range tm.Functions {
		fn, err := v.convertFunction(tf)
		if err != nil {
			return errors.Wrapf(err, "invalid function %d", i+1)
		}

		if funcNames[fn.Name] {
			return errors.Errorf("multiple functions named `%s`", fn.Name)
		}
		funcNames[fn.Name] = true

		v.m.Functions = append(v.m.Functions, fn)
	}

	return nil
}

// convertCompileUnit converts a TOML compile unit.
func convertCompileUnit(tcu *tomlCompileUnit) (*CompileUnit, error) {
	if tcu.File == "" {
		return nil, errors.New("missing file name")
	}

	lang, ok := llvm.ParseSourceLanguage(tcu.Language)
	if !ok {
		return nil, errors.Errorf("unknown source language `%s`", tcu.Language)
	}

	kind := llvm.DWARFEmissionFull
	if tcu.EmissionKind != "" {
		if kind, ok = llvm.ParseEmissionKind(tcu.EmissionKind); !ok {
			return nil, errors.Errorf("unknown emission kind `%s`", tcu.EmissionKind)
		}
	}

	return &CompileUnit{
		File:         tcu.File,
		Directory:    tcu.Directory,
		Language:     lang,
		EmissionKind: kind,
		Options: llvm.CompileUnitOptions{
			Producer:              tcu.Producer,
			Optimized:             tcu.Optimized,
			Flags:                 tcu.Flags,
			RuntimeVersion:        tcu.RuntimeVersion,
			SplitName:             tcu.SplitName,
			DWOId:                 tcu.DWOId,
			SplitDebugInlining:    tcu.SplitDebugInlining,
			DebugInfoForProfiling: tcu.DebugInfoForProfiling,
		},
	}, nil
}

// convertFlags converts a list of flag names into a flag set.
func convertFlags(names []string) (llvm.DIFlags, error) {
	var flags llvm.DIFlags

	for _, name := range names {
		flag, ok := llvm.ParseDIFlag(name)
		if !ok {
			return 0, errors.Errorf("unknown flag `%s`", name)
		}

		flags = flags.Union(flag)
	}

	if first, second, ok := flags.Conflict(); ok {
		return 0, errors.Errorf("conflicting flags `%s` and `%s`", first, second)
	}

	return flags, nil
}

func (v *validator) addType(tt *tomlBasicType) error {
	if tt.Name == "" {
		return errors.New("missing type name")
	}

	if v.types[tt.Name] {
		return errors.Errorf("multiple types named `%s`", tt.Name)
	}

	enc, ok := llvm.ParseTypeEncoding(tt.Encoding)
	if !ok {
		return errors.Errorf("unknown encoding `%s` for type `%s`", tt.Encoding, tt.Name)
	}

	flags, err := convertFlags(tt.Flags)
	if err != nil {
		return err
	}

	v.types[tt.Name] = true
	v.m.Types = append(v.m.Types, &BasicType{
		Name:     tt.Name,
		Size:     tt.Size,
		Encoding: enc,
		Flags:    flags,
	})
	return nil
}

// checkScope checks that a scope name refers to a previously defined scope.
// The empty name always refers to the compile unit.
func (v *validator) checkScope(name string) error {
	if name != "" && !v.scopes[name] {
		return errors.Errorf("undefined scope `%s`", name)
	}

	return nil
}

// defineScope adds a new scope name.
func (v *validator) defineScope(name string) error {
	if name == "" {
		return errors.New("missing scope name")
	}

	if v.scopes[name] {
		return errors.Errorf("multiple scopes named `%s`", name)
	}

	v.scopes[name] = true
	return nil
}

func (v *validator) addModule(tdm *tomlDIModule) error {
	if err := v.checkScope(tdm.Parent); err != nil {
		return err
	}

	if err := v.defineScope(tdm.Name); err != nil {
		return err
	}

	v.m.Modules = append(v.m.Modules, &Module{
		Name:   tdm.Name,
		Parent: tdm.Parent,
		Options: llvm.ModuleOptions{
			ConfigMacros: tdm.ConfigMacros,
			IncludePath:  tdm.IncludePath,
			Isysroot:     tdm.Isysroot,
		},
	})
	return nil
}

func (v *validator) addNamespace(tns *tomlNamespace) error {
	if err := v.checkScope(tns.Parent); err != nil {
		return err
	}

	if err := v.defineScope(tns.Name); err != nil {
		return err
	}

	v.m.Namespaces = append(v.m.Namespaces, &Namespace{
		Name:          tns.Name,
		Parent:        tns.Parent,
		ExportSymbols: tns.ExportSymbols,
	})
	return nil
}

func (v *validator) convertFunction(tf *tomlFunction) (*Function, error) {
	if tf.Name == "" {
		return nil, errors.New("missing function name")
	}

	if tf.Declaration && !v.m.AllowUnresolved {
		return nil, errors.Errorf("function `%s` is a declaration but module `%s` does not allow unresolved functions", tf.Name, v.m.Name)
	}

	if err := v.checkScope(tf.Scope); err != nil {
		return nil, errors.Wrapf(err, "in function `%s`", tf.Name)
	}

	for _, typ := range tf.Types {
		if !v.types[typ] {
			return nil, errors.Errorf("undefined type `%s` in function `%s`", typ, tf.Name)
		}
	}

	flags, err := convertFlags(tf.Flags)
	if err != nil {
		return nil, errors.Wrapf(err, "in function `%s`", tf.Name)
	}

	subFlags, err := convertFlags(tf.SubroutineFlags)
	if err != nil {
		return nil, errors.Wrapf(err, "in subroutine type of function `%s`", tf.Name)
	}

	if tf.Line < 0 || tf.ScopeLine < 0 {
		return nil, errors.Errorf("function `%s` has a negative line number", tf.Name)
	}

	scopeLine := tf.ScopeLine
	if scopeLine == 0 {
		scopeLine = tf.Line
	}

	fn := &Function{
		Name:            tf.Name,
		LinkageName:     tf.LinkageName,
		Scope:           tf.Scope,
		Line:            tf.Line,
		ScopeLine:       scopeLine,
		IsLocal:         tf.Local,
		IsDefinition:    !tf.Declaration,
		IsOptimized:     tf.Optimized,
		Flags:           flags,
		Types:           tf.Types,
		SubroutineFlags: subFlags,
	}

	for i, tb := range tf.Blocks {
		if tb.Line < 0 || tb.Column < 0 {
			return nil, errors.Errorf("block %d of function `%s` has a negative line or column", i+1, tf.Name)
		}

		fn.Blocks = append(fn.Blocks, &Block{Line: tb.Line, Column: tb.Column})
	}

	for i, tl := range tf.Locations {
		if tl.Line < 0 || tl.Column < 0 {
			return nil, errors.Errorf("location %d of function `%s` has a negative line or column", i+1, tf.Name)
		}

		if tl.Block < 0 || tl.Block > len(fn.Blocks) {
			return nil, errors.Errorf("location %d of function `%s` refers to undefined block %d", i+1, tf.Name, tl.Block)
		}

		if tl.InlinedAt < 0 || tl.InlinedAt > i {
			return nil, errors.Errorf("location %d of function `%s` must be inlined at an earlier location", i+1, tf.Name)
		}

		fn.Locations = append(fn.Locations, &Location{
			Line:      tl.Line,
			Column:    tl.Column,
			Block:     tl.Block,
			InlinedAt: tl.InlinedAt,
		})
	}

	if len(fn.Locations) > 0 && !fn.IsDefinition {
		return nil, errors.Errorf("function `%s` is a declaration and cannot have locations", tf.Name)
	}

	return fn, nil
}
