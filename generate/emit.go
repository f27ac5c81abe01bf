package generate

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dibuild/llvm"
	"dibuild/manifest"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Emit generates the LLVM module described by m in a fresh context and writes
// its textual IR to w.
func Emit(m *manifest.Manifest, w io.Writer, logger zerolog.Logger) error {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	mod := NewGenerator(ctx, m, logger).Generate()

	if _, err := mod.WriteTo(w); err != nil {
		return errors.Wrapf(err, "failed to write module `%s`", m.Name)
	}

	return nil
}

// EmitFile generates the LLVM module described by m and writes it to outPath.
// The file is only created once generation has succeeded.  If outPath is empty, the module is written next to the manifest with the
// `.ll` extension.  It returns the path written to.
func EmitFile(m *manifest.Manifest, outPath string, logger zerolog.Logger) (string, error) {
	if outPath == "" {
		outPath = DefaultOutputPath(m)
	}

	// Nothing is written until the module is complete.
	var buf bytes.Buffer
	if err := Emit(m, &buf, logger); err != nil {
		return "", err
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to create output file")
	}

	return outPath, nil
}

// DefaultOutputPath returns the path a manifest's module is written to when
// no output path is given.
func DefaultOutputPath(m *manifest.Manifest) string {
	if m.Path == "" {
		return m.Name + ".ll"
	}

	return strings.TrimSuffix(m.Path, filepath.Ext(m.Path)) + ".ll"
}
