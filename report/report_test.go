package report

import (
	"bytes"
	"testing"

	"dibuild/llvm"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureReporter replaces the global reporter with one writing to a buffer
// and stubs out program termination.  It returns the buffer and a pointer to
// the last exit code (-100 if exit was not called).
func captureReporter(t *testing.T, logLevel int) (*bytes.Buffer, *int) {
	t.Helper()

	prevRep, prevExit := rep, exit
	t.Cleanup(func() {
		rep, exit = prevRep, prevExit
	})

	buf := &bytes.Buffer{}
	rep = newReporter(logLevel, buf)

	code := -100
	exit = func(c int) { code = c }

	return buf, &code
}

func TestParseLogLevel(t *testing.T) {
	for i, name := range LogLevelNames() {
		level, ok := ParseLogLevel(name)
		require.True(t, ok)
		assert.Equal(t, i, level)
	}

	level, ok := ParseLogLevel("WARN")
	require.True(t, ok)
	assert.Equal(t, LogLevelWarn, level)

	_, ok = ParseLogLevel("loud")
	assert.False(t, ok)
}

func TestReportStdError(t *testing.T) {
	buf, _ := captureReporter(t, LogLevelError)

	assert.False(t, AnyErrors())
	ReportStdError("dbg.toml", errors.Wrap(errors.New("unknown language `chai`"), "invalid compile unit"))

	assert.True(t, AnyErrors())
	assert.Contains(t, buf.String(), "dbg.toml")
	assert.Contains(t, buf.String(), "invalid compile unit")
	assert.Contains(t, buf.String(), "unknown language `chai`")
}

func TestSilentReporter(t *testing.T) {
	buf, code := captureReporter(t, LogLevelSilent)

	ReportStdError("dbg.toml", errors.New("bad"))
	ReportWarning("dbg.toml", "odd")
	ReportInfo("Emitted", "out.ll")
	ReportFatal("cannot continue")

	assert.Empty(t, buf.String())
	assert.True(t, AnyErrors())
	assert.Equal(t, 1, *code)
}

func TestWarningsAndInfo(t *testing.T) {
	buf, _ := captureReporter(t, LogLevelWarn)

	ReportWarning("dbg.toml", "function `%s` has no locations", "main")
	ReportInfo("Emitted", "out.ll")

	assert.Contains(t, buf.String(), "function `main` has no locations")
	assert.NotContains(t, buf.String(), "out.ll")
	assert.False(t, AnyErrors())
}

func TestCatchContractError(t *testing.T) {
	buf, code := captureReporter(t, LogLevelError)

	func() {
		defer CatchErrors("dbg.toml")
		panic(&llvm.ContractError{Op: "DIBuilder.Finalize", Message: "module `m` has no compile unit"})
	}()

	assert.Equal(t, -1, *code)
	assert.Contains(t, buf.String(), "internal error")
	assert.Contains(t, buf.String(), "DIBuilder.Finalize")
}

func TestCatchStdError(t *testing.T) {
	buf, code := captureReporter(t, LogLevelError)

	func() {
		defer CatchErrors("dbg.toml")
		panic(errors.New("boom"))
	}()

	assert.Equal(t, -100, *code)
	assert.True(t, AnyErrors())
	assert.Contains(t, buf.String(), "boom")
}

func TestCatchOther(t *testing.T) {
	buf, code := captureReporter(t, LogLevelError)

	func() {
		defer CatchErrors("dbg.toml")
		panic("unexpected")
	}()

	assert.Equal(t, 1, *code)
	assert.Contains(t, buf.String(), "fatal error")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "debug", Output: &buf})

	logger.Trace().Msg("trace message")
	logger.Debug().Msg("debug message")

	assert.NotContains(t, buf.String(), "trace message")
	assert.Contains(t, buf.String(), "debug message")
}

func TestReporterLoggerFollowsLogLevel(t *testing.T) {
	buf, _ := captureReporter(t, LogLevelWarn)
	logger := Logger()
	logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	buf, _ = captureReporter(t, LogLevelVerbose)
	logger = Logger()
	logger.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
