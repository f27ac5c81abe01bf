package report

import (
	"fmt"

	"dibuild/llvm"
)

// ReportICE reports an internal error.  These are errors that specifically
// result from a bug or unexpected condition occurring within the tool: they
// are not intended to ever happen.  These errors are always displayed
// regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayICE(fmt.Sprintf(message, args...))

	exit(-1)
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// processing to stop immediately.  However, they are expected errors that
// generally result from invalid configuration of some form: a missing manifest,
// an unwritable output path, etc.
func ReportFatal(message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayFatal(fmt.Sprintf(message, args...))
	}

	exit(1)
}

// ReportStdError reports a non-fatal, standard Go error.  The path is the
// path of the file the error relates to.
func ReportStdError(path string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayStdError(path, err)
	}
}

// ReportWarning reports a warning relating to the file at path.
func ReportWarning(path string, message string, args ...interface{}) {
	if rep.logLevel >= LogLevelWarn {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayWarning(path, fmt.Sprintf(message, args...))
	}
}

// ReportInfo reports an informational message.  It is only displayed in
// verbose mode.
func ReportInfo(tag, message string, args ...interface{}) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayInfo(tag, fmt.Sprintf(message, args...))
	}
}

// -----------------------------------------------------------------------------

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	return rep.isErr
}

// -----------------------------------------------------------------------------

// CatchErrors catches any errors thrown by a `panic` while processing the file
// at path.  Violated LLVM API contracts are bugs in the tool and are reported
// as internal errors.
// NB: This function must ALWAYS be deferred.
func CatchErrors(path string) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*llvm.ContractError); ok {
			ReportICE("%s", cerr)
		} else if serr, ok := x.(error); ok {
			ReportStdError(path, serr)
		} else {
			ReportFatal("%s", x)
		}
	}
}
