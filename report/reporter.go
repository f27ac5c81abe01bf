package report

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during program execution.  The reporter respects the set
// log level and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether or not an error has been detected.
	isErr bool

	// out is the writer messages are displayed to.
	out io.Writer

	// logger is the structured logger handed to the debug info builder.
	logger zerolog.Logger
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all messages to the user (default).
)

// logLevelNames are the names of the log levels accepted on the command line.
var logLevelNames = []string{"silent", "error", "warn", "verbose"}

// LogLevelNames returns the names of all the log levels in ascending order.
func LogLevelNames() []string {
	return append([]string(nil), logLevelNames...)
}

// ParseLogLevel returns the log level with the given name.
func ParseLogLevel(name string) (int, bool) {
	for i, levelName := range logLevelNames {
		if strings.EqualFold(levelName, name) {
			return i, true
		}
	}

	return 0, false
}

// rep is the global reporter instance.
var rep = newReporter(LogLevelVerbose, os.Stdout)

// exit is the function used to terminate the program on fatal errors.
var exit = os.Exit

func newReporter(logLevel int, out io.Writer) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
		out:      out,
		logger:   NewLogger(configForLogLevel(logLevel, out)),
	}
}

// InitReporter initializes the global reporter to the given log level.
func InitReporter(logLevel int) {
	rep = newReporter(logLevel, os.Stdout)
}

// Logger returns the structured logger matching the reporter's log level.
func Logger() zerolog.Logger {
	return rep.logger
}

// configForLogLevel returns the logger configuration used at a log level.
// Structured logs are only written in verbose mode.
func configForLogLevel(logLevel int, out io.Writer) Config {
	cfg := Config{Level: "disabled", Pretty: true, Output: out}

	if logLevel == LogLevelVerbose {
		cfg.Level = "debug"
	}

	return cfg
}
