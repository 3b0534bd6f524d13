package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is the logger verbosity.
type Level logging.Level

// Levels accepted by SetLevel, from most to least verbose.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// format renders "[time] [module] [level] message", colored by level.
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// leveledBackend is the backend every named logger writes through.
var leveledBackend logging.LeveledBackend

// Logger is the leveled logger handed out to engine packages.
// Each package creates one at init with New and logs through it.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger.
//
// Parameters:
//   - name: the module name printed in every line
//
// Returns:
//   - Logger: the named logger
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink replaces the output of every logger. The current level is kept.
//
// Parameters:
//   - sink: the writer that receives formatted lines
func SetSink(sink io.Writer) {
	level := logging.NOTICE
	if leveledBackend != nil {
		level = leveledBackend.GetLevel("")
	}
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(level, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the minimum level emitted by every module.
//
// Parameters:
//   - level: the least severe level that is still written
func SetLevel(level Level) {
	leveledBackend.SetLevel(toLoggingLevel(level), "")
}

// toLoggingLevel maps a Level onto the go-logging level. Unknown values map to Notice.
func toLoggingLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

// Reports go to stdout, so diagnostics default to stderr.
func init() {
	SetSink(os.Stderr)
	SetLevel(Notice)
}
