// Package log provides loggers for quadio components.
package log

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv is the environment variable that enables debug output.
const DebugEnv = "QUADIO_DEBUG"

var debug bool

// Logger is a global interface for quadio loggers.
type Logger = logrus.FieldLogger

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv(DebugEnv))
	if err != nil {
		debug = false
	}
}

// GetLogger returns a new logger instance. Debug level is enabled when
// QUADIO_DEBUG is set to true.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Discard returns a logger that drops everything. It's used by tests and
// library users that don't care about diagnostics.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
