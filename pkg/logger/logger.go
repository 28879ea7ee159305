package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

// Get returns the process-wide logger.
func Get() *logrus.Logger {
	return logg
}

// Setup reconfigures the logger for the given environment. Production gets
// JSON output for log shipping; everything else keeps the text formatter.
func Setup(env string, debug bool) {
	if env == "production" {
		logg.SetFormatter(&logrus.JSONFormatter{})
	}
	if debug {
		logg.SetLevel(logrus.DebugLevel)
	}
}

// WithModule returns an entry tagged with the originating module, the
// convention all service-level diagnostics follow.
func WithModule(module string) *logrus.Entry {
	return logg.WithField("module", module)
}

// LogError records a failure with its module and context fields.
func LogError(module, context string, err error) {
	logg.WithFields(logrus.Fields{
		"module":  module,
		"context": context,
	}).Error(err.Error())
}
