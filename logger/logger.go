// Package logger holds the process-wide structured logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It writes text until Init is called.
var Log = logrus.New()

// Init configures Log for the given environment. Anything other than
// "development" gets JSON output at info level.
func Init(env string) {
	Log.SetOutput(os.Stdout)
	if env == "development" {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		Log.SetLevel(logrus.DebugLevel)
		return
	}
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetLevel(logrus.InfoLevel)
}

// WithFields is a shorthand for Log.WithFields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log.WithFields(fields)
}
