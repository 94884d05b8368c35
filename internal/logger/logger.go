// Package logger configures the process-wide logrus logger and hands out
// per-component entries.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init sets the level ("debug", "info", "warn", "error") and format
// ("json" or "text") of the standard logrus logger. Unknown values fall back
// to info and text.
func Init(level string, format string) {
	InitWithOutput(level, format, os.Stderr)
}

func InitWithOutput(level string, format string, w io.Writer) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(w)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}

// Discard is an entry that drops everything; tests use it.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
