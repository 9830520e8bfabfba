// Package logging holds the process-wide structured logger.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It writes nowhere until Init is called so that
// library code and tests stay quiet.
var Log = newDiscard()

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init configures the global logger. Unknown levels fall back to info; any
// format other than "json" uses the text formatter.
func Init(level, format string, out io.Writer) {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}

	l.SetOutput(out)
	Log = l
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
