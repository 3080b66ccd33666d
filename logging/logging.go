// Package logging sets up the file logger. The terminal belongs to the
// dashboard, so log lines never go to stdout or stderr while it runs.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Open returns a logger writing to path at the given level. verbose forces
// debug. An empty path discards everything. The returned closer releases
// the file.
func Open(path, level string, verbose bool) (*logrus.Logger, io.Closer, error) {
	l := newLogger(level, verbose)
	if path == "" {
		l.SetOutput(io.Discard)
		return l, io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "creating log dir")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening log file %s", path)
	}
	l.SetOutput(f)
	return l, f, nil
}

// Console returns a logger writing to w, for the headless mode where the
// terminal is free.
func Console(w io.Writer, level string, verbose bool) *logrus.Logger {
	l := newLogger(level, verbose)
	l.SetOutput(w)
	return l
}

func newLogger(level string, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	l.SetLevel(lvl)
	return l
}

// For returns an entry tagged with the component name.
func For(l *logrus.Logger, component string) *logrus.Entry {
	return l.WithField("component", component)
}
