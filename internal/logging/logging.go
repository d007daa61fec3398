// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init sets the level and destination of the standard logger. An empty
// file logs to w. The returned closer releases the log file.
func Init(level, file string, w io.Writer) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	if file == "" {
		log.SetFormatter(formatter(false))
		log.SetOutput(w)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetFormatter(formatter(true))
	log.SetOutput(f)

	return f, nil
}

func formatter(toFile bool) *log.TextFormatter {
	return &log.TextFormatter{
		DisableColors:    toFile,
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	}
}
