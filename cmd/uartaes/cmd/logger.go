package cmd

import (
	"io"
	"log"
)

// cliLogger implements the harness, bitmap and simulator Logger interfaces
// on top of the standard log package.
type cliLogger struct {
	logger *log.Logger
	debug  bool
}

func newLogger(w io.Writer, debug bool) *cliLogger {
	return &cliLogger{
		logger: log.New(w, "", log.LstdFlags),
		debug:  debug,
	}
}

func (l *cliLogger) Debug(msg string, kv ...interface{}) {
	if l.debug {
		l.logger.Printf("[DEBUG] %s %v", msg, kv)
	}
}

func (l *cliLogger) Info(msg string, kv ...interface{}) {
	l.logger.Printf("[INFO] %s %v", msg, kv)
}

func (l *cliLogger) Error(msg string, kv ...interface{}) {
	l.logger.Printf("[ERROR] %s %v", msg, kv)
}
