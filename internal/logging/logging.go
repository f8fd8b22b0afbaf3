// Package logging provides the leveled logger instance shared by the
// pipeline components. Components receive a *Logger explicitly; there is
// no package-level global.
package logging

import (
	"io"
	"log"
)

// Logger writes info-level entries to one writer and error-level entries
// to another.
type Logger struct {
	infoLog  *log.Logger
	errorLog *log.Logger
}

// New creates a Logger writing info entries to out and error entries to errOut.
func New(out, errOut io.Writer) *Logger {
	return &Logger{
		infoLog:  log.New(out, "INFO  ", log.Ldate|log.Ltime),
		errorLog: log.New(errOut, "ERROR ", log.Ldate|log.Ltime),
	}
}

// Info writes a formatted info-level entry.
func (l *Logger) Info(format string, v ...any) {
	l.infoLog.Printf(format, v...)
}

// Error writes a formatted error-level entry.
func (l *Logger) Error(format string, v ...any) {
	l.errorLog.Printf(format, v...)
}
