// Package logger provides the console logger used by the converter.
// Info and Debug lines are printed only in verbose mode; warnings and errors
// are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes progress messages to out and problems to errOut.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	verbose bool
	debug   bool
}

// New returns a Logger. A nil writer defaults to stdout or stderr.
func New(out, errOut io.Writer, verbose bool) *Logger {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Logger{out: out, errOut: errOut, verbose: verbose}
}

// Discard returns a Logger that prints nothing.
func Discard() *Logger {
	return &Logger{out: io.Discard, errOut: io.Discard}
}

// SetDebug enables debug lines. Debug output also requires verbose mode.
func (l *Logger) SetDebug(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = v
}

// IsVerbose returns true if verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	return l.verbose
}

// Debug prints a message if both verbose and debug output are enabled.
func (l *Logger) Debug(format string, args ...any) {
	if l.verbose && l.debug {
		l.printf(l.out, "[DEBUG] "+format, args...)
	}
}

// Info prints a message if verbose mode is enabled.
func (l *Logger) Info(format string, args ...any) {
	if l.verbose {
		l.printf(l.out, format, args...)
	}
}

// Warn prints a warning.
func (l *Logger) Warn(format string, args ...any) {
	l.printf(l.errOut, "Warning: "+format, args...)
}

// Error prints an error.
func (l *Logger) Error(format string, args ...any) {
	l.printf(l.errOut, "Error: "+format, args...)
}

func (l *Logger) printf(w io.Writer, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(w, format+"\n", args...)
}
