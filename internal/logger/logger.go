// Package logger is docflow's diagnostic log.
//
// Agent steps go to the console reporter. This package carries what an
// operator needs when something looks wrong: retries, watcher wake-ups,
// store writes. Debug, Info, Warn and Section print only with --verbose.
// Error always prints.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects all log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug logs low-level detail such as stage halts and watcher events.
func Debug(format string, args ...any) { logf(false, "[DEBUG] ", format, args...) }

// Info logs lifecycle milestones.
func Info(format string, args ...any) { logf(false, "[INFO] ", format, args...) }

// Warn logs recoverable failures: retries, degraded classification,
// archive problems.
func Warn(format string, args ...any) { logf(false, "[WARN] ", format, args...) }

// Error logs failures that do not stop the pipeline but must not go
// unseen, such as a lost audit record.
func Error(format string, args ...any) { logf(true, "[ERROR] ", format, args...) }

// Section prints a header that groups the lines logged for one document.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func logf(always bool, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if always || verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}
