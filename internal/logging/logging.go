// Package logging provides the process-wide structured logger. It is a logr
// front-end over the standard library log package (stdr) so that libraries
// accepting a logr.Logger, OpenTelemetry included, share one sink.
package logging

import (
	"log"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

var (
	mu      sync.RWMutex
	current = stdr.New(log.New(os.Stderr, "flowline ", log.LstdFlags))
)

// Default returns the shared logger.
func Default() logr.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetDefault replaces the shared logger
func SetDefault(logger logr.Logger) {
	mu.Lock()
	current = logger
	mu.Unlock()
}

// SetVerbosity sets the global stdr verbosity and returns the previous value.
func SetVerbosity(v int) int {
	return stdr.SetVerbosity(v)
}
