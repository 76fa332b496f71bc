package context

import (
	"sync"
)

// globalContext holds the singleton instance of the global context.
var globalContext *ShellContext

// globalContextMu protects access to the global context instance.
var globalContextMu sync.RWMutex

// globalContextOnce ensures singleton initialization happens only once.
var globalContextOnce sync.Once

// GetGlobalContext returns the global context singleton in a thread-safe
// manner, creating it on first use.
func GetGlobalContext() *ShellContext {
	globalContextOnce.Do(func() {
		if globalContext == nil {
			globalContext = New()
		}
	})

	globalContextMu.RLock()
	defer globalContextMu.RUnlock()
	return globalContext
}

// SetGlobalContext replaces the global context instance. This is useful
// for testing or when the embedding host owns context construction.
func SetGlobalContext(ctx *ShellContext) {
	globalContextMu.Lock()
	defer globalContextMu.Unlock()
	globalContext = ctx
}

// ResetGlobalContext resets the singleton so the next GetGlobalContext
// creates a fresh context. Primarily for tests.
func ResetGlobalContext() {
	globalContextMu.Lock()
	defer globalContextMu.Unlock()
	globalContext = nil
	globalContextOnce = sync.Once{}
}
