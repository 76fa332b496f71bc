package context

import (
	"sync"
)

// errorStateSubcontext tracks the current and last command exit status and
// error message, backing the _status and _error system variables.
type errorStateSubcontext struct {
	lastStatus    int
	lastError     string
	currentStatus int
	currentError  string
	mu            sync.RWMutex
}

func newErrorStateSubcontext() *errorStateSubcontext {
	return &errorStateSubcontext{}
}

// ResetErrorState moves the current state to last and resets the current
// state to success. Called before executing a new command.
func (e *errorStateSubcontext) ResetErrorState() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastStatus = e.currentStatus
	e.lastError = e.currentError
	e.currentStatus = 0
	e.currentError = ""
}

// SetErrorState records the result of the command that just executed.
func (e *errorStateSubcontext) SetErrorState(status int, errorMsg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentStatus = status
	e.currentError = errorMsg
}

// GetCurrentErrorState returns the current status and error message.
func (e *errorStateSubcontext) GetCurrentErrorState() (int, string) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentStatus, e.currentError
}

// GetLastErrorState returns the previous status and error message.
func (e *errorStateSubcontext) GetLastErrorState() (int, string) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastStatus, e.lastError
}
