package services

import (
	"fmt"

	shellcontext "github.com/mgree/modernish/internal/context"
)

// ErrorManagementService provides centralized error state management for
// the host interpreter. It backs the _status/_error reporting surface and
// offers a clean interface for error state operations.
type ErrorManagementService struct {
	initialized bool
	ctx         *shellcontext.ShellContext
}

// NewErrorManagementService creates a new ErrorManagementService instance.
func NewErrorManagementService() *ErrorManagementService {
	return &ErrorManagementService{
		initialized: false,
	}
}

// Name returns the service name "error_management" for registration.
func (e *ErrorManagementService) Name() string {
	return "error_management"
}

// Initialize sets up the ErrorManagementService for operation.
func (e *ErrorManagementService) Initialize() error {
	e.ctx = shellcontext.GetGlobalContext()
	e.initialized = true
	return nil
}

// ResetErrorState resets the current error state to success and moves the
// current state to last. Called before executing a new command.
func (e *ErrorManagementService) ResetErrorState() error {
	if !e.initialized {
		return fmt.Errorf("error management service not initialized")
	}
	e.ctx.ResetErrorState()
	return nil
}

// SetErrorState records a command's exit status and error message.
func (e *ErrorManagementService) SetErrorState(status int, errorMsg string) error {
	if !e.initialized {
		return fmt.Errorf("error management service not initialized")
	}
	e.ctx.SetErrorState(status, errorMsg)
	return nil
}

// SetErrorStateFromCommandResult records the result of a command: status 0
// with no message on success, the given status and error text otherwise.
func (e *ErrorManagementService) SetErrorStateFromCommandResult(status int, err error) error {
	if err != nil {
		return e.SetErrorState(status, err.Error())
	}
	return e.SetErrorState(status, "")
}

// GetCurrentErrorState returns the current status and error message.
func (e *ErrorManagementService) GetCurrentErrorState() (int, string, error) {
	if !e.initialized {
		return 0, "", fmt.Errorf("error management service not initialized")
	}
	status, errorMsg := e.ctx.GetCurrentErrorState()
	return status, errorMsg, nil
}

// IsErrorState returns true if the current status indicates an error.
func (e *ErrorManagementService) IsErrorState() (bool, error) {
	status, _, err := e.GetCurrentErrorState()
	if err != nil {
		return false, err
	}
	return status != 0, nil
}

func init() {
	if err := GlobalRegistry.RegisterService(NewErrorManagementService()); err != nil {
		panic(fmt.Sprintf("failed to register error management service: %v", err))
	}
}
