package services

import (
	"fmt"

	shellcontext "github.com/mgree/modernish/internal/context"
)

// VariableService provides variable management operations over the global
// context. It is the only path through which the engine and the host
// interpreter touch named variables.
type VariableService struct {
	initialized bool
	ctx         *shellcontext.ShellContext
}

// NewVariableService creates a new VariableService instance.
func NewVariableService() *VariableService {
	return &VariableService{
		initialized: false,
	}
}

// Name returns the service name "variable" for registration.
func (v *VariableService) Name() string {
	return "variable"
}

// Initialize sets up the VariableService for operation.
func (v *VariableService) Initialize() error {
	v.ctx = shellcontext.GetGlobalContext()
	v.initialized = true
	return nil
}

// Get retrieves a variable value and whether it is currently set.
func (v *VariableService) Get(name string) (string, bool, error) {
	if !v.initialized {
		return "", false, fmt.Errorf("variable service not initialized")
	}
	value, set := v.ctx.GetVariable(name)
	return value, set, nil
}

// Set stores a variable value, validating the name first.
func (v *VariableService) Set(name, value string) error {
	if !v.initialized {
		return fmt.Errorf("variable service not initialized")
	}
	return v.ctx.SetVariable(name, value)
}

// Unset removes a variable. Unsetting an unset variable is a no-op.
func (v *VariableService) Unset(name string) error {
	if !v.initialized {
		return fmt.Errorf("variable service not initialized")
	}
	v.ctx.UnsetVariable(name)
	return nil
}

// GetAllVariables returns a copy of all currently set variables.
func (v *VariableService) GetAllVariables() (map[string]string, error) {
	if !v.initialized {
		return nil, fmt.Errorf("variable service not initialized")
	}
	return v.ctx.GetAllVariables(), nil
}

// InterpolateString processes ${name} replacements in a string.
func (v *VariableService) InterpolateString(text string) (string, error) {
	if !v.initialized {
		return "", fmt.Errorf("variable service not initialized")
	}
	return v.ctx.InterpolateVariables(text), nil
}

// ValidateVariableName checks a name against the identifier grammar.
func (v *VariableService) ValidateVariableName(name string) error {
	return shellcontext.ValidateVariableName(name)
}

func init() {
	if err := GlobalRegistry.RegisterService(NewVariableService()); err != nil {
		panic(fmt.Sprintf("failed to register variable service: %v", err))
	}
}
