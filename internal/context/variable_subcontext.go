// Package context: variable-specific state for modernish.
// This file implements the variable subcontext, a focused store for named
// variables that also tracks the set/unset distinction the scope engine
// relies on when capturing and restoring frames.
package context

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// identifierPattern is the identifier grammar shared by variables and long
// option names: letters, digits, underscore, not digit-leading.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// variableSubcontext holds named variables. A variable that is not present
// in the map is unset, which is distinct from being set to the empty string.
type variableSubcontext struct {
	variables map[string]string
	mu        sync.RWMutex
}

func newVariableSubcontext() *variableSubcontext {
	return &variableSubcontext{
		variables: make(map[string]string),
	}
}

// GetVariable retrieves a variable value and whether it is currently set.
func (v *variableSubcontext) GetVariable(name string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	value, ok := v.variables[name]
	return value, ok
}

// SetVariable sets a variable after validating its name.
func (v *variableSubcontext) SetVariable(name string, value string) error {
	if err := ValidateVariableName(name); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.variables[name] = value
	return nil
}

// UnsetVariable removes a variable.
func (v *variableSubcontext) UnsetVariable(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.variables, name)
}

// GetAllVariables returns a copy of all currently set variables.
func (v *variableSubcontext) GetAllVariables() map[string]string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	result := make(map[string]string, len(v.variables))
	for name, value := range v.variables {
		result[name] = value
	}
	return result
}

// InterpolateVariables replaces ${name} placeholders with variable values.
// Unset variables expand to the empty string, as the host does.
func (v *variableSubcontext) InterpolateVariables(text string) string {
	if !strings.Contains(text, "${") {
		return text
	}
	v.mu.RLock()
	defer v.mu.RUnlock()

	var result strings.Builder
	for {
		start := strings.Index(text, "${")
		if start == -1 {
			result.WriteString(text)
			break
		}
		end := strings.Index(text[start:], "}")
		if end == -1 {
			result.WriteString(text)
			break
		}
		result.WriteString(text[:start])
		name := text[start+2 : start+end]
		result.WriteString(v.variables[name])
		text = text[start+end+1:]
	}
	return result.String()
}

// ValidateVariableName checks a name against the identifier grammar.
func ValidateVariableName(name string) error {
	if name == "" {
		return fmt.Errorf("variable name cannot be empty")
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid variable name %q: must be letters, digits or underscore, not starting with a digit", name)
	}
	return nil
}

// IsValidIdentifier reports whether name matches the identifier grammar.
func IsValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
