// Package services implements the modernish service layer: focused
// services over the global context, registered in a process-wide registry.
package services

import (
	"fmt"
	"sync"

	"github.com/mgree/modernish/pkg/scopetypes"
)

// Registry manages service registration and lifecycle for modernish
// services.
type Registry struct {
	mu       sync.RWMutex
	services map[string]scopetypes.Service
}

// NewRegistry creates a new service registry with an empty service map.
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]scopetypes.Service),
	}
}

// RegisterService adds a service to the registry, returning an error if a
// service with the same name is already registered.
func (r *Registry) RegisterService(service scopetypes.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := service.Name()
	if _, exists := r.services[name]; exists {
		return fmt.Errorf("service %s already registered", name)
	}

	r.services[name] = service
	return nil
}

// GetService retrieves a service by name, returning an error if not found.
func (r *Registry) GetService(name string) (scopetypes.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, exists := r.services[name]
	if !exists {
		return nil, fmt.Errorf("service %s not found", name)
	}

	return service, nil
}

// InitializeAll initializes all registered services.
func (r *Registry) InitializeAll() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, service := range r.services {
		if err := service.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize service %s: %w", name, err)
		}
	}

	return nil
}

// GetAllServices returns a copy of all registered services.
func (r *Registry) GetAllServices() map[string]scopetypes.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]scopetypes.Service)
	for name, service := range r.services {
		result[name] = service
	}

	return result
}

// GlobalRegistry is the global service registry instance used throughout
// modernish.
var GlobalRegistry = NewRegistry()

// globalRegistryMu protects access to the GlobalRegistry variable itself.
var globalRegistryMu sync.RWMutex

// GetGlobalRegistry returns the global service registry instance.
func GetGlobalRegistry() *Registry {
	globalRegistryMu.RLock()
	defer globalRegistryMu.RUnlock()
	return GlobalRegistry
}

// SetGlobalRegistry replaces the global service registry instance.
func SetGlobalRegistry(registry *Registry) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()
	GlobalRegistry = registry
}

// GetGlobalVariableService returns the global VariableService instance.
func GetGlobalVariableService() (*VariableService, error) {
	service, err := GetGlobalRegistry().GetService("variable")
	if err != nil {
		return nil, err
	}
	variableService, ok := service.(*VariableService)
	if !ok {
		return nil, fmt.Errorf("service 'variable' is not a VariableService")
	}
	return variableService, nil
}

// GetGlobalOptionService returns the global OptionService instance.
func GetGlobalOptionService() (*OptionService, error) {
	service, err := GetGlobalRegistry().GetService("option")
	if err != nil {
		return nil, err
	}
	optionService, ok := service.(*OptionService)
	if !ok {
		return nil, fmt.Errorf("service 'option' is not an OptionService")
	}
	return optionService, nil
}

// GetGlobalStackService returns the global StackService instance.
func GetGlobalStackService() (*StackService, error) {
	service, err := GetGlobalRegistry().GetService("stack")
	if err != nil {
		return nil, err
	}
	stackService, ok := service.(*StackService)
	if !ok {
		return nil, fmt.Errorf("service 'stack' is not a StackService")
	}
	return stackService, nil
}

// GetGlobalErrorManagementService returns the global
// ErrorManagementService instance.
func GetGlobalErrorManagementService() (*ErrorManagementService, error) {
	service, err := GetGlobalRegistry().GetService("error_management")
	if err != nil {
		return nil, err
	}
	errorService, ok := service.(*ErrorManagementService)
	if !ok {
		return nil, fmt.Errorf("service 'error_management' is not an ErrorManagementService")
	}
	return errorService, nil
}
