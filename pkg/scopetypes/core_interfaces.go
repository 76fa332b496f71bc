// Package scopetypes defines core architectural interfaces for modernish.
// This file contains the fundamental interfaces that define the system's
// structure: context management and service registration.
package scopetypes

// Context provides access to the host interpreter's process-wide mutable
// state: named variables, named on/off options, and the keyed save stack.
// Exactly one writer is active at a time (cooperative, never preemptive).
type Context interface {
	// Variable state
	GetVariable(name string) (string, bool)
	SetVariable(name string, value string) error
	UnsetVariable(name string)
	GetAllVariables() map[string]string

	// Option state
	OptionState(name string) (on bool, known bool)
	SetOption(name string, on bool) error

	// Testing and debugging
	SetTestMode(testMode bool)
	IsTestMode() bool
}

// Service defines the interface for modernish services. Services are
// initialized at startup and accessed through the global registry; they
// use the global context singleton for all state access.
type Service interface {
	Name() string
	Initialize() error
}

// ServiceRegistry manages the registration and retrieval of services.
type ServiceRegistry interface {
	GetService(name string) (Service, error)
	RegisterService(service Service) error
}
