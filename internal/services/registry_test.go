package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shellcontext "github.com/mgree/modernish/internal/context"
)

// fakeService is a minimal Service implementation for registry tests.
type fakeService struct {
	name        string
	initErr     error
	initialized bool
}

func (f *fakeService) Name() string { return f.name }
func (f *fakeService) Initialize() error {
	f.initialized = true
	return f.initErr
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	service := &fakeService{name: "fake"}

	require.NoError(t, registry.RegisterService(service))

	got, err := registry.GetService("fake")
	require.NoError(t, err)
	assert.Same(t, service, got)

	_, err = registry.GetService("missing")
	assert.Error(t, err)
}

func TestRegistry_RejectsDuplicateName(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterService(&fakeService{name: "dup"}))

	err := registry.RegisterService(&fakeService{name: "dup"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_InitializeAll(t *testing.T) {
	registry := NewRegistry()
	first := &fakeService{name: "first"}
	second := &fakeService{name: "second"}
	require.NoError(t, registry.RegisterService(first))
	require.NoError(t, registry.RegisterService(second))

	require.NoError(t, registry.InitializeAll())
	assert.True(t, first.initialized)
	assert.True(t, second.initialized)
}

func TestRegistry_InitializeAllPropagatesFailure(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterService(&fakeService{
		name:    "broken",
		initErr: fmt.Errorf("no backing store"),
	}))

	err := registry.InitializeAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestGlobalRegistry_TypedAccessors(t *testing.T) {
	ctx := shellcontext.NewTestContext()
	shellcontext.SetGlobalContext(ctx)
	require.NoError(t, GetGlobalRegistry().InitializeAll())

	variableService, err := GetGlobalVariableService()
	require.NoError(t, err)
	assert.Equal(t, "variable", variableService.Name())

	optionService, err := GetGlobalOptionService()
	require.NoError(t, err)
	assert.Equal(t, "option", optionService.Name())

	stackService, err := GetGlobalStackService()
	require.NoError(t, err)
	assert.Equal(t, "stack", stackService.Name())

	errorService, err := GetGlobalErrorManagementService()
	require.NoError(t, err)
	assert.Equal(t, "error_management", errorService.Name())
}
