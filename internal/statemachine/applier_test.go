package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgree/modernish/internal/services"
	"github.com/mgree/modernish/pkg/scopetypes"
)

func newTestApplier(t *testing.T) *Applier {
	t.Helper()
	_, _ = newTestEngine(t)
	variableService, err := services.GetGlobalVariableService()
	require.NoError(t, err)
	optionService, err := services.GetGlobalOptionService()
	require.NoError(t, err)
	return NewApplier(variableService, optionService)
}

func TestApplier_AppliesItemsInOrder(t *testing.T) {
	applier := newTestApplier(t)
	variableService, err := services.GetGlobalVariableService()
	require.NoError(t, err)

	items := []scopetypes.ScopeItem{
		{Kind: scopetypes.VariableAssign, Name: "x", Value: "first"},
		{Kind: scopetypes.VariableAssign, Name: "x", Value: "second"},
		{Kind: scopetypes.VariableUnset, Name: "y"},
		{Kind: scopetypes.OptionWithArg, Name: "noglob", Value: "on"},
	}
	require.NoError(t, applier.Apply(items))

	value, set, err := variableService.Get("x")
	require.NoError(t, err)
	assert.True(t, set)
	assert.Equal(t, "second", value, "later items win over earlier ones")
	_, set, err = variableService.Get("y")
	require.NoError(t, err)
	assert.False(t, set)
}

func TestApplier_WrapsRuntimeFailures(t *testing.T) {
	applier := newTestApplier(t)

	// An option the catalog does not support passes through only when
	// validation is bypassed; the applier reports the runtime failure.
	err := applier.Apply([]scopetypes.ScopeItem{
		{Kind: scopetypes.OptionSet, Name: "monitor"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, scopetypes.ErrApplyFailure)
}

func TestApplier_StopsAtFirstFailure(t *testing.T) {
	applier := newTestApplier(t)
	variableService, err := services.GetGlobalVariableService()
	require.NoError(t, err)

	err = applier.Apply([]scopetypes.ScopeItem{
		{Kind: scopetypes.VariableAssign, Name: "applied", Value: "yes"},
		{Kind: scopetypes.OptionSet, Name: "monitor"},
		{Kind: scopetypes.VariableAssign, Name: "never", Value: "no"},
	})
	require.Error(t, err)

	_, set, getErr := variableService.Get("applied")
	require.NoError(t, getErr)
	assert.True(t, set, "items before the failure stay applied")
	_, set, getErr = variableService.Get("never")
	require.NoError(t, getErr)
	assert.False(t, set, "items after the failure are never reached")
}
