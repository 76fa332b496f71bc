package scopetypes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeItem_String(t *testing.T) {
	tests := []struct {
		name     string
		item     ScopeItem
		expected string
	}{
		{"variable unset", ScopeItem{Kind: VariableUnset, Name: "x"}, "x"},
		{"variable assign", ScopeItem{Kind: VariableAssign, Name: "x", Value: "1"}, "x=1"},
		{"option set", ScopeItem{Kind: OptionSet, Name: "f"}, "-f"},
		{"option unset", ScopeItem{Kind: OptionUnset, Name: "f"}, "+f"},
		{"long option on", ScopeItem{Kind: OptionWithArg, Name: "noglob", Value: "on"}, "-o noglob"},
		{"long option off", ScopeItem{Kind: OptionWithArg, Name: "noglob", Value: "off"}, "+o noglob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.String())
		})
	}
}

func TestScopeItem_IsVariable(t *testing.T) {
	assert.True(t, ScopeItem{Kind: VariableUnset, Name: "x"}.IsVariable())
	assert.True(t, ScopeItem{Kind: VariableAssign, Name: "x"}.IsVariable())
	assert.False(t, ScopeItem{Kind: OptionSet, Name: "f"}.IsVariable())
	assert.False(t, ScopeItem{Kind: OptionWithArg, Name: "noglob"}.IsVariable())
}

func TestDefaultTransformPolicy(t *testing.T) {
	policy := DefaultTransformPolicy()
	assert.Equal(t, NoSplit, policy.Split)
	assert.Equal(t, NoGlob, policy.Glob)
	assert.True(t, policy.IsIdentity())

	policy.Glob = Glob
	assert.False(t, policy.IsIdentity())
}

func TestHandshakeState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "armed", Armed.String())
	assert.Equal(t, "consumed", Consumed.String())
	assert.Equal(t, "retired", Retired.String())
}

func TestSignal_String(t *testing.T) {
	assert.Equal(t, "setup", SignalSetup.String())
	assert.Equal(t, "enter", SignalEnter.String())
	assert.Equal(t, "leave", SignalLeave.String())
}

func TestErrorKinds_AreDistinct(t *testing.T) {
	kinds := []error{
		ErrInvalidItem,
		ErrUnsupportedOption,
		ErrMissingArgument,
		ErrInvalidUsage,
		ErrStackCorruption,
		ErrApplyFailure,
	}
	for i, a := range kinds {
		for j, b := range kinds {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
