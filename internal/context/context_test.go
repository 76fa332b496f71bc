package context

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgree/modernish/pkg/scopetypes"
)

func TestShellContext_Variables(t *testing.T) {
	ctx := New()

	_, set := ctx.GetVariable("x")
	assert.False(t, set)

	require.NoError(t, ctx.SetVariable("x", "1"))
	value, set := ctx.GetVariable("x")
	assert.True(t, set)
	assert.Equal(t, "1", value)

	// Empty string is a set value, distinct from unset.
	require.NoError(t, ctx.SetVariable("y", ""))
	value, set = ctx.GetVariable("y")
	assert.True(t, set)
	assert.Equal(t, "", value)

	ctx.UnsetVariable("x")
	_, set = ctx.GetVariable("x")
	assert.False(t, set)
}

func TestShellContext_SetVariableValidatesName(t *testing.T) {
	ctx := New()
	assert.Error(t, ctx.SetVariable("", "v"))
	assert.Error(t, ctx.SetVariable("1x", "v"))
	assert.Error(t, ctx.SetVariable("a b", "v"))
	assert.NoError(t, ctx.SetVariable("_ok_9", "v"))
}

func TestShellContext_InterpolateVariables(t *testing.T) {
	ctx := New()
	require.NoError(t, ctx.SetVariable("name", "world"))

	assert.Equal(t, "hello world", ctx.InterpolateVariables("hello ${name}"))
	assert.Equal(t, "hello ", ctx.InterpolateVariables("hello ${missing}"))
	assert.Equal(t, "plain", ctx.InterpolateVariables("plain"))
}

func TestShellContext_Options(t *testing.T) {
	ctx := New()

	_, known := ctx.OptionState("noglob")
	assert.False(t, known)

	require.NoError(t, ctx.RegisterOption(OptionDef{Name: "noglob", Flag: "f", Supported: true}))
	on, known := ctx.OptionState("noglob")
	assert.True(t, known)
	assert.False(t, on)

	require.NoError(t, ctx.SetOption("noglob", true))
	on, _ = ctx.OptionState("noglob")
	assert.True(t, on)

	// Lookup resolves both long name and flag.
	def, ok := ctx.LookupOption("f")
	require.True(t, ok)
	assert.Equal(t, "noglob", def.Name)
	def, ok = ctx.LookupOption("noglob")
	require.True(t, ok)
	assert.Equal(t, "f", def.Flag)
}

func TestShellContext_UnsupportedOptionRejectsSet(t *testing.T) {
	ctx := New()
	require.NoError(t, ctx.RegisterOption(OptionDef{Name: "monitor", Flag: "m", Supported: false}))

	assert.Error(t, ctx.SetOption("monitor", true))
	assert.Error(t, ctx.SetOption("unknown", true))
}

func TestShellContext_CaptureAndRestoreScopeFrame(t *testing.T) {
	ctx := New()
	require.NoError(t, ctx.SetVariable("kept", "original"))
	require.NoError(t, ctx.RegisterOption(OptionDef{Name: "xtrace", Flag: "x", Supported: true}))

	items := []scopetypes.ScopeItem{
		{Kind: scopetypes.VariableAssign, Name: "kept", Value: "local"},
		{Kind: scopetypes.VariableUnset, Name: "fresh"},
		{Kind: scopetypes.OptionSet, Name: "xtrace"},
	}

	frame := ctx.CaptureScopeFrame("scope_local", "frame-1", items)
	require.Len(t, frame.Entries, 3)
	assert.Equal(t, 1, ctx.ScopeFrameDepth("scope_local"))

	// Capture must not mutate anything.
	value, set := ctx.GetVariable("kept")
	assert.True(t, set)
	assert.Equal(t, "original", value)

	// Simulate the applier, then restore.
	require.NoError(t, ctx.SetVariable("kept", "local"))
	require.NoError(t, ctx.SetVariable("fresh", "temporary"))
	require.NoError(t, ctx.SetOption("xtrace", true))

	popped, err := ctx.PopScopeFrame("scope_local", "frame-1")
	require.NoError(t, err)
	require.NoError(t, ctx.RestoreScopeFrame(popped))

	value, set = ctx.GetVariable("kept")
	assert.True(t, set)
	assert.Equal(t, "original", value)
	_, set = ctx.GetVariable("fresh")
	assert.False(t, set, "variable unset before the frame must be unset again")
	on, _ := ctx.OptionState("xtrace")
	assert.False(t, on)
	assert.Equal(t, 0, ctx.ScopeFrameDepth("scope_local"))
}

func TestShellContext_PopScopeFrame_LIFOViolations(t *testing.T) {
	ctx := New()

	_, err := ctx.PopScopeFrame("scope_local", "frame-1")
	assert.Error(t, err, "pop from empty stack is a LIFO violation")

	ctx.CaptureScopeFrame("scope_local", "outer", nil)
	ctx.CaptureScopeFrame("scope_local", "inner", nil)

	// Popping the outer frame while the inner one is live must fail.
	_, err = ctx.PopScopeFrame("scope_local", "outer")
	assert.Error(t, err)
	assert.Equal(t, 2, ctx.ScopeFrameDepth("scope_local"))

	_, err = ctx.PopScopeFrame("scope_local", "inner")
	require.NoError(t, err)
	_, err = ctx.PopScopeFrame("scope_local", "outer")
	require.NoError(t, err)
}

func TestShellContext_ScopeKeysAreIndependent(t *testing.T) {
	ctx := New()
	ctx.CaptureScopeFrame("scope_local", "a", nil)
	ctx.CaptureScopeFrame("other_user", "b", nil)

	assert.Equal(t, 1, ctx.ScopeFrameDepth("scope_local"))
	assert.Equal(t, 1, ctx.ScopeFrameDepth("other_user"))

	_, err := ctx.PopScopeFrame("other_user", "b")
	require.NoError(t, err)
	assert.Equal(t, 1, ctx.ScopeFrameDepth("scope_local"))
}

func TestShellContext_ErrorState(t *testing.T) {
	ctx := New()

	status, msg := ctx.GetCurrentErrorState()
	assert.Equal(t, 0, status)
	assert.Empty(t, msg)

	ctx.SetErrorState(3, "boom")
	status, msg = ctx.GetCurrentErrorState()
	assert.Equal(t, 3, status)
	assert.Equal(t, "boom", msg)

	ctx.ResetErrorState()
	status, _ = ctx.GetCurrentErrorState()
	assert.Equal(t, 0, status)
	status, msg = ctx.GetLastErrorState()
	assert.Equal(t, 3, status)
	assert.Equal(t, "boom", msg)
}

func TestGlobalContext_Singleton(t *testing.T) {
	ResetGlobalContext()
	first := GetGlobalContext()
	second := GetGlobalContext()
	assert.Same(t, first, second)

	replacement := NewTestContext()
	SetGlobalContext(replacement)
	assert.Same(t, replacement, GetGlobalContext())

	ResetGlobalContext()
}
