package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgree/modernish/pkg/scopetypes"
)

func TestActivation_SignalSequence(t *testing.T) {
	engine, ctx := newTestEngine(t)
	require.NoError(t, ctx.SetVariable("x", "outer"))

	act := engine.NewActivation()
	assert.Equal(t, scopetypes.Uninitialized, act.State())

	tokens := []string{"x=inner", "--", "arg1"}

	signal, err := act.Decide(tokens)
	require.NoError(t, err)
	assert.Equal(t, scopetypes.SignalSetup, signal, "first call performs setup, not entry")
	assert.Equal(t, scopetypes.Armed, act.State())
	assert.Equal(t, []string{"arg1"}, act.Args())

	signal, err = act.Decide(tokens)
	require.NoError(t, err)
	assert.Equal(t, scopetypes.SignalEnter, signal, "second call enters the body")
	assert.Equal(t, scopetypes.Consumed, act.State())

	// Any further iteration leaves without re-running setup or body.
	signal, err = act.Decide(tokens)
	require.NoError(t, err)
	assert.Equal(t, scopetypes.SignalLeave, signal)
	assert.Equal(t, scopetypes.Consumed, act.State())

	status, err := act.Finish(0)
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, scopetypes.Retired, act.State())

	value, _ := ctx.GetVariable("x")
	assert.Equal(t, "outer", value)
}

func TestActivation_BodyRunsExactlyOnce(t *testing.T) {
	engine, _ := newTestEngine(t)
	act := engine.NewActivation()
	tokens := []string{"x=1"}

	var entries int
	// Drive the activation the way a host repetition construct would.
	for i := 0; i < 10; i++ {
		signal, err := act.Decide(tokens)
		require.NoError(t, err)
		if signal == scopetypes.SignalLeave {
			break
		}
		if signal == scopetypes.SignalEnter {
			entries++
		}
	}

	assert.Equal(t, 1, entries)
	_, err := act.Finish(0)
	require.NoError(t, err)
}

func TestActivation_SetupFailureRetires(t *testing.T) {
	engine, ctx := newTestEngine(t)
	require.NoError(t, ctx.SetVariable("x", "before"))

	act := engine.NewActivation()
	signal, err := act.Decide([]string{"x=after", "-o", "monitor"})
	require.Error(t, err)
	assert.ErrorIs(t, err, scopetypes.ErrUnsupportedOption)
	assert.Equal(t, scopetypes.SignalLeave, signal)
	assert.Equal(t, scopetypes.Retired, act.State())

	value, _ := ctx.GetVariable("x")
	assert.Equal(t, "before", value)
	assert.Equal(t, 0, engine.Depth())

	// The retired activation stays retired.
	signal, err = act.Decide([]string{"x=again"})
	require.NoError(t, err)
	assert.Equal(t, scopetypes.SignalLeave, signal)

	status, err := act.Finish(0)
	assert.ErrorIs(t, err, scopetypes.ErrStackCorruption)
	assert.Equal(t, StatusDiagnostic, status)
}

func TestActivation_FinishBeforeBodyRan(t *testing.T) {
	engine, _ := newTestEngine(t)
	act := engine.NewActivation()

	status, err := act.Finish(0)
	require.Error(t, err)
	assert.Equal(t, StatusDiagnostic, status)
	assert.Equal(t, scopetypes.Retired, act.State())
}

func TestActivation_FinishPropagatesBodyStatus(t *testing.T) {
	engine, _ := newTestEngine(t)
	act := engine.NewActivation()
	tokens := []string{"x=1"}

	_, err := act.Decide(tokens)
	require.NoError(t, err)
	_, err = act.Decide(tokens)
	require.NoError(t, err)

	status, err := act.Finish(7)
	require.NoError(t, err)
	assert.Equal(t, 7, status)
}

func TestActivation_DoubleFinishIsCorruption(t *testing.T) {
	engine, _ := newTestEngine(t)
	act := engine.NewActivation()
	tokens := []string{"x=1"}

	_, err := act.Decide(tokens)
	require.NoError(t, err)
	_, err = act.Decide(tokens)
	require.NoError(t, err)
	_, err = act.Finish(0)
	require.NoError(t, err)

	status, err := act.Finish(0)
	assert.ErrorIs(t, err, scopetypes.ErrStackCorruption)
	assert.Equal(t, StatusDiagnostic, status)
}

func TestActivation_NestedActivationsAreIndependent(t *testing.T) {
	engine, ctx := newTestEngine(t)
	require.NoError(t, ctx.SetVariable("v", "level0"))

	outer := engine.NewActivation()
	_, err := outer.Decide([]string{"v=level1"})
	require.NoError(t, err)
	_, err = outer.Decide(nil)
	require.NoError(t, err)

	// The outer body starts a nested activation of the same construct.
	inner := engine.NewActivation()
	_, err = inner.Decide([]string{"v=level2"})
	require.NoError(t, err)
	_, err = inner.Decide(nil)
	require.NoError(t, err)

	value, _ := ctx.GetVariable("v")
	assert.Equal(t, "level2", value)
	assert.Equal(t, scopetypes.Consumed, outer.State(), "inner activation never disturbs the outer one")

	_, err = inner.Finish(0)
	require.NoError(t, err)
	value, _ = ctx.GetVariable("v")
	assert.Equal(t, "level1", value)

	_, err = outer.Finish(0)
	require.NoError(t, err)
	value, _ = ctx.GetVariable("v")
	assert.Equal(t, "level0", value)
}
