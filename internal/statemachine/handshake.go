package statemachine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mgree/modernish/internal/logger"
	"github.com/mgree/modernish/pkg/scopetypes"
)

// Activation is one live instance of the block construct, driven by
// repeated calls to Decide from the host's bounded-repetition construct.
// Each activation owns its own identity and handshake state; nested
// activations never share a mutable record, so redefining shared decision
// logic mid-nesting cannot corrupt an outer activation in flight.
//
// The body executes through the host's control structure, not via a
// callback, so an early-exit statement written inside the body unwinds
// through the same enclosing scope the caller used. The handshake exists
// solely to guarantee that setup runs exactly once before the body, the
// body runs exactly once, and accidental repetition is suppressed.
type Activation struct {
	engine *Engine
	state  scopetypes.HandshakeState
	handle *FrameHandle
	logger *log.Logger
}

// NewActivation creates a fresh activation in the Uninitialized state.
func (e *Engine) NewActivation() *Activation {
	return &Activation{
		engine: e,
		state:  scopetypes.Uninitialized,
		logger: logger.NewStyledLogger("Handshake"),
	}
}

// State returns the activation's current handshake state.
func (a *Activation) State() scopetypes.HandshakeState {
	return a.state
}

// Args returns the body's local argument vector. Valid once the
// activation is armed.
func (a *Activation) Args() []string {
	if a.handle == nil {
		return nil
	}
	return a.handle.Args
}

// Decide is the decision function of the handshake protocol. The host's
// repetition construct calls it before each iteration and acts on the
// returned signal:
//
//	Uninitialized: validate, push, apply, transform; arm. Do not enter
//	               the body yet.
//	Armed:         enter the body now; it executes exactly once.
//	Consumed:      the body looped back without exiting; leave without
//	               re-running setup or the body.
//
// The scope items are consumed on the first call only.
func (a *Activation) Decide(tokens []string) (scopetypes.Signal, error) {
	switch a.state {
	case scopetypes.Uninitialized:
		handle, err := a.engine.BeginScope(tokens)
		if err != nil {
			a.state = scopetypes.Retired
			a.logger.Debug("Setup failed", "state", a.state, "error", err)
			return scopetypes.SignalLeave, err
		}
		a.handle = handle
		a.state = scopetypes.Armed
		a.logger.Debug("Setup complete", "state", a.state, "frame", handle.FrameID)
		return scopetypes.SignalSetup, nil

	case scopetypes.Armed:
		a.state = scopetypes.Consumed
		a.logger.Debug("Entering body", "state", a.state, "frame", a.handle.FrameID)
		return scopetypes.SignalEnter, nil

	case scopetypes.Consumed:
		a.logger.Debug("Suppressing re-entry", "state", a.state)
		return scopetypes.SignalLeave, nil

	default: // Retired
		return scopetypes.SignalLeave, nil
	}
}

// Finish unwinds the activation: it pops the frame, restores the saved
// state, and returns the construct's final exit status. The final status
// equals the body's status on success, or the diagnostic status when the
// unwind failed or the body never ran.
func (a *Activation) Finish(bodyStatus int) (int, error) {
	switch a.state {
	case scopetypes.Uninitialized:
		a.state = scopetypes.Retired
		return StatusDiagnostic, fmt.Errorf("scope body never ran")
	case scopetypes.Retired:
		return StatusDiagnostic, fmt.Errorf("%w: activation already unwound", scopetypes.ErrStackCorruption)
	}

	a.state = scopetypes.Retired
	return a.engine.EndScope(a.handle, bodyStatus)
}
