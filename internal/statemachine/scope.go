package statemachine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mgree/modernish/internal/logger"
	"github.com/mgree/modernish/internal/services"
	"github.com/mgree/modernish/pkg/scopetypes"
)

// DefaultScopeKey tags frames pushed by the scope construct, so they are
// distinguishable from any other user of the save stack.
const DefaultScopeKey = "scope_local"

// StatusDiagnostic is the exit status reported when setup validation
// failed (the body never ran) or the unwind failed.
const StatusDiagnostic = 2

// FrameHandle identifies one live block activation: the frame it pushed
// and the local argument vector its body sees. The argument vector never
// propagates back to the caller; arguments are local to the block.
type FrameHandle struct {
	FrameID string
	Key     string
	Args    []string

	released bool
}

// Engine implements the begin-scope / end-scope block construct: save
// global state, apply temporary local values, and restore the saved state
// on every exit path.
type Engine struct {
	key             string
	validator       *Validator
	applier         *Applier
	stackService    *services.StackService
	variableService *services.VariableService
	optionService   *services.OptionService
	logger          *log.Logger
}

// NewEngine creates an engine wired against the global services, using
// the default scope key.
func NewEngine() (*Engine, error) {
	return NewEngineWithKey(DefaultScopeKey)
}

// NewEngineWithKey creates an engine whose frames are tagged with the
// given scope key.
func NewEngineWithKey(key string) (*Engine, error) {
	stackService, err := services.GetGlobalStackService()
	if err != nil {
		return nil, fmt.Errorf("scope engine needs the stack service: %w", err)
	}
	variableService, err := services.GetGlobalVariableService()
	if err != nil {
		return nil, fmt.Errorf("scope engine needs the variable service: %w", err)
	}
	optionService, err := services.GetGlobalOptionService()
	if err != nil {
		return nil, fmt.Errorf("scope engine needs the option service: %w", err)
	}

	return &Engine{
		key:             key,
		validator:       NewValidator(optionService),
		applier:         NewApplier(variableService, optionService),
		stackService:    stackService,
		variableService: variableService,
		optionService:   optionService,
		logger:          logger.NewStyledLogger("Engine"),
	}, nil
}

// Key returns the scope key the engine tags its frames with.
func (e *Engine) Key() string {
	return e.key
}

// Depth returns the current nesting depth under the engine's scope key.
func (e *Engine) Depth() int {
	return e.stackService.Depth(e.key)
}

// BeginScope validates the scope items, pushes the originals, applies the
// local values, and transforms the trailing arguments, in exactly that
// order. Validation and the usage check fully precede any mutation, so a
// validation error never leaves global state half-changed.
func (e *Engine) BeginScope(tokens []string) (*FrameHandle, error) {
	validated, err := e.validator.Validate(tokens)
	if err != nil {
		return nil, err
	}

	frameID, err := e.stackService.Push(e.key, validated.Items)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Pushed scope frame", "key", e.key, "frame", frameID, "depth", e.Depth())

	if err := e.applier.Apply(validated.Items); err != nil {
		// State has begun changing and can no longer be trusted; do not
		// attempt a restore here. The frame stays on the stack and the
		// error is fatal to the enclosing unit of execution.
		e.logger.Error("Apply failed after push", "key", e.key, "frame", frameID, "error", err)
		return nil, err
	}

	args := TransformArgs(validated.Policy, validated.Trailing)

	return &FrameHandle{
		FrameID: frameID,
		Key:     e.key,
		Args:    args,
	}, nil
}

// EndScope pops the activation's frame and restores the saved state, then
// propagates the body's exit status. It runs on every exit path. A
// mismatched or missing frame is stack corruption: the final status is
// the diagnostic status and the error is reported, never swallowed.
func (e *Engine) EndScope(handle *FrameHandle, bodyStatus int) (int, error) {
	if handle == nil {
		return StatusDiagnostic, fmt.Errorf("%w: no frame handle", scopetypes.ErrStackCorruption)
	}
	if handle.released {
		return StatusDiagnostic, fmt.Errorf("%w: frame %s already released", scopetypes.ErrStackCorruption, handle.FrameID)
	}
	handle.released = true

	if err := e.stackService.Pop(handle.Key, handle.FrameID); err != nil {
		e.logger.Error("Unwind failed", "key", handle.Key, "frame", handle.FrameID, "error", err)
		return StatusDiagnostic, err
	}
	e.logger.Debug("Popped scope frame", "key", handle.Key, "frame", handle.FrameID, "depth", e.Depth())

	return bodyStatus, nil
}

// RunScoped is the guard form of the construct: acquire (validate, push,
// apply, transform), run the caller-supplied body exactly once with the
// local argument vector, and release (pop, restore) guaranteed on every
// exit path, including panics unwinding through the body.
func (e *Engine) RunScoped(tokens []string, body func(args []string) int) (status int, err error) {
	handle, beginErr := e.BeginScope(tokens)
	if beginErr != nil {
		return StatusDiagnostic, beginErr
	}

	defer func() {
		final, endErr := e.EndScope(handle, status)
		status = final
		if endErr != nil && err == nil {
			err = endErr
		}
	}()

	status = body(handle.Args)
	return status, nil
}
