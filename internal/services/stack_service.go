package services

import (
	"fmt"

	shellcontext "github.com/mgree/modernish/internal/context"
	"github.com/mgree/modernish/internal/testutils"
	"github.com/mgree/modernish/pkg/scopetypes"
)

// StackService is the state stack service: a generic keyed LIFO
// save/restore primitive over the global context. Push captures the
// current value/state of every item's target; Pop restores exactly the
// most recently pushed frame under the key and refuses anything else.
type StackService struct {
	initialized bool
	ctx         *shellcontext.ShellContext
}

// NewStackService creates a new stack service instance.
func NewStackService() *StackService {
	return &StackService{
		initialized: false,
	}
}

// Name returns the service name "stack" for registry registration.
func (ss *StackService) Name() string {
	return "stack"
}

// Initialize initializes the stack service against the global context.
func (ss *StackService) Initialize() error {
	ss.ctx = shellcontext.GetGlobalContext()
	ss.initialized = true
	return nil
}

// Push captures the current value/state of each item's target (including
// "currently unset") into a frame on the per-key LIFO stack, and returns
// the frame ID the caller must present to Pop. Capturing never mutates
// global state.
func (ss *StackService) Push(key string, items []scopetypes.ScopeItem) (string, error) {
	if !ss.initialized {
		return "", fmt.Errorf("stack service not initialized")
	}
	frameID := testutils.GenerateFrameID(ss.ctx)
	ss.ctx.CaptureScopeFrame(key, frameID, items)
	return frameID, nil
}

// Pop removes the most recently pushed frame under key and restores every
// saved value/state. A missing or mismatched top frame means the LIFO
// invariant was violated; that is reported as stack corruption, never
// silently absorbed.
func (ss *StackService) Pop(key string, frameID string) error {
	if !ss.initialized {
		return fmt.Errorf("stack service not initialized")
	}
	frame, err := ss.ctx.PopScopeFrame(key, frameID)
	if err != nil {
		return fmt.Errorf("%w: %v", scopetypes.ErrStackCorruption, err)
	}
	if err := ss.ctx.RestoreScopeFrame(frame); err != nil {
		return fmt.Errorf("%w: restore failed: %v", scopetypes.ErrStackCorruption, err)
	}
	return nil
}

// Depth returns the number of frames currently stacked under key.
func (ss *StackService) Depth(key string) int {
	if !ss.initialized {
		return 0
	}
	return ss.ctx.ScopeFrameDepth(key)
}

func init() {
	if err := GlobalRegistry.RegisterService(NewStackService()); err != nil {
		panic(fmt.Sprintf("failed to register stack service: %v", err))
	}
}
