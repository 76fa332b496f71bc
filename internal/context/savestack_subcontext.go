package context

import (
	"fmt"
	"sync"

	"github.com/mgree/modernish/pkg/scopetypes"
)

// SavedEntry is the saved original value/state of one scope item's target.
type SavedEntry struct {
	Item scopetypes.ScopeItem
	// Variable targets
	VarValue  string
	VarWasSet bool
	// Option targets
	OptWasOn bool
}

// ScopeFrame is the saved-original-values record pushed for one block
// activation. The ID ties the frame to the activation that pushed it, so
// an out-of-order pop is detected instead of silently absorbed.
type ScopeFrame struct {
	ID      string
	Key     string
	Entries []SavedEntry
}

// saveStackSubcontext holds the process-wide LIFO save stacks, one per
// scope key. Keys distinguish frames belonging to the scope construct from
// any other stack user sharing the mechanism.
type saveStackSubcontext struct {
	frames map[string][]*ScopeFrame // key -> stack, last element is top
	mu     sync.RWMutex
}

func newSaveStackSubcontext() *saveStackSubcontext {
	return &saveStackSubcontext{
		frames: make(map[string][]*ScopeFrame),
	}
}

// PushFrame pushes a frame on the stack for its key.
func (s *saveStackSubcontext) PushFrame(frame *ScopeFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[frame.Key] = append(s.frames[frame.Key], frame)
}

// PopFrame removes and returns the most recent frame under key. The pop is
// refused when the stack is empty or the top frame is not the one the
// caller expects: both are LIFO violations.
func (s *saveStackSubcontext) PopFrame(key string, frameID string) (*ScopeFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stack := s.frames[key]
	if len(stack) == 0 {
		return nil, fmt.Errorf("no frame to pop under key %q", key)
	}
	top := stack[len(stack)-1]
	if top.ID != frameID {
		return nil, fmt.Errorf("top frame under key %q is %s, expected %s", key, top.ID, frameID)
	}
	s.frames[key] = stack[:len(stack)-1]
	return top, nil
}

// PeekFrame returns the top frame under key without removing it.
func (s *saveStackSubcontext) PeekFrame(key string) (*ScopeFrame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stack := s.frames[key]
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

// FrameDepth returns the number of frames stacked under key.
func (s *saveStackSubcontext) FrameDepth(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.frames[key])
}
