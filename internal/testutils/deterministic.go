// Package testutils provides deterministic generators and helpers for
// modernish testing. These utilities keep test output stable while
// preserving production formats.
package testutils

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/mgree/modernish/pkg/scopetypes"
)

var (
	// Thread-safe counter for deterministic ID generation
	idCounter uint64
	idMutex   sync.Mutex
)

// GenerateFrameID generates a frame identifier that is deterministic in
// test mode but a random UUID in production.
func GenerateFrameID(ctx scopetypes.Context) string {
	if ctx.IsTestMode() {
		return getDeterministicUUID()
	}
	return uuid.New().String()
}

// getDeterministicUUID generates sequential IDs that keep the UUID v4
// shape: 00000001-0000-4000-8000-000000000001, and so on.
func getDeterministicUUID() string {
	idMutex.Lock()
	defer idMutex.Unlock()

	idCounter++
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", idCounter, idCounter)
}

// ResetTestCounters resets the deterministic counters. Only call from
// test code, to keep runs reproducible.
func ResetTestCounters() {
	idMutex.Lock()
	defer idMutex.Unlock()
	idCounter = 0
}
