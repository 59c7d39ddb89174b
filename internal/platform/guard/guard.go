// Package guard prevents duplicate submission of a mutating operation while
// a prior invocation is still waiting on the network. The event loop is
// single-threaded, but a network call is a suspension point: the user can
// tap "save" again before the first call returns.
package guard

import (
	"errors"
	"sync"
)

// ErrInFlight reports that the same operation is already outstanding.
var ErrInFlight = errors.New("operation already in flight")

type Guard struct {
	mu       sync.Mutex
	inflight map[string]bool
}

func New() *Guard {
	return &Guard{inflight: make(map[string]bool)}
}

// Begin marks key as in flight. It returns ErrInFlight when a prior Begin
// for the same key has not yet been matched by End.
func (g *Guard) Begin(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inflight[key] {
		return ErrInFlight
	}
	g.inflight[key] = true
	return nil
}

// End releases key. Calling End for a key that is not in flight is a no-op.
func (g *Guard) End(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, key)
}
