package client

import (
    "errors"
    "fmt"
    "sync"
)

// ErrPending is returned when a mutation on an entity is invoked while a
// previous mutation on the same entity is still in flight. The first
// call proceeds; re-entrant calls fail fast without touching the network
// so a double-clicked button cannot fire two requests.
var ErrPending = errors.New("operation already in flight for this entity")

// inflight tracks which entities currently have a mutation on the wire.
// Keys are "kind:id" pairs, one slot per entity.
type inflight struct {
    mu  sync.Mutex
    set map[string]struct{}
}

func newInflight() *inflight {
    return &inflight{set: map[string]struct{}{}}
}

// acquire reserves the entity's slot. It reports false when a mutation
// is already in flight.
func (f *inflight) acquire(kind string, id uint64) bool {
    key := fmt.Sprintf("%s:%d", kind, id)
    f.mu.Lock()
    defer f.mu.Unlock()
    if _, busy := f.set[key]; busy {
        return false
    }
    f.set[key] = struct{}{}
    return true
}

func (f *inflight) release(kind string, id uint64) {
    key := fmt.Sprintf("%s:%d", kind, id)
    f.mu.Lock()
    defer f.mu.Unlock()
    delete(f.set, key)
}
