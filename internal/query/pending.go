package query

import "sync"

// Pending tracks in-flight mutations keyed by target entity id. While an id
// is pending, the triggering control is reported disabled and a duplicate
// submission is refused.
type Pending struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewPending creates an empty tracker.
func NewPending() *Pending {
	return &Pending{ids: make(map[string]struct{})}
}

// Begin marks id as pending. It returns false when a mutation for the same
// id is already in flight, in which case the caller must not submit.
func (p *Pending) Begin(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, inFlight := p.ids[id]; inFlight {
		return false
	}
	p.ids[id] = struct{}{}
	return true
}

// End clears the pending mark for id.
func (p *Pending) End(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.ids, id)
}

// IsPending reports whether a mutation for id is in flight.
func (p *Pending) IsPending(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, inFlight := p.ids[id]
	return inFlight
}
