package filter

import "sync"

// State is the per-screen filter/pagination state machine. Screen controls
// edit a draft set that does not affect fetching; Apply commits the draft as
// the applied set that drives the active query. Every transition that changes
// the applied set resets the page to 1, so changing filters while on page 3
// never silently fetches page 3 of the new results.
type State struct {
	mu      sync.Mutex
	draft   Set
	applied Set
	page    int
}

// NewState creates a State with empty draft and applied sets on page 1.
func NewState() *State {
	return &State{
		draft:   Set{},
		applied: Set{},
		page:    1,
	}
}

// SetDraft records a draft filter value without affecting the active query.
func (s *State) SetDraft(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft[name] = value
}

// Draft returns a copy of the draft set.
func (s *State) Draft() Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// Apply commits the draft as the applied set and resets the page to 1.
// Empty draft values are dropped on commit.
func (s *State) Apply() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = s.draft.Compact()
	s.page = 1
}

// Clear resets all filter fields to empty and re-applies immediately: the
// applied set becomes empty (an unfiltered fetch) and the page resets to 1.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = Set{}
	s.applied = Set{}
	s.page = 1
}

// Applied returns a copy of the set currently driving the query.
func (s *State) Applied() Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied.Clone()
}

// Page returns the current page within the applied set.
func (s *State) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// SetPage advances pagination within the applied set. Pages below 1 clamp to 1.
func (s *State) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	s.page = page
}
