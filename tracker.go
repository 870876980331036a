package authlens

import (
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
)

// Tracker discards out-of-order reports. A caller that analyzes the message
// currently on display calls Begin before fetching it and Commit with the
// finished report; if another message was selected in between, Commit
// rejects the older report.
//
// Generation tokens are ULIDs, so they sort by creation time.
type Tracker struct {
	mu      sync.Mutex
	current ulid.ULID
	latest  *Report
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin starts a new generation and returns its token. Reports of all
// earlier generations become stale.
func (t *Tracker) Begin() string {
	id := ulid.Make()

	t.mu.Lock()
	defer t.mu.Unlock()
	// The current generation never moves backwards.
	if id.Compare(t.current) > 0 {
		t.current = id
	}
	return t.current.String()
}

// Commit stores r as the latest report if generation is the current one.
// It sets r.Generation on success.
func (t *Tracker) Commit(generation string, r *Report) error {
	id, err := ulid.ParseStrict(generation)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGeneration, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if id != t.current {
		return fmt.Errorf("%w: %s, current is %s", ErrStaleGeneration, generation, t.current)
	}
	r.Generation = generation
	t.latest = r
	return nil
}

// Current returns the token of the current generation, or "" before the
// first Begin.
func (t *Tracker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero ulid.ULID
	if t.current == zero {
		return ""
	}
	return t.current.String()
}

// Latest returns the last committed report, or nil.
func (t *Tracker) Latest() *Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest
}
