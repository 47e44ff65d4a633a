package workoutchat

import (
	"sync"
	"time"
)

// Gate ensures a completed workout is saved exactly once per logging attempt.
// The saved flag is tracked independently of isComplete, so repeated model
// responses that keep isComplete=true don't re-save, while a flip back to
// false (a fresh attempt) arms the gate again. A failed save leaves the gate
// armed so the next turn retries.
type Gate struct {
	mu       sync.Mutex
	saved    bool
	inFlight bool
}

// ShouldSave reports whether a save must run for the given isComplete state
// and, when it returns true, claims the in-flight guard. The caller must
// follow up with exactly one SaveSucceeded or SaveFailed call.
func (g *Gate) ShouldSave(isComplete bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !isComplete {
		// a new attempt started, arm the gate again
		g.saved = false
		return false
	}
	if g.saved || g.inFlight {
		return false
	}

	g.inFlight = true
	return true
}

func (g *Gate) SaveSucceeded() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saved = true
	g.inFlight = false
}

func (g *Gate) SaveFailed() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight = false
}

// GateRegistry holds one Gate per chat session. Entries for sessions that
// stopped chatting are swept out periodically via CleanInactive, so the map
// can't grow without bound in a long-lived process.
type GateRegistry struct {
	mu    sync.Mutex
	gates map[string]*gateEntry
}

type gateEntry struct {
	gate     *Gate
	lastSeen time.Time
}

func NewGateRegistry() *GateRegistry {
	return &GateRegistry{
		gates: make(map[string]*gateEntry),
	}
}

func (r *GateRegistry) Get(sessionID string) *Gate {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.gates[sessionID]
	if !ok {
		entry = &gateEntry{gate: &Gate{}}
		r.gates[sessionID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.gate
}

// CleanInactive drops gates whose session had no turn for the given duration
// and returns the number of removed entries. A chat resuming after eviction
// gets a fresh gate, where the workout log's dedup key still prevents a
// double insert for the same session.
func (r *GateRegistry) CleanInactive(inactiveFor time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for sessionID, entry := range r.gates {
		if time.Since(entry.lastSeen) > inactiveFor {
			delete(r.gates, sessionID)
			removed++
		}
	}
	return removed
}
