package engine

import (
	"sync"
	"time"
)

// PopupTTL is how long a transient XP popup stays visible.
const PopupTTL = 1500 * time.Millisecond

type Popup struct {
	Amount    int
	ExpiresAt time.Time
}

// Popups is the transient per-entity XP-delta map the UI reads for ephemeral
// feedback. It is never persisted and is not part of durable state.
type Popups struct {
	mu      sync.Mutex
	entries map[string]Popup
}

func NewPopups() *Popups {
	return &Popups{entries: map[string]Popup{}}
}

// Add records a popup for the entity. A zero delta is not worth showing.
func (p *Popups) Add(entityID string, amount int, now time.Time) {
	if amount == 0 {
		return
	}
	p.mu.Lock()
	p.entries[entityID] = Popup{Amount: amount, ExpiresAt: now.Add(PopupTTL)}
	p.mu.Unlock()
}

// Get returns the live popup for the entity, if any.
func (p *Popups) Get(entityID string, now time.Time) (Popup, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pop, ok := p.entries[entityID]
	if !ok || !pop.ExpiresAt.After(now) {
		return Popup{}, false
	}
	return pop, true
}

// Active returns all live popups and prunes expired ones.
func (p *Popups) Active(now time.Time) map[string]Popup {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]Popup, len(p.entries))
	for id, pop := range p.entries {
		if pop.ExpiresAt.After(now) {
			out[id] = pop
		} else {
			delete(p.entries, id)
		}
	}
	return out
}
