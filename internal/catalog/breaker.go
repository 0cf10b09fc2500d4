package catalog

import (
	"sync"
	"time"
)

type breakerState struct {
	failures int
	openedAt time.Time
}

// Breaker skips requests to an endpoint for a cooldown window after it
// has failed several times in a row. It only governs the failure path:
// a single success resets the endpoint completely.
type Breaker struct {
	mu        sync.Mutex
	threshold int
	cooldown  time.Duration
	now       func() time.Time
	states    map[string]*breakerState
}

func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	return &Breaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
		states:    make(map[string]*breakerState),
	}
}

// Allow reports whether a request to key may be attempted. While the
// cooldown window is open attempts are rejected; once it elapses one
// attempt is let through, and a failure re-opens the window.
func (b *Breaker) Allow(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.states[key]
	if !ok || state.failures < b.threshold {
		return true
	}

	return !b.now().Before(state.openedAt.Add(b.cooldown))
}

func (b *Breaker) Success(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.states, key)
}

func (b *Breaker) Failure(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.states[key]
	if !ok {
		state = &breakerState{}
		b.states[key] = state
	}

	state.failures++
	if state.failures >= b.threshold {
		state.openedAt = b.now()
	}
}
