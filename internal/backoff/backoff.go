// Package backoff provides a capped exponential backoff policy for the
// polling loop's failure path.
package backoff

import "time"

// Policy produces increasing delays for consecutive failures.
// It is not safe for concurrent use; the polling loop owns it exclusively.
type Policy struct {
	initial time.Duration
	max     time.Duration
	attempt int
}

// New creates a policy starting at initial and doubling up to max.
func New(initial, max time.Duration) *Policy {
	if initial <= 0 {
		initial = time.Second
	}
	if max < initial {
		max = initial
	}
	return &Policy{initial: initial, max: max}
}

// Next returns the delay to wait before the next attempt and advances
// the policy: initial, 2*initial, 4*initial, ... capped at max.
func (p *Policy) Next() time.Duration {
	delay := p.initial << uint(p.attempt)
	if delay <= 0 || delay > p.max {
		delay = p.max
	}
	if delay < p.max {
		p.attempt++
	}
	return delay
}

// Reset returns the policy to its initial delay after a success.
func (p *Policy) Reset() {
	p.attempt = 0
}
