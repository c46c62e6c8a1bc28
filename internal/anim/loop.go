// Package anim provides the frame-driven progress scheduler that drives
// orbital motion.
//
// A Loop owns a set of looping registrations. Each registration has a
// period and a callback; every call to Advance moves the registration's
// elapsed time forward and delivers the resulting progress in [0,100).
// Loop is not safe for concurrent use: it is advanced from the UI update
// loop and mutated by input handlers on the same goroutine.
package anim

import (
	"time"
)

// Handle identifies a registration. The zero Handle is never issued.
type Handle uint64

// ProgressFunc receives the progress of one revolution in [0,100).
type ProgressFunc func(progress float64)

type entry struct {
	period  time.Duration
	elapsed time.Duration
	paused  bool
	fn      ProgressFunc
}

// Loop is a cooperative scheduler of looping progress callbacks.
type Loop struct {
	next    Handle
	entries map[Handle]*entry
	order   []Handle // creation order; callbacks fire in this order
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{
		entries: make(map[Handle]*entry),
	}
}

// Start registers a looping callback with the given period and returns its
// handle. The callback is invoked once immediately with progress 0 so
// that dependents observe a valid value before the first frame.
func (l *Loop) Start(period time.Duration, fn ProgressFunc) Handle {
	if period <= 0 {
		period = time.Millisecond
	}
	l.next++
	h := l.next
	l.entries[h] = &entry{period: period, fn: fn}
	l.order = append(l.order, h)
	if fn != nil {
		fn(0)
	}
	return h
}

// Pause suspends a registration without resetting its progress.
// Unknown or discarded handles are ignored.
func (l *Loop) Pause(h Handle) {
	if e, ok := l.entries[h]; ok {
		e.paused = true
	}
}

// Resume continues a paused registration from where it stopped.
func (l *Loop) Resume(h Handle) {
	if e, ok := l.entries[h]; ok {
		e.paused = false
	}
}

// Discard removes a registration. Safe to call repeatedly.
func (l *Loop) Discard(h Handle) {
	if _, ok := l.entries[h]; !ok {
		return
	}
	delete(l.entries, h)
	for i, oh := range l.order {
		if oh == h {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Alive reports whether the handle refers to a live registration.
func (l *Loop) Alive(h Handle) bool {
	_, ok := l.entries[h]
	return ok
}

// Paused reports whether a live registration is paused.
func (l *Loop) Paused(h Handle) bool {
	e, ok := l.entries[h]
	return ok && e.paused
}

// Period returns the period of a live registration, or 0.
func (l *Loop) Period(h Handle) time.Duration {
	if e, ok := l.entries[h]; ok {
		return e.period
	}
	return 0
}

// Len returns the number of live registrations.
func (l *Loop) Len() int {
	return len(l.entries)
}

// Advance moves every running registration forward by dt and fires its
// callback. Registrations discarded or created by a callback during the
// pass take effect on the next Advance.
func (l *Loop) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	handles := make([]Handle, len(l.order))
	copy(handles, l.order)

	for _, h := range handles {
		e, ok := l.entries[h]
		if !ok || e.paused {
			continue
		}
		e.elapsed = (e.elapsed + dt) % e.period
		if e.fn != nil {
			e.fn(Progress(e.elapsed, e.period))
		}
	}
}

// Progress converts elapsed time within a period to a percentage in [0,100).
func Progress(elapsed, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	elapsed %= period
	if elapsed < 0 {
		elapsed += period
	}
	return float64(elapsed) / float64(period) * 100
}
