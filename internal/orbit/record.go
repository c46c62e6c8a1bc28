// Package orbit models uniform circular motion of the Sun, planets, and moons.
//
// Each Record owns exactly one scheduler registration. The registration's
// progress callback recomputes the record's position, composing the
// parent's last position for moons. Records form a strict tree at most two
// levels deep below the origin: planets orbit the origin, moons orbit a
// planet.
package orbit

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-orrery/internal/anim"
)

var (
	// ErrDuplicateIdentity is returned when a name is registered twice.
	ErrDuplicateIdentity = errors.New("orbit: duplicate identity")
	// ErrUnknownParent is returned when a parent name is not registered.
	ErrUnknownParent = errors.New("orbit: unknown parent")
	// ErrTooDeep is returned when a parent is itself a moon.
	ErrTooDeep = errors.New("orbit: parent already has a parent")
	// ErrInvalidOrbit is returned for a negative distance or a non-positive period.
	ErrInvalidOrbit = errors.New("orbit: invalid orbit")
	// ErrInvalidSpeed is returned when a speed multiplier is not positive.
	ErrInvalidSpeed = errors.New("orbit: speed multiplier must be positive")
)

// Scheduler delivers looping progress callbacks. *anim.Loop implements it.
type Scheduler interface {
	Start(period time.Duration, fn anim.ProgressFunc) anim.Handle
	Pause(h anim.Handle)
	Resume(h anim.Handle)
	Discard(h anim.Handle)
	Alive(h anim.Handle) bool
}

// Record is the circular motion of one body.
type Record struct {
	name       string
	distance   float64
	basePeriod time.Duration
	parent     *Record

	position  Vec2
	progress  float64
	effective time.Duration
	handle    anim.Handle
	paused    bool

	sched Scheduler
}

// NewRecord validates and builds a record. It does not start motion;
// Registry.Create or Start does.
func NewRecord(name string, distance float64, basePeriod time.Duration, parent *Record) (*Record, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidOrbit)
	}
	if distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, fmt.Errorf("%w: %s distance %v", ErrInvalidOrbit, name, distance)
	}
	if basePeriod <= 0 {
		return nil, fmt.Errorf("%w: %s period %v", ErrInvalidOrbit, name, basePeriod)
	}
	if parent != nil && parent.parent != nil {
		return nil, fmt.Errorf("%w: %s under %s", ErrTooDeep, name, parent.name)
	}

	r := &Record{
		name:       name,
		distance:   distance,
		basePeriod: basePeriod,
		parent:     parent,
	}
	r.update(0)
	return r, nil
}

// Name returns the body name.
func (r *Record) Name() string { return r.name }

// Distance returns the orbital radius around the parent.
func (r *Record) Distance() float64 { return r.distance }

// BasePeriod returns the revolution period at unit speed.
func (r *Record) BasePeriod() time.Duration { return r.basePeriod }

// Parent returns the parent record, or nil for bodies orbiting the origin.
func (r *Record) Parent() *Record { return r.parent }

// Position returns the last computed sun-centred position.
func (r *Record) Position() Vec2 { return r.position }

// Progress returns the last delivered progress (0-100).
func (r *Record) Progress() float64 { return r.progress }

// EffectivePeriod returns the period of the active registration.
func (r *Record) EffectivePeriod() time.Duration { return r.effective }

// Handle returns the active scheduler handle (0 if none).
func (r *Record) Handle() anim.Handle { return r.handle }

// Paused reports whether motion is suspended.
func (r *Record) Paused() bool { return r.paused }

// Depth returns 1 for bodies orbiting the origin, 2 for moons.
func (r *Record) Depth() int {
	if r.parent == nil {
		return 1
	}
	return 2
}

// update is the progress callback.
func (r *Record) update(progress float64) {
	r.progress = progress
	var origin Vec2
	if r.parent != nil {
		origin = r.parent.position
	}
	r.position = PositionAt(progress, r.distance, origin)
}

// maxPeriod is the longest representable Duration.
const maxPeriod = time.Duration(math.MaxInt64)

// EffectivePeriodFor returns basePeriod / speed, saturated to
// [1ns, maxPeriod] so extreme speeds never wrap the Duration.
func EffectivePeriodFor(basePeriod time.Duration, speed float64) time.Duration {
	d := float64(basePeriod) / speed
	switch {
	case d >= float64(maxPeriod):
		return maxPeriod
	case !(d >= 1):
		return 1
	}
	return time.Duration(d)
}

func validSpeed(speed float64) error {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, speed)
	}
	return nil
}

// Start requests a registration from sched at the given speed. A record
// that was already started is retuned instead.
func (r *Record) Start(sched Scheduler, speed float64) error {
	if err := validSpeed(speed); err != nil {
		return err
	}
	if r.sched != nil && r.sched != sched {
		r.sched.Discard(r.handle)
		r.handle = 0
	}
	r.sched = sched
	r.restart(speed)
	return nil
}

func (r *Record) restart(speed float64) {
	r.sched.Discard(r.handle)
	r.effective = EffectivePeriodFor(r.basePeriod, speed)
	r.handle = r.sched.Start(r.effective, r.update)
	if r.paused {
		r.sched.Pause(r.handle)
	}
}

// Retune replaces the registration so one revolution takes
// basePeriod/speed. Progress restarts at 0. Retuning to the current
// effective period while the registration is alive does nothing. A paused
// record stays paused.
func (r *Record) Retune(speed float64) error {
	if err := validSpeed(speed); err != nil {
		return err
	}
	if r.sched == nil {
		return nil
	}
	if r.sched.Alive(r.handle) && r.effective == EffectivePeriodFor(r.basePeriod, speed) {
		return nil
	}
	r.restart(speed)
	return nil
}

// Pause suspends motion, keeping progress.
func (r *Record) Pause() {
	r.paused = true
	if r.sched != nil {
		r.sched.Pause(r.handle)
	}
}

// Resume continues motion. If the registration was lost it is recreated at
// speed.
func (r *Record) Resume(speed float64) error {
	r.paused = false
	if r.sched == nil {
		return nil
	}
	if !r.sched.Alive(r.handle) {
		if err := validSpeed(speed); err != nil {
			return err
		}
		r.restart(speed)
		return nil
	}
	r.sched.Resume(r.handle)
	return nil
}

// Stop discards the registration. Safe to call repeatedly.
func (r *Record) Stop() {
	if r.sched != nil {
		r.sched.Discard(r.handle)
	}
	r.handle = 0
}
