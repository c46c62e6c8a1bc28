package orbit

import (
	"fmt"
	"time"
)

// Registry owns the records in insertion order and applies bulk operations.
type Registry struct {
	sched   Scheduler
	records []*Record
	index   map[string]int
}

// NewRegistry creates an empty registry whose records are driven by sched.
func NewRegistry(sched Scheduler) *Registry {
	return &Registry{
		sched: sched,
		index: make(map[string]int),
	}
}

// Create builds a record, registers it, and starts its motion at speed.
// parent is the name of an already registered record, or "" for the origin.
func (g *Registry) Create(name string, distance float64, basePeriod time.Duration, parent string, speed float64) (*Record, error) {
	if err := validSpeed(speed); err != nil {
		return nil, err
	}
	if _, exists := g.index[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateIdentity, name)
	}

	var p *Record
	if parent != "" {
		var ok bool
		p, ok = g.Find(parent)
		if !ok {
			return nil, fmt.Errorf("%w: %s (parent of %s)", ErrUnknownParent, parent, name)
		}
	}

	r, err := NewRecord(name, distance, basePeriod, p)
	if err != nil {
		return nil, err
	}
	if err := g.Register(r); err != nil {
		return nil, err
	}
	if err := r.Start(g.sched, speed); err != nil {
		return nil, err
	}
	return r, nil
}

// Register appends a record. A second record under an existing name is
// rejected with ErrDuplicateIdentity; the registry is left unchanged.
// A record whose parent is not in this registry is rejected too.
func (g *Registry) Register(r *Record) error {
	if _, exists := g.index[r.name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentity, r.name)
	}
	if r.parent != nil {
		if p, ok := g.Find(r.parent.name); !ok || p != r.parent {
			return fmt.Errorf("%w: %s (parent of %s)", ErrUnknownParent, r.parent.name, r.name)
		}
	}
	g.index[r.name] = len(g.records)
	g.records = append(g.records, r)
	return nil
}

// Find returns the record registered under name.
func (g *Registry) Find(name string) (*Record, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.records[i], true
}

// Records returns the records in insertion order. The slice is a copy.
func (g *Registry) Records() []*Record {
	out := make([]*Record, len(g.records))
	copy(out, g.records)
	return out
}

// Len returns the number of registered records.
func (g *Registry) Len() int {
	return len(g.records)
}

// Children returns the records orbiting the named record.
func (g *Registry) Children(name string) []*Record {
	var out []*Record
	for _, r := range g.records {
		if r.parent != nil && r.parent.name == name {
			out = append(out, r)
		}
	}
	return out
}

// RetuneAll retunes every record in insertion order, so parents receive
// their new registrations before their children.
func (g *Registry) RetuneAll(speed float64) error {
	if err := validSpeed(speed); err != nil {
		return err
	}
	for _, r := range g.records {
		if r.sched == nil {
			if err := r.Start(g.sched, speed); err != nil {
				return err
			}
			continue
		}
		if err := r.Retune(speed); err != nil {
			return fmt.Errorf("retune %s: %w", r.name, err)
		}
	}
	return nil
}

// PauseAll suspends every record.
func (g *Registry) PauseAll() {
	for _, r := range g.records {
		r.Pause()
	}
}

// ResumeAll resumes every record, recreating lost registrations at speed.
func (g *Registry) ResumeAll(speed float64) error {
	for _, r := range g.records {
		if r.sched == nil {
			r.paused = false
			if err := r.Start(g.sched, speed); err != nil {
				return err
			}
			continue
		}
		if err := r.Resume(speed); err != nil {
			return fmt.Errorf("resume %s: %w", r.name, err)
		}
	}
	return nil
}
