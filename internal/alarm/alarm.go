// Package alarm provides named one-shot timers, the platform surface
// the notification scheduler targets.
package alarm

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Alarm is a pending named timer with one absolute fire instant. At most
// one alarm per name may be pending at a time.
type Alarm struct {
	Name string
	At   time.Time
}

// Service is the alarm platform. Create replaces any pending alarm with
// the same name; ClearPrefix cancels every alarm whose name starts with
// prefix.
type Service interface {
	Create(name string, at time.Time) error
	ClearPrefix(prefix string) error
	Pending() []Alarm
}

// Handler is invoked when an alarm elapses.
type Handler func(name string)

// Runtime is an in-process Service backed by time.Timer. Fired and
// cancelled alarms are removed from the pending set; the handler runs on
// the timer's goroutine.
type Runtime struct {
	mu      sync.Mutex
	handler Handler
	timers  map[string]*time.Timer
	pending map[string]time.Time
	closed  bool
}

// NewRuntime creates a Runtime delivering fires to handler.
func NewRuntime(handler Handler) *Runtime {
	return &Runtime{
		handler: handler,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]time.Time),
	}
}

// Create schedules (or reschedules) the named alarm. An instant already
// in the past fires immediately.
func (r *Runtime) Create(name string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}

	if t, ok := r.timers[name]; ok {
		t.Stop()
	}

	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	r.pending[name] = at
	r.timers[name] = time.AfterFunc(d, func() { r.fire(name) })
	return nil
}

func (r *Runtime) fire(name string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	delete(r.timers, name)
	delete(r.pending, name)
	h := r.handler
	r.mu.Unlock()

	if h != nil {
		h(name)
	}
}

// ClearPrefix cancels every pending alarm whose name starts with prefix.
func (r *Runtime) ClearPrefix(prefix string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, t := range r.timers {
		if strings.HasPrefix(name, prefix) {
			t.Stop()
			delete(r.timers, name)
			delete(r.pending, name)
		}
	}
	return nil
}

// Pending lists the pending alarms sorted by name.
func (r *Runtime) Pending() []Alarm {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Alarm, 0, len(r.pending))
	for name, at := range r.pending {
		out = append(out, Alarm{Name: name, At: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Close stops all timers. No handler runs after Close returns for
// alarms that had not yet fired.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = map[string]*time.Timer{}
	r.pending = map[string]time.Time{}
}
