package alarm

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is a recording Service for tests. It never fires.
type Memory struct {
	mu      sync.Mutex
	pending map[string]time.Time

	// FailCreate makes every Create return an error, for exercising
	// soft-failure paths.
	FailCreate bool

	// Creates counts Create calls, including replacements.
	Creates int
}

// NewMemory creates an empty Memory service.
func NewMemory() *Memory {
	return &Memory{pending: make(map[string]time.Time)}
}

func (m *Memory) Create(name string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Creates++
	if m.FailCreate {
		return errors.New("alarm platform unavailable")
	}
	m.pending[name] = at
	return nil
}

func (m *Memory) ClearPrefix(prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name := range m.pending {
		if strings.HasPrefix(name, prefix) {
			delete(m.pending, name)
		}
	}
	return nil
}

func (m *Memory) Pending() []Alarm {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Alarm, 0, len(m.pending))
	for name, at := range m.pending {
		out = append(out, Alarm{Name: name, At: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
