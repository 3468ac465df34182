package notify

import (
	"errors"
	"sync"
)

// Sent records one delivered notification.
type Sent struct {
	ID    string
	Title string
	Body  string
}

// Memory is a recording Notifier for tests.
type Memory struct {
	mu   sync.Mutex
	sent []Sent

	// FailSend makes every Send return an error.
	FailSend bool
}

// NewMemory creates an empty Memory notifier.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Send(id, title, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSend {
		return errors.New("notification platform unavailable")
	}
	m.sent = append(m.sent, Sent{ID: id, Title: title, Body: body})
	return nil
}

// All returns a copy of the delivered notifications in order.
func (m *Memory) All() []Sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Sent(nil), m.sent...)
}
