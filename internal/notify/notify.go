// Package notify delivers desktop notifications. It uses native
// mechanisms (notify-send on Linux, osascript on macOS) and degrades to
// a no-op where neither is available.
package notify

// Notifier is the notification platform surface.
type Notifier interface {
	// Send issues one notification. The id keys the notification for
	// the platform; title and body are user-visible.
	Send(id, title, body string) error
}

type noopNotifier struct{}

func (noopNotifier) Send(id, title, body string) error { return nil }

// New creates a platform-specific notifier, or a no-op one when the
// platform has no supported notification mechanism.
func New() Notifier {
	if n := newPlatformNotifier(); n != nil {
		return n
	}
	return noopNotifier{}
}
