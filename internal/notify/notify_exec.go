package notify

import (
	"fmt"
	"os/exec"
	"runtime"
)

// execNotifier shells out to the platform notification command.
type execNotifier struct {
	command string
	args    func(title, body string) []string
}

func (e *execNotifier) Send(id, title, body string) error {
	cmd := exec.Command(e.command, e.args(title, body)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", e.command, err, out)
	}
	return nil
}

// newPlatformNotifier picks the native mechanism for the current OS.
// Returns nil when none is available.
func newPlatformNotifier() Notifier {
	switch runtime.GOOS {
	case "linux":
		if _, err := exec.LookPath("notify-send"); err != nil {
			return nil
		}
		return &execNotifier{
			command: "notify-send",
			args: func(title, body string) []string {
				return []string{"--app-name=prayerwatch", title, body}
			},
		}
	case "darwin":
		if _, err := exec.LookPath("osascript"); err != nil {
			return nil
		}
		return &execNotifier{
			command: "osascript",
			args: func(title, body string) []string {
				script := fmt.Sprintf("display notification %q with title %q", body, title)
				return []string{"-e", script}
			},
		}
	default:
		return nil
	}
}
