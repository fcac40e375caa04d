package notify

import (
	"fmt"
	"os/exec"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/ports"
)

// runner executes a command and waits for it
type runner func(name string, args ...string) error

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Notifier implements ports.Notifier with the platform notification center,
// followed by a sound. Platform-specific parts are in notifier_*.go files.
type Notifier struct {
	run   runner
	sound bool
}

// Verify interface compliance at compile time
var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier creates a desktop notifier; sound enables the completion sound
func NewNotifier(sound bool) *Notifier {
	return &Notifier{run: runCommand, sound: sound}
}

// Notify shows the notification and plays the sound for kind. When no
// notification tool is available the terminal bell is used instead.
func (n *Notifier) Notify(title, body string, kind domain.EventKind) error {
	logging.Logger.Debug("Showing notification", "title", title, "kind", kind)

	if err := showNotification(n.run, title, body); err != nil {
		logging.Logger.Debug("Notification tool unavailable, using terminal bell", "error", err)
		return terminalBell()
	}

	if n.sound {
		if err := playForEvent(n.run, kind); err != nil {
			logging.Logger.Debug("Failed to play sound", "error", err)
		}
	}
	return nil
}

// terminalBell outputs a terminal bell character as fallback
func terminalBell() error {
	fmt.Print("\a")
	return nil
}

// firstSuccessful runs candidates in order until one succeeds
func firstSuccessful(run runner, candidates [][]string) error {
	var lastErr error
	for _, c := range candidates {
		if err := run(c[0], c[1:]...); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
