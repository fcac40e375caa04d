//go:build linux

package notify

import "github.com/renato0307/prmonitor/internal/domain"

// showNotification uses notify-send (libnotify)
func showNotification(run runner, title, body string) error {
	return run("notify-send", "--app-name=prmonitor", title, body)
}

// playForEvent plays sounds on Linux using paplay (PulseAudio) or aplay (ALSA)
func playForEvent(run runner, kind domain.EventKind) error {
	name := "complete"
	if kind == domain.EventFailure {
		name = "dialog-warning"
	}
	return firstSuccessful(run, [][]string{
		{"paplay", "/usr/share/sounds/freedesktop/stereo/" + name + ".oga"},
		{"aplay", "/usr/share/sounds/freedesktop/stereo/" + name + ".wav"},
	})
}
