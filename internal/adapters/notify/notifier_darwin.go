//go:build darwin

package notify

import (
	"fmt"
	"strings"

	"github.com/renato0307/prmonitor/internal/domain"
)

// showNotification uses Notification Center through osascript
func showNotification(run runner, title, body string) error {
	script := fmt.Sprintf("display notification %s with title %s", appleScriptString(body), appleScriptString(title))
	return run("osascript", "-e", script)
}

// playForEvent plays sounds on macOS using afplay
func playForEvent(run runner, kind domain.EventKind) error {
	sound := "/System/Library/Sounds/Glass.aiff"
	if kind == domain.EventFailure {
		sound = "/System/Library/Sounds/Basso.aiff"
	}
	return firstSuccessful(run, [][]string{
		{"afplay", sound},
		{"afplay", "/System/Library/Sounds/Tink.aiff"},
	})
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
