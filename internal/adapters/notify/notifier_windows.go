//go:build windows

package notify

import (
	"fmt"
	"strings"

	"github.com/renato0307/prmonitor/internal/domain"
)

const toastScript = `[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] > $null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$text = $template.GetElementsByTagName('text')
$text.Item(0).AppendChild($template.CreateTextNode('%s')) > $null
$text.Item(1).AppendChild($template.CreateTextNode('%s')) > $null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('prmonitor').Show($toast)`

// showNotification shows a toast through PowerShell
func showNotification(run runner, title, body string) error {
	script := fmt.Sprintf(toastScript, powershellEscape(title), powershellEscape(body))
	return run("powershell", "-NoProfile", "-Command", script)
}

// playForEvent plays sounds on Windows using PowerShell
func playForEvent(run runner, kind domain.EventKind) error {
	sound := "[System.Media.SystemSounds]::Asterisk.Play()"
	if kind == domain.EventFailure {
		sound = "[System.Media.SystemSounds]::Exclamation.Play()"
	}
	return firstSuccessful(run, [][]string{
		{"powershell", "-NoProfile", "-Command", sound},
		{"powershell", "-NoProfile", "-Command", "[System.Media.SystemSounds]::Beep.Play()"},
	})
}

func powershellEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
