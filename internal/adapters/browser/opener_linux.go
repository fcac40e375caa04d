//go:build linux

package browser

import "os"

// browserCommand honours $BROWSER, then falls back to xdg-open
func browserCommand(link string) (string, []string) {
	if b := os.Getenv("BROWSER"); b != "" {
		return b, []string{link}
	}
	return "xdg-open", []string{link}
}
