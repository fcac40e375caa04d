//go:build !darwin && !linux && !windows

package browser

func browserCommand(link string) (string, []string) {
	return "xdg-open", []string{link}
}
