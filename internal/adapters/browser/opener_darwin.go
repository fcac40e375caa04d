//go:build darwin

package browser

func browserCommand(link string) (string, []string) {
	return "open", []string{link}
}
