//go:build windows

package browser

func browserCommand(link string) (string, []string) {
	return "rundll32", []string{"url.dll,FileProtocolHandler", link}
}
