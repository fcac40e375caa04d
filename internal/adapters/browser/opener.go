package browser

import (
	"fmt"
	"net/url"
	"os/exec"

	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/ports"
)

// starter launches a command without waiting for it
type starter func(name string, args ...string) (wait func() error, err error)

func startCommand(name string, args ...string) (func() error, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd.Wait, nil
}

// Opener implements ports.BrowserOpener
type Opener struct {
	start starter
}

// Verify interface compliance at compile time
var _ ports.BrowserOpener = (*Opener)(nil)

// NewOpener creates a new browser opener
func NewOpener() *Opener {
	return &Opener{start: startCommand}
}

// Open opens an http(s) link with the platform default browser.
// Platform commands are in opener_*.go files.
func (o *Opener) Open(link string) error {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) link", link)
	}

	name, args := browserCommand(u.String())
	logging.Logger.Info("Opening browser", "command", name, "url", link)

	wait, err := o.start(name, args...)
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}

	go func() {
		if err := wait(); err != nil {
			logging.Logger.Warn("Browser command exited with error", "error", err, "command", name)
		}
	}()

	return nil
}
