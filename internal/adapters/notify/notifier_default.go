//go:build !darwin && !linux && !windows

package notify

import (
	"errors"

	"github.com/renato0307/prmonitor/internal/domain"
)

// showNotification is not supported on this platform
func showNotification(run runner, title, body string) error {
	return errors.New("desktop notifications not supported on this platform")
}

// playForEvent falls back to terminal bell on unsupported platforms
func playForEvent(run runner, kind domain.EventKind) error {
	return terminalBell()
}
