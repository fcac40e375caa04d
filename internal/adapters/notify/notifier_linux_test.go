//go:build linux

package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/prmonitor/internal/domain"
)

type recordedCommand struct {
	args []string
	name string
}

func recordingRunner(failing map[string]bool, calls *[]recordedCommand) runner {
	return func(name string, args ...string) error {
		*calls = append(*calls, recordedCommand{args: args, name: name})
		if failing[name] {
			return errors.New(name + ": not found")
		}
		return nil
	}
}

func TestNotifier_NotifySendThenSound(t *testing.T) {
	var calls []recordedCommand
	n := &Notifier{run: recordingRunner(nil, &calls), sound: true}

	require.NoError(t, n.Notify("Pull request merged", "acme/widgets#42 Add gears", domain.EventStateChanged))

	require.Len(t, calls, 2)
	assert.Equal(t, "notify-send", calls[0].name)
	assert.Equal(t, []string{"--app-name=prmonitor", "Pull request merged", "acme/widgets#42 Add gears"}, calls[0].args)
	assert.Equal(t, "paplay", calls[1].name)
	assert.Equal(t, []string{"/usr/share/sounds/freedesktop/stereo/complete.oga"}, calls[1].args)
}

func TestNotifier_SoundFallsBackToAplay(t *testing.T) {
	var calls []recordedCommand
	n := &Notifier{run: recordingRunner(map[string]bool{"paplay": true}, &calls), sound: true}

	require.NoError(t, n.Notify("Pull request monitor error", "boom", domain.EventFailure))

	require.Len(t, calls, 3)
	assert.Equal(t, "aplay", calls[2].name)
	assert.Equal(t, []string{"/usr/share/sounds/freedesktop/stereo/dialog-warning.wav"}, calls[2].args)
}

func TestNotifier_SoundDisabled(t *testing.T) {
	var calls []recordedCommand
	n := &Notifier{run: recordingRunner(nil, &calls), sound: false}

	require.NoError(t, n.Notify("Pull request closed", "acme/widgets#1", domain.EventStateChanged))

	assert.Len(t, calls, 1)
}

func TestNotifier_MissingToolFallsBackToBell(t *testing.T) {
	var calls []recordedCommand
	n := &Notifier{run: recordingRunner(map[string]bool{"notify-send": true}, &calls), sound: true}

	assert.NoError(t, n.Notify("Pull request closed", "acme/widgets#1", domain.EventStateChanged))
	assert.Len(t, calls, 1, "no sound after the bell")
}
