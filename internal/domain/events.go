package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// EventKind distinguishes the notifications published by the monitor
type EventKind string

const (
	EventFailure        EventKind = "failure"
	EventNeedsAttention EventKind = "needs-attention"
	EventStateChanged   EventKind = "state-changed"
)

// Names used at the boundary toward the presentation layer
const (
	WireEventError  = "error-event"
	WirePRAttention = "pr-attention"
	WirePRClosed    = "pr-closed"
)

// Event is a notification about a tracked pull request or a failed poll
type Event struct {
	At         time.Time
	CycleID    string
	Generation uint64 // 0 for events not tied to a scheduler run
	ID         string
	Identity   PRIdentity
	Kind       EventKind
	Merged     bool
	Message    string
	Number     int
	Title      string
}

// NewStateChangedEvent builds the event fired when an entry closes
func NewStateChangedEvent(pr TrackedPullRequest) Event {
	return Event{
		At:       time.Now().UTC(),
		ID:       uuid.NewString(),
		Identity: pr.Identity(),
		Kind:     EventStateChanged,
		Merged:   pr.Merged,
		Number:   pr.Number,
		Title:    pr.Title,
	}
}

// NewAttentionEvent builds the event fired when an open entry enters a
// mergeable state that needs the user
func NewAttentionEvent(pr TrackedPullRequest) Event {
	return Event{
		At:       time.Now().UTC(),
		ID:       uuid.NewString(),
		Identity: pr.Identity(),
		Kind:     EventNeedsAttention,
		Message:  fmt.Sprintf("%s %s", pr.Identity(), pr.Mergeable.Attention()),
		Number:   pr.Number,
		Title:    pr.Title,
	}
}

// NewFailureEvent builds an error event; id may be zero for cycle-wide failures
func NewFailureEvent(id PRIdentity, message string) Event {
	return Event{
		At:       time.Now().UTC(),
		ID:       uuid.NewString(),
		Identity: id,
		Kind:     EventFailure,
		Message:  message,
		Number:   id.Number,
	}
}

// WireEvent is the payload sent to the presentation layer
type WireEvent struct {
	Event   string `json:"event"`
	Payload string `json:"payload"`
}

// Wire converts the event to its boundary form: pr-closed and pr-attention
// carry the string-encoded number, error-event carries the message
func (e Event) Wire() WireEvent {
	switch e.Kind {
	case EventStateChanged:
		return WireEvent{Event: WirePRClosed, Payload: strconv.Itoa(e.Number)}
	case EventNeedsAttention:
		return WireEvent{Event: WirePRAttention, Payload: strconv.Itoa(e.Number)}
	default:
		return WireEvent{Event: WireEventError, Payload: e.Message}
	}
}
