package entities

import (
	"strings"
	"time"
)

// EventType is the severity of an activity event as shown on the presentation screen
type EventType string

const (
	EventTypeInfo    EventType = "info"
	EventTypeWarning EventType = "warning"
	EventTypeError   EventType = "error"
	EventTypeSuccess EventType = "success"
)

// IsValid checks if the event type is one of the supported severities
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeInfo, EventTypeWarning, EventTypeError, EventTypeSuccess:
		return true
	default:
		return false
	}
}

// ActionType classifies the classroom occurrence behind an activity event
type ActionType string

const (
	ActionHandRaised  ActionType = "hand_raised"
	ActionFocusChange ActionType = "focus_change"
	ActionJoin        ActionType = "join"
	ActionLeave       ActionType = "leave"
)

// ActivityEvent is one observable classroom occurrence relayed between the
// instructor window and the presentation window.
//
// Field names are camelCase on the wire: the presentation window is an
// existing client of this exact JSON shape.
type ActivityEvent struct {
	ID          string     `json:"id"`
	Message     string     `json:"message"`
	Timestamp   time.Time  `json:"timestamp"`
	Type        EventType  `json:"type"`
	StudentID   string     `json:"studentId,omitempty"`
	StudentName string     `json:"studentName,omitempty"`
	ActionType  ActionType `json:"actionType,omitempty"`
	Focused     *bool      `json:"focused,omitempty"`
}

// AttentionState is the per-person attention label reported by the detector
type AttentionState string

const (
	AttentionFocused   AttentionState = "focused"
	AttentionUnfocused AttentionState = "unfocused"
)

// ParseAttention normalizes a raw detector attention label. Labels are
// case-insensitive; anything other than "focused" counts as unfocused.
func ParseAttention(label string) AttentionState {
	if strings.EqualFold(strings.TrimSpace(label), string(AttentionFocused)) {
		return AttentionFocused
	}
	return AttentionUnfocused
}

// PersonStatus is the last-known per-detected-person state used purely for
// diffing between consecutive detection frames. Never persisted.
type PersonStatus struct {
	PersonID   string
	Attention  AttentionState
	HandRaised bool
}
