// Package activity holds the wire DTOs for the live-session relay. Field
// names are camelCase: the presentation window is an existing client of
// this exact JSON shape, unlike the rest of the API which is snake_case.
package activity

import (
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/pkg/detection"
)

// PostActivitiesRequest is the instructor-window payload pushing a batch
// of events into the session relay
type PostActivitiesRequest struct {
	SessionID   string                   `json:"sessionId"`
	LectureID   string                   `json:"lectureId"`
	Activities  []entities.ActivityEvent `json:"activities"`
	IsSimulated bool                     `json:"isSimulated,omitempty"`
}

// PostEventRequest wraps a single event for the per-lecture feed
type PostEventRequest struct {
	Event entities.ActivityEvent `json:"event"`
}

// PostEventResponse echoes the stored event with server-assigned defaults
type PostEventResponse struct {
	Success bool                   `json:"success"`
	Event   entities.ActivityEvent `json:"event"`
}

// EventsResponse is the per-lecture feed poll result
type EventsResponse struct {
	Events []entities.ActivityEvent `json:"events"`
}

// AckResponse is the minimal success acknowledgement
type AckResponse struct {
	Success bool `json:"success"`
}

// IngestFrameRequest carries one detection frame posted by the instructor
// window
type IngestFrameRequest struct {
	SessionID string          `json:"sessionId"`
	Frame     detection.Frame `json:"frame"`
}
