package lecture

import (
	"encoding/json"
	"time"
)

// CreateLectureRequest is the payload for scheduling a lecture
type CreateLectureRequest struct {
	CourseID    string          `json:"course_id" validate:"required,uuid"`
	Title       string          `json:"title" validate:"required,min=1,max=255"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

// UpdateLectureRequest is the payload for editing a lecture
type UpdateLectureRequest struct {
	Title       *string         `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

// ListLecturesRequest holds the list query parameters
type ListLecturesRequest struct {
	CourseID  string `query:"course_id"`
	Status    string `query:"status"`
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
}

// LectureResponse is the public view of a lecture
type LectureResponse struct {
	ID              string          `json:"id"`
	CourseID        string          `json:"course_id"`
	Title           string          `json:"title"`
	Status          string          `json:"status"`
	IsActive        bool            `json:"is_active"`
	ScheduledAt     *time.Time      `json:"scheduled_at,omitempty"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	EndedAt         *time.Time      `json:"ended_at,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
