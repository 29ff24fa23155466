package course

import (
	"encoding/json"
	"time"
)

// CreateCourseRequest is the payload for creating a course
type CreateCourseRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Code        string          `json:"code" validate:"required,min=1,max=50"`
	Description *string         `json:"description,omitempty"`
	Semester    *string         `json:"semester,omitempty" validate:"omitempty,max=50"`
	Settings    json.RawMessage `json:"settings,omitempty"`
}

// UpdateCourseRequest is the payload for editing a course
type UpdateCourseRequest struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Code        *string         `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Description *string         `json:"description,omitempty"`
	Semester    *string         `json:"semester,omitempty" validate:"omitempty,max=50"`
	IsArchived  *bool           `json:"is_archived,omitempty"`
	Settings    json.RawMessage `json:"settings,omitempty"`
}

// ListCoursesRequest holds the list query parameters
type ListCoursesRequest struct {
	Search    string `query:"search"`
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
}

// EnrollRequest names the student to enroll
type EnrollRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
}

// CourseResponse is the public view of a course
type CourseResponse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description *string         `json:"description,omitempty"`
	Semester    *string         `json:"semester,omitempty"`
	IsArchived  bool            `json:"is_archived"`
	Settings    json.RawMessage `json:"settings,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
