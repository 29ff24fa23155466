package student

import "time"

// CreateStudentRequest is the payload for registering a student
type CreateStudentRequest struct {
	FullName  string  `json:"full_name" validate:"required,min=1,max=255"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	PersonKey string  `json:"person_key" validate:"required,min=1,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// UpdateStudentRequest is the payload for editing a student
type UpdateStudentRequest struct {
	FullName  *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=255"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	PersonKey *string `json:"person_key,omitempty" validate:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// StudentResponse is the public view of a roster student
type StudentResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     *string   `json:"email,omitempty"`
	PersonKey string    `json:"person_key"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
