package presenter

import (
	"encoding/json"

	attendanceDTO "github.com/classpulse/backend/internal/adapter/dto/attendance"
	courseDTO "github.com/classpulse/backend/internal/adapter/dto/course"
	engagementDTO "github.com/classpulse/backend/internal/adapter/dto/engagement"
	lectureDTO "github.com/classpulse/backend/internal/adapter/dto/lecture"
	studentDTO "github.com/classpulse/backend/internal/adapter/dto/student"
	"github.com/classpulse/backend/internal/domain/entities"
)

// ToCourseResponse converts a Course entity to its DTO
func ToCourseResponse(c *entities.Course) *courseDTO.CourseResponse {
	if c == nil {
		return nil
	}
	return &courseDTO.CourseResponse{
		ID:          c.ID.String(),
		OwnerID:     c.OwnerID.String(),
		Name:        c.Name,
		Code:        c.Code,
		Description: c.Description,
		Semester:    c.Semester,
		IsArchived:  c.IsArchived,
		Settings:    json.RawMessage(c.Settings),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCourseResponses converts a slice of courses
func ToCourseResponses(courses []*entities.Course) []*courseDTO.CourseResponse {
	out := make([]*courseDTO.CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, ToCourseResponse(c))
	}
	return out
}

// ToStudentResponse converts a Student entity to its DTO
func ToStudentResponse(s *entities.Student) *studentDTO.StudentResponse {
	if s == nil {
		return nil
	}
	return &studentDTO.StudentResponse{
		ID:        s.ID.String(),
		FullName:  s.FullName,
		Email:     s.Email,
		PersonKey: s.PersonKey,
		AvatarURL: s.AvatarURL,
		CreatedAt: s.CreatedAt,
	}
}

// ToStudentResponses converts a slice of students
func ToStudentResponses(students []*entities.Student) []*studentDTO.StudentResponse {
	out := make([]*studentDTO.StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, ToStudentResponse(s))
	}
	return out
}

// ToLectureResponse converts a Lecture entity to its DTO
func ToLectureResponse(l *entities.Lecture) *lectureDTO.LectureResponse {
	if l == nil {
		return nil
	}
	return &lectureDTO.LectureResponse{
		ID:              l.ID.String(),
		CourseID:        l.CourseID.String(),
		Title:           l.Title,
		Status:          string(l.Status),
		IsActive:        l.IsActive,
		ScheduledAt:     l.ScheduledAt,
		StartedAt:       l.StartedAt,
		EndedAt:         l.EndedAt,
		DurationMinutes: l.DurationMinutes,
		Metadata:        json.RawMessage(l.Metadata),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// ToLectureResponses converts a slice of lectures
func ToLectureResponses(lectures []*entities.Lecture) []*lectureDTO.LectureResponse {
	out := make([]*lectureDTO.LectureResponse, 0, len(lectures))
	for _, l := range lectures {
		out = append(out, ToLectureResponse(l))
	}
	return out
}

// ToAttendanceResponse converts an AttendanceRecord entity to its DTO
func ToAttendanceResponse(r *entities.AttendanceRecord) *attendanceDTO.RecordResponse {
	if r == nil {
		return nil
	}
	resp := &attendanceDTO.RecordResponse{
		ID:        r.ID.String(),
		LectureID: r.LectureID.String(),
		StudentID: r.StudentID.String(),
		Status:    string(r.Status),
		JoinTime:  r.JoinTime,
		LeaveTime: r.LeaveTime,
		Notes:     r.Notes,
	}
	if r.Student != nil {
		resp.StudentName = r.Student.FullName
	}
	return resp
}

// ToAttendanceResponses converts a slice of attendance records
func ToAttendanceResponses(records []*entities.AttendanceRecord) []*attendanceDTO.RecordResponse {
	out := make([]*attendanceDTO.RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToAttendanceResponse(r))
	}
	return out
}

// ToEngagementResponse converts an EngagementRecord entity to its DTO
func ToEngagementResponse(r *entities.EngagementRecord) *engagementDTO.RecordResponse {
	if r == nil {
		return nil
	}
	resp := &engagementDTO.RecordResponse{
		ID:                r.ID.String(),
		LectureID:         r.LectureID.String(),
		StudentID:         r.StudentID.String(),
		FocusScore:        r.FocusScore,
		AttentionSeconds:  r.AttentionSeconds,
		DistractionCount:  r.DistractionCount,
		HandRaisedCount:   r.HandRaisedCount,
		EngagementLevel:   string(r.EngagementLevel),
		RecognitionStatus: r.RecognitionStatus,
		DetectionCount:    r.DetectionCount,
		AverageConfidence: r.AverageConfidence,
		UpdatedAt:         r.UpdatedAt,
	}
	if r.Student != nil {
		resp.StudentName = r.Student.FullName
	}
	return resp
}

// ToEngagementResponses converts a slice of engagement records
func ToEngagementResponses(records []*entities.EngagementRecord) []engagementDTO.RecordResponse {
	out := make([]engagementDTO.RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, *ToEngagementResponse(r))
	}
	return out
}
