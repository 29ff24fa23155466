package attendance

import "time"

// RecordRequest upserts one attendance record
type RecordRequest struct {
	StudentID string     `json:"student_id" validate:"required,uuid"`
	Status    string     `json:"status" validate:"required,oneof=PRESENT LATE ABSENT"`
	JoinTime  *time.Time `json:"join_time,omitempty"`
	LeaveTime *time.Time `json:"leave_time,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// BulkRecordRequest upserts a batch of records for one lecture
type BulkRecordRequest struct {
	Records []RecordRequest `json:"records" validate:"required,min=1,dive"`
}

// RecordResponse is the public view of an attendance record
type RecordResponse struct {
	ID          string     `json:"id"`
	LectureID   string     `json:"lecture_id"`
	StudentID   string     `json:"student_id"`
	StudentName string     `json:"student_name,omitempty"`
	Status      string     `json:"status"`
	JoinTime    *time.Time `json:"join_time,omitempty"`
	LeaveTime   *time.Time `json:"leave_time,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// SummaryResponse carries the per-status counts for a lecture
type SummaryResponse struct {
	LectureID string `json:"lecture_id"`
	Present   int64  `json:"present"`
	Late      int64  `json:"late"`
	Absent    int64  `json:"absent"`
}
