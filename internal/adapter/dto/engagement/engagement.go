package engagement

import "time"

// ActionRequest applies one instructor scoring action. Action codes:
// 1 correct answer, 2 attempted answer, 3 penalty, 4 custom.
type ActionRequest struct {
	StudentID  string `json:"student_id" validate:"required,uuid"`
	ActionType int    `json:"action_type" validate:"required,min=1,max=4"`
	Points     int    `json:"points,omitempty"`
}

// RecordResponse is the public view of an engagement record
type RecordResponse struct {
	ID                string    `json:"id"`
	LectureID         string    `json:"lecture_id"`
	StudentID         string    `json:"student_id"`
	StudentName       string    `json:"student_name,omitempty"`
	FocusScore        int       `json:"focus_score"`
	AttentionSeconds  int       `json:"attention_seconds"`
	DistractionCount  int       `json:"distraction_count"`
	HandRaisedCount   int       `json:"hand_raised_count"`
	EngagementLevel   string    `json:"engagement_level"`
	RecognitionStatus string    `json:"recognition_status"`
	DetectionCount    int       `json:"detection_count"`
	AverageConfidence float64   `json:"average_confidence"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LeaderboardResponse is the ranked leaderboard for a lecture
type LeaderboardResponse struct {
	LectureID string           `json:"lecture_id"`
	Entries   []RecordResponse `json:"entries"`
}
