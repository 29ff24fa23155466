package detection

import "time"

// Recognition status values reported by the detector
const (
	RecognitionKnown   = "known"
	RecognitionUnknown = "unknown"
)

// BoundingBox is the pixel-space location of a detected face
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Person is one detected person in a frame
type Person struct {
	PersonID          string      `json:"person_id"`
	Name              string      `json:"name,omitempty"`
	RecognitionStatus string      `json:"recognition_status"`
	Attention         string      `json:"attention"`
	HandRaised        bool        `json:"hand_raised"`
	HandRaisedScore   float64     `json:"hand_raised_score,omitempty"`
	Confidence        float64     `json:"confidence"`
	Box               BoundingBox `json:"box"`
}

// Frame is one detection snapshot of the classroom camera feed
type Frame struct {
	CapturedAt time.Time `json:"captured_at"`
	Persons    []Person  `json:"persons"`
}
