package detection

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// mockClient synthesizes detection frames so the live dashboard works
// without the real detector running.
type mockClient struct {
	mu      sync.Mutex
	rng     *rand.Rand
	persons []Person
}

func newMockClient() *mockClient {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	m := &mockClient{rng: rng}
	for i := 0; i < 6; i++ {
		m.persons = append(m.persons, Person{
			PersonID:          fmt.Sprintf("mock-person-%02d", i+1),
			Name:              fmt.Sprintf("Mock Student %d", i+1),
			RecognitionStatus: RecognitionKnown,
			Attention:         "focused",
			Confidence:        0.9,
			Box:               BoundingBox{X: 40 + i*120, Y: 80, Width: 96, Height: 96},
		})
	}
	return m
}

// Capture returns a synthetic frame. Each call randomly perturbs attention
// and hand-raise state so consecutive frames produce realistic deltas.
func (m *mockClient) Capture(ctx context.Context) (*Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	persons := make([]Person, 0, len(m.persons))
	for i := range m.persons {
		p := &m.persons[i]
		if m.rng.Float64() < 0.15 {
			if p.Attention == "focused" {
				p.Attention = "distracted"
			} else {
				p.Attention = "focused"
			}
		}
		if m.rng.Float64() < 0.08 {
			p.HandRaised = !p.HandRaised
			p.HandRaisedScore = 0.85
		}
		p.Confidence = 0.8 + m.rng.Float64()*0.2
		// occasionally a person steps out of frame
		if m.rng.Float64() < 0.05 {
			continue
		}
		persons = append(persons, *p)
	}

	return &Frame{CapturedAt: time.Now(), Persons: persons}, nil
}

// Healthy always succeeds for the mock
func (m *mockClient) Healthy(ctx context.Context) error {
	return nil
}
