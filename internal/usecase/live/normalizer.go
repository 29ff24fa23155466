package live

import (
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/pkg/detection"
)

// Normalize converts one raw detection frame into the per-person status map
// used for diffing. Only persons with a known recognition status participate;
// unrecognized faces are returned separately so the caller can surface them
// without feeding them into the delta pipeline. A nil or empty frame yields
// an empty map.
func Normalize(frame *detection.Frame) (map[string]entities.PersonStatus, []detection.Person) {
	known := make(map[string]entities.PersonStatus)
	if frame == nil {
		return known, nil
	}

	var unknown []detection.Person
	for _, p := range frame.Persons {
		if p.RecognitionStatus != detection.RecognitionKnown {
			unknown = append(unknown, p)
			continue
		}
		if p.PersonID == "" {
			continue
		}
		known[p.PersonID] = entities.PersonStatus{
			PersonID:   p.PersonID,
			Attention:  entities.ParseAttention(p.Attention),
			HandRaised: p.HandRaised,
		}
	}
	return known, unknown
}
