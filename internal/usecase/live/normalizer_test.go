package live

import (
	"testing"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/pkg/detection"
)

func TestNormalizeKeepsOnlyKnownPersons(t *testing.T) {
	frame := &detection.Frame{
		Persons: []detection.Person{
			{PersonID: "p1", RecognitionStatus: detection.RecognitionKnown, Attention: "focused"},
			{PersonID: "p2", RecognitionStatus: detection.RecognitionUnknown, Attention: "focused"},
			{PersonID: "p3", RecognitionStatus: detection.RecognitionKnown, Attention: "distracted", HandRaised: true},
		},
	}

	known, unknown := Normalize(frame)
	if len(known) != 2 {
		t.Fatalf("expected 2 known persons, got %d", len(known))
	}
	if len(unknown) != 1 || unknown[0].PersonID != "p2" {
		t.Fatalf("expected p2 in the unknown set, got %+v", unknown)
	}
	if known["p3"].Attention != entities.AttentionUnfocused || !known["p3"].HandRaised {
		t.Fatalf("p3 status mangled: %+v", known["p3"])
	}
}

func TestNormalizeAttentionLabels(t *testing.T) {
	cases := map[string]entities.AttentionState{
		"focused":    entities.AttentionFocused,
		"FOCUSED":    entities.AttentionFocused,
		" Focused ":  entities.AttentionFocused,
		"distracted": entities.AttentionUnfocused,
		"away":       entities.AttentionUnfocused,
		"":           entities.AttentionUnfocused,
	}
	for label, want := range cases {
		frame := &detection.Frame{Persons: []detection.Person{
			{PersonID: "p1", RecognitionStatus: detection.RecognitionKnown, Attention: label},
		}}
		known, _ := Normalize(frame)
		if known["p1"].Attention != want {
			t.Fatalf("label %q: expected %s, got %s", label, want, known["p1"].Attention)
		}
	}
}

func TestNormalizeEmptyAndNilFrames(t *testing.T) {
	known, unknown := Normalize(nil)
	if known == nil || len(known) != 0 || unknown != nil {
		t.Fatalf("nil frame should yield empty map, got %v / %v", known, unknown)
	}

	known, _ = Normalize(&detection.Frame{})
	if len(known) != 0 {
		t.Fatalf("empty frame should yield empty map, got %v", known)
	}
}

func TestNormalizeSkipsPersonsWithoutID(t *testing.T) {
	frame := &detection.Frame{Persons: []detection.Person{
		{PersonID: "", RecognitionStatus: detection.RecognitionKnown, Attention: "focused"},
	}}
	known, _ := Normalize(frame)
	if len(known) != 0 {
		t.Fatalf("persons without an id must be dropped, got %v", known)
	}
}
