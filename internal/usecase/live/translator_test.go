package live

import (
	"strings"
	"testing"

	"github.com/classpulse/backend/internal/domain/entities"
)

func noNames(personID string) (string, string) { return "", "" }

func status(id string, attention entities.AttentionState, hand bool) entities.PersonStatus {
	return entities.PersonStatus{PersonID: id, Attention: attention, HandRaised: hand}
}

func TestTranslateJoin(t *testing.T) {
	current := map[string]entities.PersonStatus{
		"p1": status("p1", entities.AttentionFocused, false),
	}

	events := Translate(current, map[string]entities.PersonStatus{}, noNames)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.ActionType != entities.ActionJoin || ev.Type != entities.EventTypeInfo {
		t.Fatalf("expected info join event, got %+v", ev)
	}
	if !strings.Contains(ev.Message, "p1") {
		t.Fatalf("unresolved person should fall back to person id in message, got %q", ev.Message)
	}
}

func TestTranslateFocusTransitions(t *testing.T) {
	prev := map[string]entities.PersonStatus{
		"p1": status("p1", entities.AttentionFocused, false),
	}
	cur := map[string]entities.PersonStatus{
		"p1": status("p1", entities.AttentionUnfocused, false),
	}

	events := Translate(cur, prev, noNames)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != entities.EventTypeWarning || ev.ActionType != entities.ActionFocusChange {
		t.Fatalf("expected warning focus_change, got %+v", ev)
	}
	if ev.Focused == nil || *ev.Focused {
		t.Fatal("expected focused=false on focus loss")
	}

	// and back again
	events = Translate(prev, cur, noNames)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev = events[0]
	if ev.Type != entities.EventTypeSuccess {
		t.Fatalf("expected success on focus regained, got %+v", ev)
	}
	if ev.Focused == nil || !*ev.Focused {
		t.Fatal("expected focused=true on focus regained")
	}
}

func TestTranslateHandTransitions(t *testing.T) {
	down := map[string]entities.PersonStatus{
		"p1": status("p1", entities.AttentionFocused, false),
	}
	up := map[string]entities.PersonStatus{
		"p1": status("p1", entities.AttentionFocused, true),
	}

	events := Translate(up, down, noNames)
	if len(events) != 1 || events[0].Type != entities.EventTypeWarning || events[0].ActionType != entities.ActionHandRaised {
		t.Fatalf("expected warning hand_raised on raise, got %+v", events)
	}

	events = Translate(down, up, noNames)
	if len(events) != 1 || events[0].Type != entities.EventTypeInfo {
		t.Fatalf("expected info on hand lowered, got %+v", events)
	}
}

func TestTranslateNoChange(t *testing.T) {
	state := map[string]entities.PersonStatus{
		"p1": status("p1", entities.AttentionFocused, true),
		"p2": status("p2", entities.AttentionUnfocused, false),
	}

	if events := Translate(state, state, noNames); len(events) != 0 {
		t.Fatalf("expected no events for an unchanged frame, got %d", len(events))
	}
}

func TestTranslateAbsenceEmitsNothing(t *testing.T) {
	prev := map[string]entities.PersonStatus{
		"p1": status("p1", entities.AttentionFocused, false),
	}

	// person dropped out of frame: no leave event, detection dropouts are
	// indistinguishable from someone looking away
	if events := Translate(map[string]entities.PersonStatus{}, prev, noNames); len(events) != 0 {
		t.Fatalf("expected no events on absence, got %+v", events)
	}
}

func TestTranslateBothFieldsChanged(t *testing.T) {
	prev := map[string]entities.PersonStatus{
		"p1": status("p1", entities.AttentionFocused, false),
	}
	cur := map[string]entities.PersonStatus{
		"p1": status("p1", entities.AttentionUnfocused, true),
	}

	events := Translate(cur, prev, noNames)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ActionType != entities.ActionFocusChange || events[1].ActionType != entities.ActionHandRaised {
		t.Fatalf("expected focus change before hand raise, got %+v", events)
	}
}

func TestTranslateDeterministicOrder(t *testing.T) {
	current := map[string]entities.PersonStatus{
		"p3": status("p3", entities.AttentionFocused, false),
		"p1": status("p1", entities.AttentionFocused, false),
		"p2": status("p2", entities.AttentionFocused, false),
	}

	for i := 0; i < 20; i++ {
		events := Translate(current, map[string]entities.PersonStatus{}, noNames)
		if len(events) != 3 {
			t.Fatalf("expected 3 join events, got %d", len(events))
		}
		for j, want := range []string{"p1", "p2", "p3"} {
			if !strings.Contains(events[j].Message, want) {
				t.Fatalf("run %d: expected event %d for %s, got %q", i, j, want, events[j].Message)
			}
		}
	}
}

func TestTranslateUsesResolvedNames(t *testing.T) {
	resolve := func(personID string) (string, string) {
		if personID == "p1" {
			return "11111111-1111-1111-1111-111111111111", "Ada Lovelace"
		}
		return "", ""
	}
	current := map[string]entities.PersonStatus{
		"p1": status("p1", entities.AttentionFocused, false),
	}

	events := Translate(current, map[string]entities.PersonStatus{}, resolve)
	if events[0].StudentName != "Ada Lovelace" {
		t.Fatalf("expected resolved name, got %q", events[0].StudentName)
	}
	if events[0].StudentID != "11111111-1111-1111-1111-111111111111" {
		t.Fatalf("expected resolved student id, got %q", events[0].StudentID)
	}
	if !strings.Contains(events[0].Message, "Ada Lovelace") {
		t.Fatalf("expected message to use the resolved name, got %q", events[0].Message)
	}
}
