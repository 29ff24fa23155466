package live

import (
	"fmt"
	"testing"
	"time"

	"github.com/classpulse/backend/internal/domain/entities"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

func testRelay(clock *time.Time) *Relay {
	return NewRelay(RelayOptions{
		Cap:       50,
		PollLimit: 100,
		TTL:       30 * time.Minute,
		Now:       func() time.Time { return *clock },
	}, nil)
}

func infoEvent(msg string) entities.ActivityEvent {
	return entities.ActivityEvent{Message: msg, Type: entities.EventTypeInfo}
}

func TestRelayReadYourWrites(t *testing.T) {
	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	r := testRelay(&clock)

	stored, err := r.Append("sess-1", "lec-1", []entities.ActivityEvent{infoEvent("hello")})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if stored[0].ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if !stored[0].Timestamp.Equal(clock) {
		t.Fatalf("expected timestamp %v, got %v", clock, stored[0].Timestamp)
	}

	got := r.Poll("sess-1", nil)
	if len(got) != 1 || got[0].Message != "hello" {
		t.Fatalf("expected the appended event back, got %+v", got)
	}
}

func TestRelayNewestFirst(t *testing.T) {
	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	r := testRelay(&clock)

	for i := 0; i < 3; i++ {
		clock = clock.Add(time.Second)
		if _, err := r.Append("sess-1", "lec-1", []entities.ActivityEvent{infoEvent(fmt.Sprintf("event %d", i))}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got := r.Poll("sess-1", nil)
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Message != "event 2" || got[2].Message != "event 0" {
		t.Fatalf("expected newest-first order, got %q ... %q", got[0].Message, got[2].Message)
	}
}

func TestRelayCapEvictsOldest(t *testing.T) {
	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	r := testRelay(&clock)

	for i := 0; i < 51; i++ {
		clock = clock.Add(time.Second)
		if _, err := r.Append("sess-1", "lec-1", []entities.ActivityEvent{infoEvent(fmt.Sprintf("event %d", i))}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got := r.Poll("sess-1", nil)
	if len(got) != 50 {
		t.Fatalf("expected 50 events after eviction, got %d", len(got))
	}
	if got[0].Message != "event 50" {
		t.Fatalf("expected newest event first, got %q", got[0].Message)
	}
	for _, ev := range got {
		if ev.Message == "event 0" {
			t.Fatal("oldest event should have been evicted")
		}
	}
}

func TestRelayPollSinceFilter(t *testing.T) {
	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	r := testRelay(&clock)

	if _, err := r.Append("sess-1", "lec-1", []entities.ActivityEvent{infoEvent("old")}); err != nil {
		t.Fatalf("append: %v", err)
	}
	cutoff := clock
	clock = clock.Add(time.Minute)
	if _, err := r.Append("sess-1", "lec-1", []entities.ActivityEvent{infoEvent("new")}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got := r.Poll("sess-1", &cutoff)
	if len(got) != 1 || got[0].Message != "new" {
		t.Fatalf("expected only the newer event, got %+v", got)
	}
}

func TestRelayPollUnknownSession(t *testing.T) {
	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	r := testRelay(&clock)

	got := r.Poll("never-seen", nil)
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no events, got %d", len(got))
	}
}

func TestRelayPollLimit(t *testing.T) {
	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	r := NewRelay(RelayOptions{
		Cap:       1000,
		PollLimit: 100,
		TTL:       30 * time.Minute,
		Now:       func() time.Time { return clock },
	}, nil)

	events := make([]entities.ActivityEvent, 150)
	for i := range events {
		events[i] = infoEvent(fmt.Sprintf("event %d", i))
	}
	if _, err := r.Append("sess-1", "lec-1", events); err != nil {
		t.Fatalf("append: %v", err)
	}

	got := r.Poll("sess-1", nil)
	if len(got) != 100 {
		t.Fatalf("expected poll capped at 100, got %d", len(got))
	}
}

func TestRelayAppendValidation(t *testing.T) {
	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	r := testRelay(&clock)

	cases := []struct {
		name  string
		event entities.ActivityEvent
		want  error
	}{
		{"missing message", entities.ActivityEvent{Type: entities.EventTypeInfo}, usecaseErrors.ErrEventMissingBody},
		{"missing type", entities.ActivityEvent{Message: "hi"}, usecaseErrors.ErrEventMissingType},
		{"bad type", entities.ActivityEvent{Message: "hi", Type: "shouting"}, usecaseErrors.ErrEventInvalidType},
	}
	for _, tc := range cases {
		if _, err := r.Append("sess-1", "lec-1", []entities.ActivityEvent{tc.event}); err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	if _, err := r.Append("", "lec-1", []entities.ActivityEvent{infoEvent("hi")}); err != usecaseErrors.ErrMissingSessionID {
		t.Fatalf("expected missing session id error, got %v", err)
	}

	// a rejected batch must not be partially stored
	if got := r.Poll("sess-1", nil); len(got) != 0 {
		t.Fatalf("expected no events stored after validation failures, got %d", len(got))
	}
}

func TestRelaySweepRemovesOnlyIdleSessions(t *testing.T) {
	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	r := testRelay(&clock)

	if _, err := r.Append("idle", "lec-1", []entities.ActivityEvent{infoEvent("a")}); err != nil {
		t.Fatalf("append: %v", err)
	}

	clock = clock.Add(29 * time.Minute)
	if _, err := r.Append("fresh", "lec-1", []entities.ActivityEvent{infoEvent("b")}); err != nil {
		t.Fatalf("append: %v", err)
	}

	clock = clock.Add(2 * time.Minute) // idle is now 31m old, fresh 2m
	removed := r.Sweep()
	if removed != 1 {
		t.Fatalf("expected 1 session swept, got %d", removed)
	}
	if got := r.Poll("idle", nil); len(got) != 0 {
		t.Fatal("idle session should be gone")
	}
	if got := r.Poll("fresh", nil); len(got) != 1 {
		t.Fatal("fresh session should survive the sweep")
	}
}
