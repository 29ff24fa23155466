package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/usecase/live"
	"github.com/classpulse/backend/pkg/config"
)

func newLiveHandler(t *testing.T) *Live {
	t.Helper()
	cfg := &config.LiveConfig{
		RelayCap:         50,
		LectureCap:       1000,
		PollLimit:        100,
		SessionTTL:       30 * time.Minute,
		SweepInterval:    time.Minute,
		FrameTickSeconds: 5,
	}
	svc := live.NewService(cfg, nil, nil, nil, nil, nil, zap.NewNop())
	return NewLive(svc, zap.NewNop())
}

func doRequest(h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	// NewContext does not parse the target path into params
	for name, value := range params {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
	_ = h(c)
	return rec
}

func TestPostActivitiesRequiresSessionAndLecture(t *testing.T) {
	h := newLiveHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing sessionId", `{"lectureId":"lec-1","activities":[]}`},
		{"missing lectureId", `{"sessionId":"sess-1","activities":[]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(h.PostActivities, http.MethodPost, "/v1/activity", tc.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestPostActivitiesAcknowledges(t *testing.T) {
	h := newLiveHandler(t)

	body := `{"sessionId":"sess-1","lectureId":"lec-1","activities":[{"message":"Ana raised their hand","type":"warning","studentId":"stu-1","actionType":"hand_raised"}]}`
	rec := doRequest(h.PostActivities, http.MethodPost, "/v1/activity", body, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"success":true}` {
		t.Fatalf("body = %s, want {\"success\":true}", got)
	}
}

func TestPostActivitiesSimulatedBatchIsRelayed(t *testing.T) {
	h := newLiveHandler(t)

	body := `{"sessionId":"sess-sim","lectureId":"lec-1","isSimulated":true,"activities":[{"message":"Ana joined the session","type":"info"}]}`
	rec := doRequest(h.PostActivities, http.MethodPost, "/v1/activity", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	// Simulated batches land in the relay like real ones
	rec = doRequest(h.GetActivities, http.MethodGet, "/v1/activity?sessionId=sess-sim&lectureId=lec-1", "", nil)
	var events []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("body is not a JSON array: %v", err)
	}
	if len(events) != 1 || events[0]["message"] != "Ana joined the session" {
		t.Fatalf("events = %v, want the simulated event relayed", events)
	}
}

func TestGetActivitiesWireShape(t *testing.T) {
	h := newLiveHandler(t)

	push := `{"sessionId":"sess-1","lectureId":"lec-1","activities":[` +
		`{"message":"first","type":"info"},` +
		`{"message":"Ana is focused again","type":"success","studentId":"stu-1","actionType":"focus_change","focused":true}]}`
	if rec := doRequest(h.PostActivities, http.MethodPost, "/v1/activity", push, nil); rec.Code != http.StatusOK {
		t.Fatalf("push status = %d", rec.Code)
	}

	rec := doRequest(h.GetActivities, http.MethodGet, "/v1/activity?sessionId=sess-1&lectureId=lec-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// Top level must be a bare array, newest-first, with camelCase fields
	var events []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("body is not a JSON array: %v (body %s)", err, rec.Body.String())
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	newest := events[0]
	if newest["studentId"] != "stu-1" || newest["actionType"] != "focus_change" {
		t.Fatalf("camelCase fields missing on newest event: %v", newest)
	}
	if newest["focused"] != true {
		t.Fatalf("focused = %v, want true", newest["focused"])
	}
	if _, ok := newest["id"]; !ok {
		t.Fatal("server-assigned id missing")
	}
}

func TestGetActivitiesRequiresParams(t *testing.T) {
	h := newLiveHandler(t)

	rec := doRequest(h.GetActivities, http.MethodGet, "/v1/activity?lectureId=lec-1", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing sessionId: status = %d, want 400", rec.Code)
	}
	rec = doRequest(h.GetActivities, http.MethodGet, "/v1/activity?sessionId=sess-1", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing lectureId: status = %d, want 400", rec.Code)
	}
}

func TestGetActivitiesUnknownSessionReturnsEmptyArray(t *testing.T) {
	h := newLiveHandler(t)

	rec := doRequest(h.GetActivities, http.MethodGet, "/v1/activity?sessionId=nobody&lectureId=lec-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %s, want []", got)
	}
}

func TestPostLectureEventAssignsDefaults(t *testing.T) {
	h := newLiveHandler(t)
	lectureID := uuid.New().String()

	body := `{"event":{"message":"Lecture started","type":"info"}}`
	rec := doRequest(h.PostLectureEvent, http.MethodPost, "/v1/lectures/"+lectureID+"/events", body,
		map[string]string{"id": lectureID})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool                   `json:"success"`
		Event   entities.ActivityEvent `json:"event"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success {
		t.Fatal("success = false, want true")
	}
	if resp.Event.ID == "" {
		t.Fatal("server did not assign an event id")
	}
	if resp.Event.Timestamp.IsZero() {
		t.Fatal("server did not assign a timestamp")
	}
}

func TestPostLectureEventValidation(t *testing.T) {
	h := newLiveHandler(t)
	lectureID := uuid.New().String()

	cases := []struct {
		name string
		body string
	}{
		{"missing message", `{"event":{"type":"info"}}`},
		{"missing type", `{"event":{"message":"hello"}}`},
		{"bad type", `{"event":{"message":"hello","type":"shout"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(h.PostLectureEvent, http.MethodPost, "/v1/lectures/"+lectureID+"/events", tc.body,
				map[string]string{"id": lectureID})
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestGetLectureEventsSinceFilter(t *testing.T) {
	h := newLiveHandler(t)
	lectureID := uuid.New().String()

	post := func(message string) {
		body := `{"event":{"message":"` + message + `","type":"info"}}`
		rec := doRequest(h.PostLectureEvent, http.MethodPost, "/v1/lectures/"+lectureID+"/events", body,
			map[string]string{"id": lectureID})
		if rec.Code != http.StatusOK {
			t.Fatalf("post %q: status = %d", message, rec.Code)
		}
	}
	post("first")
	post("second")

	rec := doRequest(h.GetLectureEvents, http.MethodGet, "/v1/lectures/"+lectureID+"/events", "",
		map[string]string{"id": lectureID})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Events []entities.ActivityEvent `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(resp.Events))
	}
	if resp.Events[0].Message != "second" {
		t.Fatalf("newest-first violated: first event is %q", resp.Events[0].Message)
	}

	// since in the future filters everything out
	future := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	rec = doRequest(h.GetLectureEvents, http.MethodGet, "/v1/lectures/"+lectureID+"/events?since="+future, "",
		map[string]string{"id": lectureID})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp.Events = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Events) != 0 {
		t.Fatalf("len(events) = %d, want 0 for future since", len(resp.Events))
	}

	rec = doRequest(h.GetLectureEvents, http.MethodGet, "/v1/lectures/"+lectureID+"/events?since=yesterday", "",
		map[string]string{"id": lectureID})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad since: status = %d, want 400", rec.Code)
	}
}
