package handler

import (
	stdErrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/classpulse/backend/errors"
	activityDTO "github.com/classpulse/backend/internal/adapter/dto/activity"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
	"github.com/classpulse/backend/internal/usecase/live"
)

// Live handles the session relay and detection frame endpoints. The
// /v1/activity pair speaks the presentation window's existing JSON shapes,
// so those two endpoints bypass the standard response envelope.
type Live struct {
	liveService *live.Service
	logger      *zap.Logger
}

// NewLive creates a new live handler
func NewLive(liveService *live.Service, logger *zap.Logger) *Live {
	return &Live{
		liveService: liveService,
		logger:      logger,
	}
}

// PostActivities pushes a batch of events into the session relay.
// Unauthenticated: the presentation window carries no session.
// POST /v1/activity
func (h *Live) PostActivities(c echo.Context) error {
	var req activityDTO.PostActivitiesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "sessionId is required"})
	}
	if req.LectureID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "lectureId is required"})
	}

	if err := h.liveService.PushActivities(req.SessionID, req.LectureID, req.Activities, req.IsSimulated); err != nil {
		h.logger.Warn("activity push rejected",
			zap.String("session_id", req.SessionID), zap.Error(err))
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, activityDTO.AckResponse{Success: true})
}

// GetActivities polls the session relay, newest-first
// GET /v1/activity?sessionId=&lectureId=
func (h *Live) GetActivities(c echo.Context) error {
	sessionID := c.QueryParam("sessionId")
	lectureID := c.QueryParam("lectureId")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "sessionId is required"})
	}
	if lectureID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "lectureId is required"})
	}

	events := h.liveService.PollActivities(sessionID)
	return c.JSON(http.StatusOK, events)
}

// EndSession drops a relay session's diffing state
// DELETE /v1/activity?sessionId=
func (h *Live) EndSession(c echo.Context) error {
	sessionID := c.QueryParam("sessionId")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "sessionId is required"})
	}

	h.liveService.EndSession(sessionID)
	return c.JSON(http.StatusOK, activityDTO.AckResponse{Success: true})
}

// PostLectureEvent appends one event to the per-lecture feed
// POST /v1/lectures/:id/events
func (h *Live) PostLectureEvent(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req activityDTO.PostEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	stored, err := h.liveService.PushLectureEvent(id.String(), req.Event)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, activityDTO.PostEventResponse{Success: true, Event: stored})
}

// GetLectureEvents polls the per-lecture feed, newest-first
// GET /v1/lectures/:id/events?since=ISO8601
func (h *Live) GetLectureEvents(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var since *time.Time
	if raw := c.QueryParam("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "since must be an RFC3339 timestamp"})
		}
		since = &parsed
	}

	events := h.liveService.PollLectureEvents(id.String(), since)
	return c.JSON(http.StatusOK, activityDTO.EventsResponse{Events: events})
}

// IngestFrame runs one posted detection frame through the live pipeline
// POST /v1/lectures/:id/frames
func (h *Live) IngestFrame(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req activityDTO.IngestFrameRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}

	events, err := h.liveService.IngestFrame(ctx, req.SessionID, id, &req.Frame)
	if err != nil {
		return HandleError(h.logger, c, h.mapFrameError(id.String(), err))
	}

	return HandleSuccess(h.logger, c, activityDTO.EventsResponse{Events: events})
}

// CaptureFrame pulls a frame from the detection upstream and ingests it
// POST /v1/lectures/:id/capture?sessionId=
func (h *Live) CaptureFrame(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	sessionID := c.QueryParam("sessionId")
	if sessionID == "" {
		return HandleError(h.logger, c, errors.ErrRelayInvalidEvent("sessionId is required"))
	}

	events, err := h.liveService.CaptureFrame(ctx, sessionID, id)
	if err != nil {
		return HandleError(h.logger, c, h.mapFrameError(id.String(), err))
	}

	return HandleSuccess(h.logger, c, activityDTO.EventsResponse{Events: events})
}

// mapFrameError maps pipeline errors onto the AppError taxonomy
func (h *Live) mapFrameError(lectureID string, err error) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrLectureEnded):
		return errors.ErrLectureInvalidState(lectureID, "ended", "active or paused")
	case stdErrors.Is(err, usecaseErrors.ErrLectureNotActive):
		return errors.ErrLectureInvalidState(lectureID, "scheduled", "active or paused")
	}
	return mapDomainError(err)
}
