package handler

import (
	stdErrors "errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/classpulse/backend/errors"
	engagementDTO "github.com/classpulse/backend/internal/adapter/dto/engagement"
	"github.com/classpulse/backend/internal/adapter/presenter"
	"github.com/classpulse/backend/internal/usecase/engagement"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

// Engagement handles engagement scoring HTTP requests
type Engagement struct {
	engagementService *engagement.Service
	logger            *zap.Logger
}

// NewEngagement creates a new engagement handler
func NewEngagement(engagementService *engagement.Service, logger *zap.Logger) *Engagement {
	return &Engagement{
		engagementService: engagementService,
		logger:            logger,
	}
}

// RecordAction applies one instructor scoring action
// POST /v1/lectures/:id/engagement/actions
func (h *Engagement) RecordAction(c echo.Context) error {
	ctx := c.Request().Context()

	lectureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req engagementDTO.ActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid student_id"))
	}

	record, err := h.engagementService.RecordAction(ctx, lectureID, studentID,
		engagement.ActionType(req.ActionType), req.Points)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrUnknownActionType) {
			return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
		}
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToEngagementResponse(record))
}

// List returns all engagement records for a lecture
// GET /v1/lectures/:id/engagement
func (h *Engagement) List(c echo.Context) error {
	ctx := c.Request().Context()

	lectureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	records, err := h.engagementService.ListByLecture(ctx, lectureID)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	out := make([]engagementDTO.RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, *presenter.ToEngagementResponse(r))
	}
	return HandleSuccess(h.logger, c, out)
}

// Leaderboard returns the ranked leaderboard for a lecture
// GET /v1/lectures/:id/engagement/leaderboard
func (h *Engagement) Leaderboard(c echo.Context) error {
	ctx := c.Request().Context()

	lectureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid limit"))
		}
		limit = parsed
	}

	records, err := h.engagementService.Leaderboard(ctx, lectureID, limit)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, &engagementDTO.LeaderboardResponse{
		LectureID: lectureID.String(),
		Entries:   presenter.ToEngagementResponses(records),
	})
}
