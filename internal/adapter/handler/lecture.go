package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/classpulse/backend/errors"
	"github.com/classpulse/backend/internal/adapter/dto/common"
	lectureDTO "github.com/classpulse/backend/internal/adapter/dto/lecture"
	"github.com/classpulse/backend/internal/adapter/presenter"
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
	"github.com/classpulse/backend/internal/usecase/lecture"
)

// Lecture handles lecture CRUD and lifecycle HTTP requests
type Lecture struct {
	lectureService *lecture.Service
	logger         *zap.Logger
}

// NewLecture creates a new lecture handler
func NewLecture(lectureService *lecture.Service, logger *zap.Logger) *Lecture {
	return &Lecture{
		lectureService: lectureService,
		logger:         logger,
	}
}

// Create schedules a lecture
// POST /v1/lectures
func (h *Lecture) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req lectureDTO.CreateLectureRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid course_id"))
	}

	created, err := h.lectureService.Create(ctx, lecture.CreateInput{
		CourseID:    courseID,
		Title:       req.Title,
		ScheduledAt: req.ScheduledAt,
		Metadata:    datatypes.JSON(req.Metadata),
	})
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToLectureResponse(created))
}

// Get retrieves one lecture
// GET /v1/lectures/:id
func (h *Lecture) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	found, err := h.lectureService.Get(ctx, id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrLectureNotFound) {
			return HandleError(h.logger, c, errors.ErrLectureNotFound(id.String()))
		}
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToLectureResponse(found))
}

// List returns lectures filtered by course and status
// GET /v1/lectures
func (h *Lecture) List(c echo.Context) error {
	ctx := c.Request().Context()

	var req lectureDTO.ListLecturesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid query parameters"))
	}

	limit, offset := pagination(req.Page, req.PageSize)
	filters := repositories.LectureFilters{
		Limit:     limit,
		Offset:    offset,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.CourseID != "" {
		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid course_id"))
		}
		filters.CourseID = &courseID
	}
	if req.Status != "" {
		status := entities.LectureStatus(req.Status)
		filters.Status = &status
	}

	lectures, total, err := h.lectureService.List(ctx, filters)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, &common.ListResponse{
		Data:       presenter.ToLectureResponses(lectures),
		Pagination: common.NewPagination(req.Page, limit, total),
	})
}

// Update edits lecture metadata
// PUT /v1/lectures/:id
func (h *Lecture) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req lectureDTO.UpdateLectureRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	updated, err := h.lectureService.Update(ctx, id, lecture.UpdateInput{
		Title:       req.Title,
		ScheduledAt: req.ScheduledAt,
		Metadata:    datatypes.JSON(req.Metadata),
	})
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToLectureResponse(updated))
}

// Start activates a lecture
// POST /v1/lectures/:id/start
func (h *Lecture) Start(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	started, err := h.lectureService.Start(ctx, id)
	if err != nil {
		switch {
		case stdErrors.Is(err, usecaseErrors.ErrLectureEnded):
			return HandleError(h.logger, c, errors.ErrLectureInvalidState(id.String(), "ended", "scheduled or paused"))
		case stdErrors.Is(err, usecaseErrors.ErrLectureAlreadyLive):
			return HandleError(h.logger, c, errors.ErrLectureInvalidState(id.String(), "active", "scheduled or paused"))
		}
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToLectureResponse(started))
}

// Pause pauses an active lecture
// POST /v1/lectures/:id/pause
func (h *Lecture) Pause(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	paused, err := h.lectureService.Pause(ctx, id)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrInvalidLectureState) {
			return HandleError(h.logger, c, errors.ErrLectureInvalidState(id.String(), "not active", "active"))
		}
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToLectureResponse(paused))
}

// Resume reactivates a paused lecture
// POST /v1/lectures/:id/resume
func (h *Lecture) Resume(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resumed, err := h.lectureService.Resume(ctx, id)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrLectureNotPaused) {
			return HandleError(h.logger, c, errors.ErrLectureInvalidState(id.String(), "not paused", "paused"))
		}
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToLectureResponse(resumed))
}

// End finishes a lecture, committing attendance and emitting leave events
// POST /v1/lectures/:id/end
func (h *Lecture) End(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ended, err := h.lectureService.End(ctx, id)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrInvalidLectureState) {
			return HandleError(h.logger, c, errors.ErrLectureInvalidState(id.String(), "not live", "active or paused"))
		}
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToLectureResponse(ended))
}

// Delete removes a lecture and its attendance and engagement rows
// DELETE /v1/lectures/:id
func (h *Lecture) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.lectureService.Delete(ctx, id); err != nil {
		if stdErrors.Is(err, entities.ErrLectureNotFound) {
			return HandleError(h.logger, c, errors.ErrLectureNotFound(id.String()))
		}
		return HandleError(h.logger, c, errors.ErrLectureDeleteFailed(id.String(), err))
	}

	return HandleSuccess(h.logger, c, map[string]bool{"deleted": true})
}
