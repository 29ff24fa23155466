package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/classpulse/backend/errors"
	"github.com/classpulse/backend/internal/adapter/dto/common"
	studentDTO "github.com/classpulse/backend/internal/adapter/dto/student"
	"github.com/classpulse/backend/internal/adapter/presenter"
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/usecase/student"
)

// Student handles roster student HTTP requests
type Student struct {
	studentService *student.Service
	logger         *zap.Logger
}

// NewStudent creates a new student handler
func NewStudent(studentService *student.Service, logger *zap.Logger) *Student {
	return &Student{
		studentService: studentService,
		logger:         logger,
	}
}

// Create registers a new student
// POST /v1/students
func (h *Student) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req studentDTO.CreateStudentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	created, err := h.studentService.Create(ctx, student.CreateInput{
		FullName:  req.FullName,
		Email:     req.Email,
		PersonKey: req.PersonKey,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToStudentResponse(created))
}

// Get retrieves one student
// GET /v1/students/:id
func (h *Student) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	found, err := h.studentService.Get(ctx, id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrStudentNotFound) {
			return HandleError(h.logger, c, errors.ErrStudentNotFound(id.String()))
		}
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToStudentResponse(found))
}

// List returns students, optionally filtered by a name/key search
// GET /v1/students
func (h *Student) List(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Search   string `query:"search"`
		Page     int    `query:"page"`
		PageSize int    `query:"page_size"`
	}
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid query parameters"))
	}

	limit, offset := pagination(req.Page, req.PageSize)
	students, total, err := h.studentService.List(ctx, req.Search, limit, offset)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, &common.ListResponse{
		Data:       presenter.ToStudentResponses(students),
		Pagination: common.NewPagination(req.Page, limit, total),
	})
}

// Update edits a student
// PUT /v1/students/:id
func (h *Student) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req studentDTO.UpdateStudentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	updated, err := h.studentService.Update(ctx, id, student.UpdateInput{
		FullName:  req.FullName,
		Email:     req.Email,
		PersonKey: req.PersonKey,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToStudentResponse(updated))
}

// Delete removes a student
// DELETE /v1/students/:id
func (h *Student) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.studentService.Delete(ctx, id); err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, map[string]bool{"deleted": true})
}
