package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/classpulse/backend/errors"
	"github.com/classpulse/backend/internal/adapter/dto/common"
	courseDTO "github.com/classpulse/backend/internal/adapter/dto/course"
	"github.com/classpulse/backend/internal/adapter/presenter"
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/infrastructure/http/middleware"
	"github.com/classpulse/backend/internal/usecase/course"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

// Course handles course and roster HTTP requests
type Course struct {
	courseService *course.Service
	logger        *zap.Logger
}

// NewCourse creates a new course handler
func NewCourse(courseService *course.Service, logger *zap.Logger) *Course {
	return &Course{
		courseService: courseService,
		logger:        logger,
	}
}

// Create creates a course owned by the authenticated user
// POST /v1/courses
func (h *Course) Create(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req courseDTO.CreateCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	created, err := h.courseService.Create(ctx, course.CreateInput{
		OwnerID:     user.ID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Semester:    req.Semester,
		Settings:    datatypes.JSON(req.Settings),
	})
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToCourseResponse(created))
}

// Get retrieves one course
// GET /v1/courses/:id
func (h *Course) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	found, err := h.courseService.Get(ctx, id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrCourseNotFound) {
			return HandleError(h.logger, c, errors.ErrCourseNotFound(id.String()))
		}
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToCourseResponse(found))
}

// List returns the authenticated user's courses
// GET /v1/courses
func (h *Course) List(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req courseDTO.ListCoursesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid query parameters"))
	}

	limit, offset := pagination(req.Page, req.PageSize)
	filters := repositories.CourseFilters{
		Search:    req.Search,
		Limit:     limit,
		Offset:    offset,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	// Admins see every course; professors only their own
	if user.Role != entities.RoleAdmin {
		ownerID := user.ID
		filters.OwnerID = &ownerID
	}

	courses, total, err := h.courseService.List(ctx, filters)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, &common.ListResponse{
		Data:       presenter.ToCourseResponses(courses),
		Pagination: common.NewPagination(req.Page, limit, total),
	})
}

// Update edits a course
// PUT /v1/courses/:id
func (h *Course) Update(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req courseDTO.UpdateCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	updated, err := h.courseService.Update(ctx, user.ID, id, course.UpdateInput{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Semester:    req.Semester,
		IsArchived:  req.IsArchived,
		Settings:    datatypes.JSON(req.Settings),
	})
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToCourseResponse(updated))
}

// Delete removes a course
// DELETE /v1/courses/:id
func (h *Course) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.courseService.Delete(ctx, user.ID, id); err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, map[string]bool{"deleted": true})
}

// Enroll adds a student to the course roster
// POST /v1/courses/:id/students
func (h *Course) Enroll(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	courseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req courseDTO.EnrollRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid student_id"))
	}

	if err := h.courseService.Enroll(ctx, user.ID, courseID, studentID); err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrAlreadyEnrolled) {
			return HandleError(h.logger, c, errors.ErrStudentAlreadyEnrolled(studentID.String()))
		}
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, map[string]bool{"enrolled": true})
}

// Unenroll removes a student from the course roster
// DELETE /v1/courses/:id/students/:studentId
func (h *Course) Unenroll(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	courseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.courseService.Unenroll(ctx, user.ID, courseID, studentID); err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, map[string]bool{"unenrolled": true})
}

// Roster lists the students enrolled in a course
// GET /v1/courses/:id/students
func (h *Course) Roster(c echo.Context) error {
	ctx := c.Request().Context()

	courseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	students, err := h.courseService.Roster(ctx, courseID)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToStudentResponses(students))
}
