package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/classpulse/backend/errors"
	attendanceDTO "github.com/classpulse/backend/internal/adapter/dto/attendance"
	"github.com/classpulse/backend/internal/adapter/presenter"
	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/usecase/attendance"
)

// Attendance handles attendance HTTP requests
type Attendance struct {
	attendanceService *attendance.Service
	logger            *zap.Logger
}

// NewAttendance creates a new attendance handler
func NewAttendance(attendanceService *attendance.Service, logger *zap.Logger) *Attendance {
	return &Attendance{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// Record upserts one attendance record for a lecture
// POST /v1/lectures/:id/attendance
func (h *Attendance) Record(c echo.Context) error {
	ctx := c.Request().Context()

	lectureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req attendanceDTO.RecordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid student_id"))
	}

	record, err := h.attendanceService.Record(ctx, lectureID, studentID,
		entities.AttendanceStatus(req.Status), req.JoinTime, req.LeaveTime, req.Notes)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToAttendanceResponse(record))
}

// BulkRecord upserts a batch of attendance records for a lecture
// POST /v1/lectures/:id/attendance/bulk
func (h *Attendance) BulkRecord(c echo.Context) error {
	ctx := c.Request().Context()

	lectureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req attendanceDTO.BulkRecordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	records := make([]*entities.AttendanceRecord, 0, len(req.Records))
	for _, item := range req.Records {
		studentID, err := uuid.Parse(item.StudentID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid student_id"))
		}
		records = append(records, &entities.AttendanceRecord{
			LectureID: lectureID,
			StudentID: studentID,
			Status:    entities.AttendanceStatus(item.Status),
			JoinTime:  item.JoinTime,
			LeaveTime: item.LeaveTime,
			Notes:     item.Notes,
		})
	}

	if err := h.attendanceService.BulkRecord(ctx, lectureID, records); err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{"recorded": len(records)})
}

// List returns all attendance records for a lecture
// GET /v1/lectures/:id/attendance
func (h *Attendance) List(c echo.Context) error {
	ctx := c.Request().Context()

	lectureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	records, err := h.attendanceService.ListByLecture(ctx, lectureID)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToAttendanceResponses(records))
}

// Summary returns per-status counts for a lecture
// GET /v1/lectures/:id/attendance/summary
func (h *Attendance) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	lectureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	counts, err := h.attendanceService.Summary(ctx, lectureID)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, &attendanceDTO.SummaryResponse{
		LectureID: lectureID.String(),
		Present:   counts[entities.AttendancePresent],
		Late:      counts[entities.AttendanceLate],
		Absent:    counts[entities.AttendanceAbsent],
	})
}
