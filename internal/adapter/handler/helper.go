package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/classpulse/backend/errors"
	"github.com/classpulse/backend/internal/domain/entities"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// bindAndValidate binds the request body and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidArgument("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

// mapDomainError converts usecase and entity sentinel errors into the
// AppError taxonomy. Handlers that know the resource id map their primary
// not-found cases themselves; this is the shared fallback.
func mapDomainError(err error) error {
	switch {
	// Validation
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput),
		stdErrors.Is(err, entities.ErrInvalidRequest):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrMissingSessionID),
		stdErrors.Is(err, usecaseErrors.ErrMissingLectureID),
		stdErrors.Is(err, usecaseErrors.ErrEventMissingBody),
		stdErrors.Is(err, usecaseErrors.ErrEventMissingType),
		stdErrors.Is(err, usecaseErrors.ErrEventInvalidType):
		return errors.ErrRelayInvalidEvent(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrUnknownActionType),
		stdErrors.Is(err, usecaseErrors.ErrDetectionBadFrame):
		return errors.ErrInvalidArgument(err.Error())

	// Auth
	case stdErrors.Is(err, usecaseErrors.ErrInvalidCredentials):
		return errors.ErrInvalidCredentials()
	case stdErrors.Is(err, usecaseErrors.ErrTokenInvalid),
		stdErrors.Is(err, entities.ErrInvalidToken):
		return errors.ErrInvalidToken()
	case stdErrors.Is(err, usecaseErrors.ErrTokenExpired):
		return errors.ErrTokenExpired()
	case stdErrors.Is(err, usecaseErrors.ErrSessionNotFound),
		stdErrors.Is(err, usecaseErrors.ErrSessionExpired),
		stdErrors.Is(err, entities.ErrSessionNotFound),
		stdErrors.Is(err, entities.ErrSessionExpired):
		return errors.ErrInvalidRefreshToken()
	case stdErrors.Is(err, usecaseErrors.ErrUserNotActive):
		return errors.ErrForbidden("account is disabled")
	case stdErrors.Is(err, usecaseErrors.ErrEmailAlreadyUsed),
		stdErrors.Is(err, entities.ErrUserAlreadyExists):
		return errors.ErrAlreadyExists("user")
	case stdErrors.Is(err, entities.ErrOAuthStateMismatch),
		stdErrors.Is(err, entities.ErrOAuthProviderNotSupported):
		return errors.ErrOAuthFailed("google", err)

	// Permissions
	case stdErrors.Is(err, usecaseErrors.ErrForbidden),
		stdErrors.Is(err, entities.ErrForbidden):
		return errors.ErrPermissionDenied("access this resource")
	case stdErrors.Is(err, usecaseErrors.ErrNotCourseOwner):
		return errors.ErrPermissionDenied("manage this course")
	case stdErrors.Is(err, usecaseErrors.ErrUnauthorized),
		stdErrors.Is(err, entities.ErrUnauthorized):
		return errors.ErrUnauthenticated()

	// Roster
	case stdErrors.Is(err, usecaseErrors.ErrAlreadyEnrolled),
		stdErrors.Is(err, entities.ErrAlreadyEnrolled):
		return errors.ErrAlreadyExists("enrollment")
	case stdErrors.Is(err, usecaseErrors.ErrNotEnrolled):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrPersonKeyTaken):
		return errors.ErrAlreadyExists("person key")
	case stdErrors.Is(err, usecaseErrors.ErrCourseCodeTaken):
		return errors.ErrAlreadyExists("course code")

	// Not found
	case stdErrors.Is(err, entities.ErrUserNotFound),
		stdErrors.Is(err, usecaseErrors.ErrUserNotFound):
		return errors.ErrUserNotFound()
	case stdErrors.Is(err, entities.ErrCourseNotFound),
		stdErrors.Is(err, usecaseErrors.ErrCourseNotFound):
		return errors.ErrNotFound("course")
	case stdErrors.Is(err, entities.ErrStudentNotFound),
		stdErrors.Is(err, usecaseErrors.ErrStudentNotFound):
		return errors.ErrNotFound("student")
	case stdErrors.Is(err, entities.ErrLectureNotFound),
		stdErrors.Is(err, usecaseErrors.ErrLectureNotFound):
		return errors.ErrNotFound("lecture")
	case stdErrors.Is(err, entities.ErrEngagementNotFound):
		return errors.ErrNotFound("engagement record")
	case stdErrors.Is(err, entities.ErrAttendanceNotFound):
		return errors.ErrNotFound("attendance record")
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound("resource")

	// Upstream
	case stdErrors.Is(err, usecaseErrors.ErrDetectionUnavailable):
		return errors.ErrDetectionUpstream(err)
	}

	return err
}

// pagination normalizes page/page_size query values into limit/offset
func pagination(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
