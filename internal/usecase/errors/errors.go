package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrConflict      = errors.New("resource conflict")
	ErrInternalError = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// Course errors
var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrNotCourseOwner  = errors.New("user does not own this course")
	ErrCourseCodeTaken = errors.New("course code already in use")
)

// Student and roster errors
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrAlreadyEnrolled = errors.New("student already enrolled")
	ErrNotEnrolled     = errors.New("student not enrolled in this course")
	ErrPersonKeyTaken  = errors.New("person key already assigned")
)

// Lecture errors
var (
	ErrLectureNotFound     = errors.New("lecture not found")
	ErrLectureNotActive    = errors.New("lecture is not active")
	ErrLectureEnded        = errors.New("lecture has ended")
	ErrLectureNotPaused    = errors.New("lecture is not paused")
	ErrLectureAlreadyLive  = errors.New("lecture already started")
	ErrInvalidLectureState = errors.New("invalid lecture state for this operation")
)

// Live relay errors
var (
	ErrMissingSessionID = errors.New("sessionId is required")
	ErrMissingLectureID = errors.New("lectureId is required")
	ErrEventMissingBody = errors.New("event message is required")
	ErrEventMissingType = errors.New("event type is required")
	ErrEventInvalidType = errors.New("event type must be one of info, warning, error, success")
)

// Engagement errors
var (
	ErrUnknownActionType = errors.New("unknown engagement action type")
)

// Detection errors
var (
	ErrDetectionUnavailable = errors.New("detection service unavailable")
	ErrDetectionBadFrame    = errors.New("malformed detection frame")
)

// User errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserNotActive    = errors.New("user is not active")
	ErrEmailAlreadyUsed = errors.New("email already in use")
)
