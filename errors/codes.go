package errors

// ErrorCode identifies an application error category
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_FORBIDDEN

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED
	ErrorCode_AUTH_INVALID_CREDENTIALS
	ErrorCode_AUTH_USER_NOT_FOUND
	ErrorCode_AUTH_USER_ALREADY_EXISTS
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN
	ErrorCode_AUTH_OAUTH_FAILED

	// Courses and roster
	ErrorCode_COURSE_NOT_FOUND
	ErrorCode_STUDENT_NOT_FOUND
	ErrorCode_STUDENT_ALREADY_ENROLLED

	// Lectures
	ErrorCode_LECTURE_NOT_FOUND
	ErrorCode_LECTURE_INVALID_STATE
	ErrorCode_LECTURE_DELETE_FAILED

	// Live pipeline
	ErrorCode_DETECTION_UPSTREAM_FAILED
	ErrorCode_RELAY_INVALID_EVENT

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED

	// Database
	ErrorCode_DB_CONNECTION_FAILED
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_TRANSACTION_FAILED

	ErrorCode_HTTP_OK
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                    "UNKNOWN",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:   "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_USER_NOT_FOUND:        "AUTH_USER_NOT_FOUND",
	ErrorCode_AUTH_USER_ALREADY_EXISTS:   "AUTH_USER_ALREADY_EXISTS",
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN: "AUTH_INVALID_REFRESH_TOKEN",
	ErrorCode_AUTH_OAUTH_FAILED:          "AUTH_OAUTH_FAILED",
	ErrorCode_COURSE_NOT_FOUND:           "COURSE_NOT_FOUND",
	ErrorCode_STUDENT_NOT_FOUND:          "STUDENT_NOT_FOUND",
	ErrorCode_STUDENT_ALREADY_ENROLLED:   "STUDENT_ALREADY_ENROLLED",
	ErrorCode_LECTURE_NOT_FOUND:          "LECTURE_NOT_FOUND",
	ErrorCode_LECTURE_INVALID_STATE:      "LECTURE_INVALID_STATE",
	ErrorCode_LECTURE_DELETE_FAILED:      "LECTURE_DELETE_FAILED",
	ErrorCode_DETECTION_UPSTREAM_FAILED:  "DETECTION_UPSTREAM_FAILED",
	ErrorCode_RELAY_INVALID_EVENT:        "RELAY_INVALID_EVENT",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:       "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:      "DB_TRANSACTION_FAILED",
	ErrorCode_HTTP_OK:                    "OK",
}

// String returns the symbolic name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
