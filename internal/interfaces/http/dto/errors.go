package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeDatabase is used when a storage operation fails
	ErrCodeDatabase = "ERR_DATABASE"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
	// ErrCodeValidationLength is used when a field length is invalid
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks the required role
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrentUpdate is used when optimistic locking fails
	ErrCodeConcurrentUpdate = "ERR_CONCURRENT_UPDATE"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeQuotaExceeded is used when a plan quota is exhausted
	ErrCodeQuotaExceeded = "ERR_QUOTA_EXCEEDED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	// ErrCodeTooManyRequests is an alias for rate limiting
	ErrCodeTooManyRequests = "ERR_TOO_MANY_REQUESTS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeDatabase: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeConflict:         http.StatusConflict,
	ErrCodeConcurrentUpdate: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:  http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:  http.StatusUnprocessableEntity,
	ErrCodeQuotaExceeded: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized codes.
// Domain services raise stable codes like INITIATIVE_NOT_FOUND or
// INVITATION_EXPIRED; handlers translate through this table so status
// decisions never live inline.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"EMAIL_TAKEN":           ErrCodeAlreadyExists,
	"SLUG_TAKEN":            ErrCodeAlreadyExists,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"INVALID_STATE":         ErrCodeInvalidState,
	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"INVALID_CREDENTIALS":   ErrCodeUnauthorized,
	"ACCOUNT_LOCKED":        ErrCodeUnauthorized,
	"ACCOUNT_INACTIVE":      ErrCodeUnauthorized,
	"ACCOUNT_DEACTIVATED":   ErrCodeUnauthorized,
	"TOKEN_EXPIRED":         ErrCodeTokenExpired,
	"TOKEN_INVALID":         ErrCodeTokenInvalid,
	"TOKEN_MAX_REFRESH":     ErrCodeTokenInvalid,
	"FORBIDDEN":             ErrCodeForbidden,
	"AREA_SCOPE_NOT_ALLOWED": ErrCodeForbidden,
	"TENANT_SUSPENDED":      ErrCodeForbidden,
	"TRIAL_EXPIRED":         ErrCodeForbidden,
	"CONCURRENT_MODIFICATION": ErrCodeConcurrentUpdate,
	"CONCURRENCY_CONFLICT":  ErrCodeConcurrentUpdate,
	"OPTIMISTIC_LOCK_ERROR": ErrCodeConcurrentUpdate,
	"VERSION_CONFLICT":      ErrCodeConcurrentUpdate,
	"VALIDATION_ERROR":      ErrCodeValidation,
	"VALIDATION_ERRORS":     ErrCodeValidation,
	"BAD_REQUEST":           ErrCodeBadRequest,
	"INTERNAL_ERROR":        ErrCodeInternal,
	"DB_ERROR":              ErrCodeDatabase,
	"QUOTA_EXCEEDED":        ErrCodeQuotaExceeded,
	"AREA_QUOTA_EXCEEDED":   ErrCodeQuotaExceeded,
	"USER_QUOTA_EXCEEDED":   ErrCodeQuotaExceeded,
	"INITIATIVE_QUOTA_EXCEEDED": ErrCodeQuotaExceeded,
	"INVITATION_EXPIRED":    ErrCodeInvalidState,
	"INVITATION_REVOKED":    ErrCodeInvalidState,
	"INVITATION_PENDING":    ErrCodeConflict,
	"ALREADY_ACCEPTED":      ErrCodeConflict,
	"LAST_CEO":              ErrCodeInvalidState,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// Codes without an explicit mapping fall back to their naming family:
// *_NOT_FOUND -> 404, ALREADY_* / DUPLICATE_* / HAS_* -> 409,
// INVALID_* / MISSING_* -> 400, CANNOT_* / *_ARCHIVED -> 422.
// Codes already in the ERR_ format or outside every family pass through.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return ErrCodeNotFound
	case strings.HasPrefix(code, "ALREADY_"), strings.HasPrefix(code, "DUPLICATE_"), strings.HasPrefix(code, "HAS_"):
		return ErrCodeConflict
	case strings.HasPrefix(code, "INVALID_"), strings.HasPrefix(code, "MISSING_"):
		return ErrCodeInvalidInput
	case strings.HasPrefix(code, "CANNOT_"), strings.HasSuffix(code, "_ARCHIVED"),
		strings.HasSuffix(code, "_CLOSED"), strings.HasSuffix(code, "_COMPLETED"),
		strings.HasSuffix(code, "_CANCELLED"):
		return ErrCodeInvalidState
	}
	return code
}
