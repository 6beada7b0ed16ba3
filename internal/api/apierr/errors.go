package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gridspace-io/gridspace/internal/model"
	"github.com/gridspace-io/gridspace/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeSpaceNotFound       = "SPACE_NOT_FOUND"
	CodeNotSpaceCreator     = "NOT_SPACE_CREATOR"
	CodeInvalidDimensions   = "INVALID_DIMENSIONS"
	CodeInvalidPosition     = "INVALID_POSITION"
	CodeElementNotFound     = "ELEMENT_NOT_FOUND"
	CodeAvatarNotFound      = "AVATAR_NOT_FOUND"
	CodeMapNotFound         = "MAP_NOT_FOUND"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Model errors
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, model.ErrInvalidRole):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Role must be user or admin"}}
	case errors.Is(err, model.ErrSpaceNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSpaceNotFound, "Space not found"}}
	case errors.Is(err, model.ErrNotSpaceCreator):
		return &httpError{http.StatusForbidden, APIError{CodeNotSpaceCreator, "Only the creator can delete a space"}}
	case errors.Is(err, model.ErrInvalidDimensions):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDimensions, "Dimensions must be WxH with positive integers"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Position is outside the space grid"}}
	case errors.Is(err, model.ErrSpaceElementNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeElementNotFound, "Space element not found"}}
	case errors.Is(err, model.ErrElementNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeElementNotFound, "Element not found"}}
	case errors.Is(err, model.ErrAvatarNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAvatarNotFound, "Avatar not found"}}
	case errors.Is(err, model.ErrMapNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMapNotFound, "Map not found"}}

	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusForbidden, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Admin role required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
