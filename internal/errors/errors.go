package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmptyPlate is returned when a plate string is empty or has no alphanumeric characters.
	ErrEmptyPlate = errors.New("plate is empty")
	// ErrInvalidPlateFormat is returned when a plate does not follow a Brazilian plate format.
	ErrInvalidPlateFormat = errors.New("plate does not follow the brazilian format (ABC-1234 or ABC1D23)")
	// ErrDuplicatePlate is returned when a normalized plate already exists in the whitelist.
	ErrDuplicatePlate = errors.New("plate already exists in whitelist")
	// ErrPlateNotFound is returned when a whitelist entry is not found.
	ErrPlateNotFound = errors.New("plate not found")
	// ErrDuplicateEmail is returned when a user email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnsupportedMediaType is returned when an uploaded image has an unsupported or
	// inconsistent content type / file extension.
	ErrUnsupportedMediaType = errors.New("unsupported image type")
	// ErrPayloadTooLarge is returned when an uploaded image exceeds the configured maximum.
	ErrPayloadTooLarge = errors.New("image exceeds maximum allowed size")
	// ErrImageNotFound is returned when a stored image is not found.
	ErrImageNotFound = errors.New("image not found")
	// ErrInvalidFilename is returned when an image filename contains path separators or
	// parent-directory sequences.
	ErrInvalidFilename = errors.New("invalid image filename")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Storage internals never
// reach the caller; anything unrecognized becomes a generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmptyPlate):
		return NewHTTPError(http.StatusBadRequest, ErrEmptyPlate.Error(), "EMPTY_PLATE")
	case errors.Is(err, ErrInvalidPlateFormat):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidPlateFormat.Error(), "INVALID_PLATE_FORMAT")
	case errors.Is(err, ErrDuplicatePlate):
		return NewHTTPError(http.StatusConflict, ErrDuplicatePlate.Error(), "DUPLICATE_PLATE")
	case errors.Is(err, ErrPlateNotFound):
		return NewHTTPError(http.StatusNotFound, ErrPlateNotFound.Error(), "PLATE_NOT_FOUND")
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusConflict, ErrDuplicateEmail.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUnsupportedMediaType):
		return NewHTTPError(http.StatusUnsupportedMediaType, ErrUnsupportedMediaType.Error(), "UNSUPPORTED_MEDIA_TYPE")
	case errors.Is(err, ErrPayloadTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, ErrPayloadTooLarge.Error(), "PAYLOAD_TOO_LARGE")
	case errors.Is(err, ErrImageNotFound):
		return NewHTTPError(http.StatusNotFound, ErrImageNotFound.Error(), "IMAGE_NOT_FOUND")
	case errors.Is(err, ErrInvalidFilename):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidFilename.Error(), "INVALID_FILENAME")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
