package apperror

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrInternal          = errors.New("internal server error")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrUnavailable       = errors.New("service unavailable")
)

// AppError is a custom error type that can hold an HTTP status code
// and a message that is safe to show to API clients.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message, ErrValidation)
}

// Conflict errors are reported as 400 to keep the original API contract.
func Conflict(message string) *AppError {
	return New(http.StatusBadRequest, message, ErrConflict)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, ErrNotFound)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, ErrUnauthorized)
}

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Error interno del servidor", errors.Join(ErrInternal, err))
}

// FromDB translates gorm errors into the application taxonomy. notFoundMsg is
// used when the record does not exist.
func FromDB(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return New(http.StatusBadRequest, "El registro ya existe", errors.Join(ErrConflict, err))
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return New(http.StatusBadRequest, "Uno de los registros referenciados no existe", errors.Join(ErrValidation, err))
	}
	return Internal(err)
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrRateLimitExceeded) {
		return http.StatusTooManyRequests
	}
	if errors.Is(err, ErrUnavailable) {
		return http.StatusServiceUnavailable
	}
	// Default to internal server error
	return http.StatusInternalServerError
}

// PublicMessage returns the text that may be sent to the client for err.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	switch MapErrorToStatus(err) {
	case http.StatusNotFound:
		return "Recurso no encontrado"
	case http.StatusUnauthorized:
		return "No autorizado"
	case http.StatusBadRequest:
		return "Solicitud inválida"
	case http.StatusTooManyRequests:
		return "Demasiados intentos, intente más tarde"
	case http.StatusServiceUnavailable:
		return "Servicio no disponible"
	}
	return "Error interno del servidor"
}
