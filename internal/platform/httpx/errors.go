// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/interbanking/interbanking-api/internal/platform/clock"
	"github.com/interbanking/interbanking-api/internal/shared"
)

// Sentinel errors for domain layer.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrDuplicate       = errors.New("duplicate entry")
	ErrValidation      = errors.New("validation failed")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrTooManyRequests = errors.New("too many requests")
)

// Error carries a client-facing message on top of one of the sentinel kinds.
// Details, when set, is rendered as an array of messages.
type Error struct {
	Kind    error
	Message string
	Details []string
}

// NewError builds an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation builds a validation Error holding one message per violation.
func Validation(messages ...string) *Error {
	return &Error{Kind: ErrValidation, Message: strings.Join(messages, "; "), Details: messages}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Kind }

// StatusOf classifies err into an HTTP status code.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

var statusNames = map[int]string{
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	409: "Conflict",
	422: "Unprocessable Entity",
	429: "Too Many Requests",
	500: "Internal Server Error",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
}

// StatusName returns the short error name used in error bodies.
func StatusName(status int) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "Error"
}

// ErrorBody is the uniform error envelope.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	RequestID  string `json:"requestId"`
}

const internalMessage = "Internal server error"

// RespondError maps domain errors to the uniform error envelope and logs the
// failure with request context.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	RespondStatus(w, r, logger, StatusOf(err), err)
}

// RespondStatus writes the uniform envelope with an explicit status code.
func RespondStatus(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, err error) {
	ctx := r.Context()
	requestID := shared.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = "unknown"
	}

	body := ErrorBody{
		StatusCode: status,
		Message:    clientMessage(status, err),
		Error:      StatusName(status),
		Timestamp:  clock.ISOTimestamp(time.Now()),
		Path:       r.URL.RequestURI(),
		RequestID:  requestID,
	}

	if logger != nil {
		logError(logger, r, requestID, status, err)
	}

	JSON(w, status, body)
}

func clientMessage(status int, err error) any {
	var typed *Error
	if errors.As(err, &typed) {
		if typed.Details != nil {
			return typed.Details
		}
		return typed.Error()
	}
	if status >= http.StatusInternalServerError || err == nil {
		return internalMessage
	}
	return err.Error()
}

func logError(logger *slog.Logger, r *http.Request, requestID string, status int, err error) {
	var elapsed time.Duration
	if start, ok := shared.StartFromContext(r.Context()); ok {
		elapsed = time.Since(start)
	}
	text := errorText(err)
	attrs := []any{
		slog.String("request_id", requestID),
		slog.String("route", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
		slog.Int("status", status),
		slog.String("error", text),
	}
	if text == unknownError && err != nil {
		attrs = append(attrs, slog.String("cause", err.Error()))
	}
	msg := "[" + requestID + "] " + r.Method + " " + r.URL.Path
	if status >= http.StatusInternalServerError {
		logger.Error(msg, attrs...)
		return
	}
	logger.Warn(msg, attrs...)
}

const unknownError = "Unknown error"

// errorText classifies err for the error attribute. Unclassified failures
// collapse to a fixed label; their text is logged separately as cause.
func errorText(err error) string {
	if err == nil {
		return unknownError
	}
	var typed *Error
	if errors.As(err, &typed) || StatusOf(err) != http.StatusInternalServerError {
		return err.Error()
	}
	return unknownError
}

// HandlerFunc is an http handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h to http.HandlerFunc, routing returned errors through
// RespondError.
func Handle(logger *slog.Logger, h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			RespondError(w, r, logger, err)
		}
	}
}
