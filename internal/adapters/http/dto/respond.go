package dto

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/portfolio/internal/domain"
	"github.com/jsamuelsen/portfolio/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsValidation(err):
		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			return http.StatusBadRequest, NewErrorResponse(ErrorCodeValidation, err.Error())
		}

		return http.StatusBadRequest, NewErrorResponseWithDetails(
			ErrorCodeValidation,
			"request validation failed",
			FieldErrors(err),
		)

	case domain.IsRateLimited(err):
		return http.StatusTooManyRequests, NewErrorResponse(
			ErrorCodeRateLimited,
			"too many requests, please try again later",
		)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeUnavailable,
			"the service is temporarily unavailable",
		)

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// FieldErrors returns the per-field messages of a domain validation error,
// or nil when err carries none.
func FieldErrors(err error) map[string]string {
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		return nil
	}

	if len(validationErr.Fields) > 0 {
		return validationErr.Fields
	}

	if validationErr.Field != "" {
		return map[string]string{validationErr.Field: validationErr.Message}
	}

	return nil
}

// HandleError writes an error response for err. Rate limit errors also
// set Retry-After.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	SetRetryAfter(c, err)
	logServerError(c, status, err)

	c.JSON(status, errResp)
}

// AbortWithError aborts the request chain and writes an error response.
func AbortWithError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	SetRetryAfter(c, err)
	logServerError(c, status, err)

	c.AbortWithStatusJSON(status, errResp)
}

// RespondWithErrorCode writes an error response with a specific error code.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	errResp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	c.JSON(HTTPStatusFromCode(code), errResp)
}

// GetTraceID returns the request span's trace id, or "" without tracing.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// SetRetryAfter sets the Retry-After header, in whole seconds, when err is
// a rate limit error.
func SetRetryAfter(c *gin.Context, err error) {
	var limited *domain.RateLimitedError
	if !errors.As(err, &limited) {
		return
	}

	seconds := int(math.Ceil(limited.RetryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}

	c.Header("Retry-After", strconv.Itoa(seconds))
}

// logServerError logs 5xx errors with full details; clients only see the
// generic message.
func logServerError(c *gin.Context, status int, err error) {
	if status < http.StatusInternalServerError {
		return
	}

	logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
		slog.Int("status", status),
		slog.Any("error", err),
	)
}
