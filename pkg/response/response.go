// Package response owns the JSON envelope of the simulation API and the error-to-status mapping.
package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/football-sim/internal/model"
	"github.com/maxviazov/football-sim/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// errorRule maps one error category to a status. detail copies err.Error() into the message.
type errorRule struct {
	target error
	status int
	code   string
	detail bool
}

// errorRules are checked in order; ErrInvalidInput is handled first because it carries field errors.
var errorRules = []errorRule{
	{model.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument", true},
	{model.ErrNotFound, http.StatusNotFound, "not_found", false},
	{model.ErrAlreadyExists, http.StatusConflict, "already_exists", true},
	{model.ErrInvalidState, http.StatusConflict, "conflict", false},
	{model.ErrCapacity, http.StatusUnprocessableEntity, "capacity_exceeded", true},
	{context.Canceled, http.StatusServiceUnavailable, "cancelled", false},
	{context.DeadlineExceeded, http.StatusServiceUnavailable, "cancelled", false},
}

// MapError converts a simulation error into an HTTP status and payload. Unknown errors become 500 without details.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}
	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}
	for _, r := range errorRules {
		if !errors.Is(err, r.target) {
			continue
		}
		p := ErrorPayload{Error: r.code}
		if r.detail {
			p.Message = err.Error()
		}
		return r.status, p
	}
	return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
