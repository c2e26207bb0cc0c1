package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	commissiondomain "github.com/smallbiznis/incentive/internal/commission/domain"
)

// errorResponse is the error envelope of the API:
//
//	{"error":"ValidationError","message":...,"details":{"field":...,"constraint":...}}
type errorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details errorDetails `json:"details"`
}

type errorDetails struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

// ErrorHandlingMiddleware renders the last handler error as the JSON
// error envelope, unless a response was already written.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return &commissiondomain.ValidationError{
		Field:      "request",
		Constraint: "invalid_request",
		Message:    "request body must be a JSON object",
	}
}

func mapError(err error) (int, errorResponse) {
	var vErr *commissiondomain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorResponse{
			Error:   "ValidationError",
			Message: vErr.Message,
			Details: errorDetails{
				Field:      vErr.Field,
				Constraint: vErr.Constraint,
			},
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "InternalServerError",
		Message: "internal server error",
	}
}

// classifyErrorForLog labels handler errors for the request log.
func classifyErrorForLog(err error) (string, string) {
	var vErr *commissiondomain.ValidationError
	if errors.As(err, &vErr) {
		return "validation_error", vErr.Constraint
	}
	return "internal_error", ""
}
