package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/pkg/db"
)

// errorResponse is the payload returned for every failed request.
type errorResponse struct {
	Timestamp time.Time           `json:"timestamp"`
	Status    int                 `json:"status"`
	Error     string              `json:"error"`
	Message   string              `json:"message"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

// ErrorHandlingMiddleware converts errors attached to the gin context into
// the error payload. Handlers never write error bodies themselves; they call
// AbortWithError and let this middleware do the mapping.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		if last == nil {
			return
		}

		status, resp := mapError(last.Err)
		c.JSON(status, resp)
	}
}

// AbortWithError records err on the context and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorResponse) {
	now := time.Now().UTC()

	if ve := apperror.AsValidation(err); ve != nil {
		return http.StatusBadRequest, errorResponse{
			Timestamp: now,
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   ve.Error(),
			Errors:    ve.FieldMap(),
		}
	}

	if nf := apperror.AsNotFound(err); nf != nil {
		return http.StatusNotFound, errorResponse{
			Timestamp: now,
			Status:    http.StatusNotFound,
			Error:     "Not Found",
			Message:   nf.Error(),
		}
	}

	if br := apperror.AsBusinessRule(err); br != nil {
		return http.StatusConflict, errorResponse{
			Timestamp: now,
			Status:    http.StatusConflict,
			Error:     "Conflict",
			Message:   br.Error(),
		}
	}

	if errors.Is(err, apperror.ErrConflict) || db.IsDuplicateKeyErr(err) {
		return http.StatusConflict, errorResponse{
			Timestamp: now,
			Status:    http.StatusConflict,
			Error:     "Conflict",
			Message:   "resource conflicts with existing data",
		}
	}

	if db.IsCheckConstraintErr(err) {
		return http.StatusBadRequest, errorResponse{
			Timestamp: now,
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   "request violates a data constraint",
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Timestamp: now,
		Status:    http.StatusInternalServerError,
		Error:     "Internal Server Error",
		Message:   "an unexpected error occurred",
	}
}

func invalidRequestError(err error) error {
	return apperror.NewValidation("request", "malformed request body: "+err.Error())
}
