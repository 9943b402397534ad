package v1

import (
	ierr "github.com/flexprice/taxengine/internal/errors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents the API error response structure
type ErrorResponse struct {
	Error  string `json:"error" example:"Invalid request payload"`
	Detail string `json:"detail,omitempty"`
}

func NewErrorResponse(c *gin.Context, code int, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:  message,
		Detail: detail,
	})
}

// AbortWithError maps a service error to its HTTP status code
func AbortWithError(c *gin.Context, message string, err error) {
	NewErrorResponse(c, ierr.HTTPStatusFromErr(err), message, err)
}
