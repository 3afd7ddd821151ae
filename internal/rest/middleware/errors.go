package middleware

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/poloedu/polobill/internal/errors"
)

// ErrorHandler renders the first error attached to the gin context as the
// standard error response. Handlers report failures with c.Error and return;
// the mapping to an HTTP status lives here, in one place.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors[0].Err
	c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
}
