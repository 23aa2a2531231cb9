package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/dto"
)

// ErrorHandler converts errors accumulated on the gin context into a
// standardized 500 response when no handler wrote a body itself.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	last := c.Errors.Last()
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("internal error", last.Err))
}

// AbortWithError stops the request with the given status and the
// standardized error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
