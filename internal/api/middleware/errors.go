package middleware

import (
	"github.com/gin-gonic/gin"

	"pantry-chef/internal/pkg/common"
)

// AbortWithError writes {"error": message, "code": code} with the error's status.
func AbortWithError(c *gin.Context, ce *common.CustomError) {
	c.AbortWithStatusJSON(ce.Status, common.ErrorResponse{
		Code:    ce.Code,
		Message: ce.Message,
	})
}
