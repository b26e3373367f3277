package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler 统一错误处理中间件
// 兜底捕获 handler 挂到 gin.Context 上的错误
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})
		}
	}
}
