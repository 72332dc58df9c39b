package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// APIResponse writes the resource itself as the body.
func APIResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// APIError writes {"detail": ...} and stops the handler chain.
func APIError(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Detail: detail})
}

// DeleteOK is the reply to a successful DELETE.
func DeleteOK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
