package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response holds the extra fields of a success body.
type Response map[string]interface{}

// Success writes {"success": true, ...extra}.
func Success(c *gin.Context, extra Response) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error writes {"error": msg} with the given HTTP status. Raw store error
// text never goes through here; callers log it and pass a generic message.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"error": msg})
}
