package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Meta carries list result counts.
type Meta struct {
	Count int   `json:"count"`
	Total int64 `json:"total"`
}

// Success writes the uniform success envelope.
func Success(c *gin.Context, status int, data interface{}, message string) {
	body := gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// SuccessWithMeta writes the success envelope with list metadata.
func SuccessWithMeta(c *gin.Context, status int, data interface{}, meta Meta, message string) {
	body := gin.H{
		"success":   true,
		"data":      data,
		"meta":      meta,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}
