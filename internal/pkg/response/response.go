// Package response writes the API's JSON envelope. Every endpoint
// answers either {"success":true,"data":...} or
// {"success":false,"error":{"code","message"[,"details"]}}.
package response

import "github.com/gin-gonic/gin"

// Success writes the payload under "data". A nil payload is a valid
// empty state and serializes as data: null.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes a machine-readable code alongside the human message.
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails attaches a structured details object, used for
// payloads like the dashboard redirect hint on role denials.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
