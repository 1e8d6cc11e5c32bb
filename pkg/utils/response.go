package utils

import "github.com/gin-gonic/gin"

// Success writes the standard success envelope: {status, data}.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"status": "success",
		"data":   data,
	})
}

// SuccessWithToken writes the envelope used by the auth endpoints, carrying
// the freshly issued bearer token alongside the payload.
func SuccessWithToken(c *gin.Context, statusCode int, token string, data any) {
	body := gin.H{
		"status": "success",
		"token":  token,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(statusCode, body)
}

// SuccessList writes the list envelope with a results count.
func SuccessList(c *gin.Context, statusCode int, results int, data any) {
	c.JSON(statusCode, gin.H{
		"status":  "success",
		"results": results,
		"data":    data,
	})
}

// SuccessMessage writes a success envelope carrying only a message.
func SuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"status":  "success",
		"message": message,
	})
}
