package utils

import "github.com/gin-gonic/gin"

// JSONError writes the standard error body used across the API.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}
