package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/houseping/internal/validation"
)

// ParseLimit reads the optional ?limit= query parameter; absent means 0 (service default)
func ParseLimit(c *gin.Context) (int, error) {
	limitParam := c.Query("limit")
	if limitParam == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(limitParam)
	if err != nil {
		return 0, fmt.Errorf("invalid limit")
	}

	return limit, nil
}

// ValidateAndGetPingID validates and returns ping ID from URL parameter
func ValidateAndGetPingID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if err := validation.ValidateID(id); err != nil {
		return "", fmt.Errorf("invalid ping ID")
	}
	return id, nil
}

// GetProvider returns the :provider URL parameter
func GetProvider(c *gin.Context) string {
	return c.Param("provider")
}
