package ez

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// UintParam reads a numeric path parameter; the error is already an APIError.
func UintParam(c *gin.Context, name, missingMsg string) (uint, error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, BadRequest(missingMsg)
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, BadRequest(missingMsg)
	}
	return uint(n), nil
}

// UintQuery reads a numeric query parameter.
func UintQuery(c *gin.Context, name, missingMsg string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, BadRequest(missingMsg)
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, BadRequest(missingMsg)
	}
	return uint(n), nil
}
