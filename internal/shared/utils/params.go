package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/shared/errors"
)

// ParseUintParam parses a positive integer path parameter. entityName is used in the
// error message. A malformed id is reported as not found, like an unknown one.
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewNotFoundError(entityName + " not found")
	}
	return uint(n), nil
}

// GetActorID returns the authenticated user id set by the auth middleware, or 0 for
// anonymous requests.
func GetActorID(c *gin.Context) uint {
	v, ok := c.Get("user_id")
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
