package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam parses a path parameter as a positive int64 identifier.
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s parameter: must be a positive integer", name)
	}
	return id, nil
}
