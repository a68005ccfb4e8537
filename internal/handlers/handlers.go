package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses a numeric URL parameter. The second return is false
// when the parameter is missing or not a valid ID.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseQueryID parses a numeric query-string value.
func parseQueryID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
