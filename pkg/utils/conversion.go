package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// StringToUint64 parses a decimal id. Returns 0 on failure; ids start at 1.
func StringToUint64(str string) uint64 {
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0
	}
	return val
}

// PathID reads a numeric path parameter, replying 422 when it is not a
// positive integer.
func PathID(c *gin.Context, name string) (uint64, bool) {
	id := StringToUint64(c.Param(name))
	if id == 0 {
		APIError(c, http.StatusUnprocessableEntity, name+": must be a positive integer")
		return 0, false
	}
	return id, true
}
