package helper_util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page size bounds for the list endpoints. Out-of-range numeric values
// are clamped; non-numeric values are errors.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func GetPaginationParams(c *gin.Context) (limit int, offset int, err error) {
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil {
		return 0, 0, err
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		return 0, 0, err
	}

	if limit < 1 {
		limit = DefaultPageSize
	} else if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, nil
}
