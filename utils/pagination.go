package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// MaxPageLimit caps the page size a caller may request
const MaxPageLimit = 100

// CursorPage holds keyset pagination parameters. A zero Limit means the
// caller asked for the whole collection.
type CursorPage struct {
	Before uint
	Limit  int
}

// Paged reports whether the caller asked for a page
func (p CursorPage) Paged() bool {
	return p.Limit > 0
}

// NewCursorPage reads "limit" and "before" from the query string
func NewCursorPage(c *gin.Context) (CursorPage, error) {
	var page CursorPage

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return page, ValidationFailed("limit must be a positive integer", err)
		}
		if limit > MaxPageLimit {
			limit = MaxPageLimit
		}
		page.Limit = limit
	}

	if beforeStr := c.Query("before"); beforeStr != "" {
		before, err := strconv.ParseUint(beforeStr, 10, 64)
		if err != nil || before == 0 {
			return page, ValidationFailed("before must be a positive id", err)
		}
		page.Before = uint(before)
	}

	return page, nil
}
