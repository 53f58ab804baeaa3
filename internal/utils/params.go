package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrInvalidID is returned when a path parameter is not a positive integer
var ErrInvalidID = errors.New("invalid id")

// ErrInvalidDate is returned when a due date matches none of the accepted layouts
var ErrInvalidDate = errors.New("invalid date")

// naiveLayouts are date layouts without an offset; they are read as UTC
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseID extracts a positive integer path parameter
func ParseID(c *gin.Context, param string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ParseDueDate parses an RFC 3339 timestamp or a naive date-time and returns it in UTC
func ParseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ParseOptionalDueDate parses raw when it is non-nil and non-empty
func ParseOptionalDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := ParseDueDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
