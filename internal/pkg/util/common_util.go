package util

import (
	"strconv"
	"strings"
)

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// ParseID parses a positive decimal id; zero means invalid
func ParseID(s string) uint64 {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// ClampLimit bounds a client supplied page size
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
