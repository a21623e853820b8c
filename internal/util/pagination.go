package util

import "strconv"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Clamp normalises page and size: page below 1 becomes 1, size outside
// 1..max becomes def.
func Clamp(page, size, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > max {
		size = def
	}
	return page, size
}

func Calculate(page, size int) (offset, limit int) {
	page, size = Clamp(page, size, DefaultPageSize, MaxPageSize)
	return (page - 1) * size, size
}
