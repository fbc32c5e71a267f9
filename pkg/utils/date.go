package utils

import (
	"time"
)

// LoadLocation returns the named location, falling back to UTC when the
// zone database does not know it.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TimeNowIn returns the current time in the named location.
func TimeNowIn(name string) time.Time {
	return time.Now().In(LoadLocation(name))
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
