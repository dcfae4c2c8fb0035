package util

import (
	"fmt"
	"time"
)

// AddClockTimeToDate parses an HH:MM clock time and places it on the given date
func AddClockTimeToDate(date time.Time, clockTime string) (time.Time, error) {
	sourceTime, err := time.Parse("15:04", clockTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clockTime, err)
	}

	newDateTime := time.Date(date.Year(), date.Month(), date.Day(), sourceTime.Hour(), sourceTime.Minute(), 0, 0, date.Location())

	return newDateTime, nil
}
