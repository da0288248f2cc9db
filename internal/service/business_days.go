package service

import (
	"strconv"
	"strings"
	"time"
)

// BusinessDays counts the days in [start, end] inclusive whose weekday is
// not Saturday or Sunday. Both bounds are reduced to UTC calendar dates
// first so local time-of-day offsets cannot shift the range. Returns 0
// when start is after end.
func BusinessDays(start, end time.Time) int {
	from := toUTCDate(start)
	to := toUTCDate(end)
	if from.After(to) {
		return 0
	}

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// PrefillDiasHabiles fills the business-day override only when the stored
// value is empty or zero. A non-zero value, whether computed earlier or
// typed by the user, is never overwritten; the fill is one-directional
// and idempotent.
func PrefillDiasHabiles(current string, start, end time.Time) string {
	if !diasHabilesEmpty(current) {
		return current
	}
	return strconv.Itoa(BusinessDays(start, end))
}

func diasHabilesEmpty(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	n, err := strconv.Atoi(trimmed)
	return err == nil && n == 0
}

func toUTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
