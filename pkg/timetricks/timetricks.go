package timetricks

import (
	"fmt"
	"math"
	"time"
)

const (
	dayFormat = "2006-01-02"

	// Day is the length of a calendar day without clock shifts.
	Day = 24 * time.Hour
)

// Midnight returns the start of t's calendar day. The result is always in UTC
// so that dates compare and hash by value.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date is shorthand for Midnight of a calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func SameDay(t time.Time, t2 time.Time) bool {
	return UniqueDay(t) == UniqueDay(t2)
}

// UniqueDay returns a string representation of t that is unique by the day.
// For instance, two seperate times on the same calendar day return identical
// strings.
func UniqueDay(t time.Time) string {
	return t.Format(dayFormat)
}

// ParseDay reads a date written by UniqueDay.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(dayFormat, s)
}

// YearDates lists every calendar date of year, January 1 first.
func YearDates(year int) []time.Time {
	start := Date(year, time.January, 1)
	end := Date(year+1, time.January, 1)
	dates := make([]time.Time, 0, 366)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// FromHours converts fractional hours into a time of day, rounded to the
// second and wrapped into [0, 24h).
func FromHours(hours float64) time.Duration {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0
	}
	d := time.Duration(math.Round(hours*3600)) * time.Second
	return Wrap(d)
}

// Wrap folds a time of day into [0, 24h).
func Wrap(d time.Duration) time.Duration {
	d %= Day
	if d < 0 {
		d += Day
	}
	return d
}

// Hour is the hour of the day that d falls in.
func Hour(d time.Duration) int {
	return int(d / time.Hour)
}

// Clock formats a time of day as 15:04:05. Fractions of a second are dropped.
func Clock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}

// SetClock places the wall clock time d on t's calendar date in loc.
func SetClock(t time.Time, d time.Duration, loc *time.Location) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc).Add(d)
}
