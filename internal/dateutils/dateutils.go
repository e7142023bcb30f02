// Package dateutils provides common date operations used throughout the
// application. Obligation due dates are calendar dates with no time
// component; Day normalizes any time.Time to that convention.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

// CommonFormats is a list of standard formats to try when parsing dates
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutFull,
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate attempts to parse a date string using multiple common formats.
// The result is normalized to a calendar day.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return Day(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)

	re := regexp.MustCompile(`\s+`)
	dateStr = re.ReplaceAllString(dateStr, " ")

	return dateStr
}

// Day truncates a timestamp to its calendar day in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// DaysBetween returns the absolute number of whole calendar days between two dates.
func DaysBetween(a, b time.Time) int {
	d := Day(b).Sub(Day(a)).Hours() / 24
	if d < 0 {
		d = -d
	}
	return int(d)
}

// CompareDates compares two calendar dates and returns -1, 0 or 1.
func CompareDates(date1, date2 time.Time) int {
	d1, d2 := Day(date1), Day(date2)
	if d1.Before(d2) {
		return -1
	} else if d1.After(d2) {
		return 1
	}
	return 0
}

// AddMonths advances a calendar date by n months.
func AddMonths(date time.Time, n int) time.Time {
	return Day(date).AddDate(0, n, 0)
}

// AddWeeks advances a calendar date by n weeks.
func AddWeeks(date time.Time, n int) time.Time {
	return Day(date).AddDate(0, 0, 7*n)
}

// AddDays advances a calendar date by n days.
func AddDays(date time.Time, n int) time.Time {
	return Day(date).AddDate(0, 0, n)
}
