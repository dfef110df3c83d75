package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/tasklit/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// DateString formats t as YYYY-MM-DD in loc.
func DateString(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// DaysBetween returns the number of calendar days from a to b, ignoring time of day.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// FormatDue renders a due date relative to now: "Today", "Tomorrow", "Overdue",
// or a short month/day label. Unparseable input is returned unchanged.
func FormatDue(dueDate string, now time.Time) string {
	due, err := ParseDate(dueDate, now.Location())
	if err != nil {
		return dueDate
	}
	switch diff := DaysBetween(now, due); {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Tomorrow"
	case diff < 0:
		return "Overdue"
	default:
		return due.Format("Jan 2")
	}
}

// FormatLongDate renders the header clock, e.g. "Thursday, October 30, 2025".
func FormatLongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
