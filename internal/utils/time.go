package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDayLabel = "Jan 2"
	MinutesPerDay  = 24 * 60
)

// ParseDate parses a YYYY-MM-DD calendar date. The result is pinned to UTC so that
// day arithmetic never crosses a DST boundary.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, DateOnly(s), time.UTC)
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// DateOnly trims a stored date (possibly an ISO timestamp) down to YYYY-MM-DD.
func DateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

// DayLabel renders "Jan 2".
func DayLabel(t time.Time) string {
	return t.Format(layoutDayLabel)
}

// DateRangeLabel renders a city tab subtitle such as "Jan 1 - Jan 3".
// Unparseable dates are shown as given.
func DateRangeLabel(start, end string) string {
	return fmt.Sprintf("%s - %s", dateLabelOrRaw(start), dateLabelOrRaw(end))
}

func dateLabelOrRaw(v string) string {
	t, err := ParseDate(v)
	if err != nil {
		return strings.TrimSpace(v)
	}
	return DayLabel(t)
}

// ParseClock converts "HH:MM" (24h) into minutes after midnight. "24:00"
// is accepted as the end of the day.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("time out of range %q", s)
	}
	return h*60 + m, nil
}
