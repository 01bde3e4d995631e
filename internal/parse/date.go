package parse

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Slash dates are day-first, the way the
// rental shop records them.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02-01-06",
	"2 January 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Excel stores dates as days since 1899-12-30.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Date parses a date cell in loc. It reports false for empty or unparseable
// values instead of failing; callers treat those as missing.
func Date(raw string, loc *time.Location) (time.Time, bool) {
	s := Text(raw)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	// Serial dates from spreadsheets that were not formatted as dates.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial < 2958466 {
		whole := math.Floor(serial)
		t := excelEpoch.AddDate(0, 0, int(whole)).Add(time.Duration((serial - whole) * float64(24*time.Hour)))
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), true
	}
	return time.Time{}, false
}

// DatePtr is Date returning nil for missing values.
func DatePtr(raw string, loc *time.Location) *time.Time {
	t, ok := Date(raw, loc)
	if !ok {
		return nil
	}
	return &t
}

// Number parses a numeric cell, accepting a decimal comma. Empty, non-numeric
// and non-finite values are reported as missing.
func Number(raw string) (float64, bool) {
	s := Text(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
			v, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		}
		if err != nil {
			return 0, false
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NumberPtr is Number returning nil for missing values.
func NumberPtr(raw string) *float64 {
	v, ok := Number(raw)
	if !ok {
		return nil
	}
	return &v
}
