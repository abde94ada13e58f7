package main

import (
	"strings"
	"time"
)

// czechMonths maps genitive Czech month names, as WordPress renders dates,
// to month numbers.
var czechMonths = map[string]string{
	"ledna":     "01",
	"února":     "02",
	"března":    "03",
	"dubna":     "04",
	"května":    "05",
	"června":    "06",
	"července":  "07",
	"srpna":     "08",
	"září":      "09",
	"října":     "10",
	"listopadu": "11",
	"prosince":  "12",
}

// datetimeLayouts are tried in order against machine-readable datetime
// attributes.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDatetimeAttr normalizes a datetime attribute to YYYY-MM-DD. The
// calendar date is taken as written, regardless of the clock time or zone
// component in the input.
func ParseDatetimeAttr(attr string) (string, bool) {
	attr = strings.TrimSpace(attr)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, attr); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// ParseCzechDate converts a localized date like "5. dubna 2024" to ISO
// YYYY-MM-DD. Unparseable input falls back to the current date.
func ParseCzechDate(dateStr string) string {
	parts := strings.Fields(strings.TrimSpace(dateStr))
	if len(parts) >= 3 {
		day := strings.TrimSuffix(parts[0], ".")
		if len(day) == 1 {
			day = "0" + day
		}
		month, ok := czechMonths[parts[1]]
		if !ok {
			month = "01"
		}
		return parts[2] + "-" + month + "-" + day
	}

	if iso, ok := ParseDatetimeAttr(dateStr); ok {
		return iso
	}
	return time.Now().Format("2006-01-02")
}
