package normalize

import (
	"strconv"
	"strings"
	"time"
)

// PostedDate converts a relative posted-date phrase ("Posted 3 days ago",
// "today", "2 weeks ago") into an absolute calendar date, evaluated against
// the capture time. Rules are checked in order; the first match wins.
// An unrecognized phrase yields the capture date rather than an error: every
// source this pipeline has seen uses "today"-equivalent phrasing for fresh
// postings, so falling back keeps those records instead of dropping them.
// An empty phrase yields nil.
//
// Months are a fixed 30 days, not calendar months. Reproducibility of stored
// dates across reruns matters more than calendar accuracy here.
func PostedDate(phrase string, capturedAt time.Time) *time.Time {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return nil
	}

	day := time.Date(capturedAt.Year(), capturedAt.Month(), capturedAt.Day(), 0, 0, 0, 0, capturedAt.Location())

	switch {
	case strings.Contains(phrase, "today"),
		strings.Contains(phrase, "just posted"),
		strings.Contains(phrase, "just now"):
		return &day
	case strings.Contains(phrase, "yesterday"):
		d := day.AddDate(0, 0, -1)
		return &d
	case strings.Contains(phrase, "hour"):
		// hours are not distinguished at day granularity
		return &day
	case strings.Contains(phrase, "day"):
		d := day.AddDate(0, 0, -leadingDigits(phrase))
		return &d
	case strings.Contains(phrase, "week"):
		d := day.AddDate(0, 0, -7*leadingDigits(phrase))
		return &d
	case strings.Contains(phrase, "month"):
		d := day.AddDate(0, 0, -30*leadingDigits(phrase))
		return &d
	}

	return &day
}

// leadingDigits extracts the first run of digits from the phrase, tolerating
// adjacent non-digit characters ("posted 3d ago" -> 3). Returns 0 when the
// phrase carries no number at all.
func leadingDigits(s string) int {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(s[start:])
		return n
	}
	return 0
}
