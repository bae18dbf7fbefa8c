package normalize

import (
	"testing"
	"time"
)

var captureTime = time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestPostedDate_RelativePhrases(t *testing.T) {
	tests := []struct {
		phrase   string
		expected time.Time
	}{
		{"today", day(0)},
		{"Posted today", day(0)},
		{"Just posted", day(0)},
		{"just now", day(0)},
		{"yesterday", day(-1)},
		{"Posted yesterday", day(-1)},
		{"5 hours ago", day(0)},
		{"an hour ago", day(0)},
		{"Posted 3 days ago", day(-3)},
		{"1 day ago", day(-1)},
		{"posted 3d ago", day(-3)},
		{"2 weeks ago", day(-14)},
		{"1 week ago", day(-7)},
		{"1 month ago", day(-30)},
		{"3 months ago", day(-90)},
	}

	for _, tt := range tests {
		result := PostedDate(tt.phrase, captureTime)
		if result == nil {
			t.Errorf("PostedDate(%q) returned nil, expected %s", tt.phrase, tt.expected.Format("2006-01-02"))
			continue
		}
		if !result.Equal(tt.expected) {
			t.Errorf("PostedDate(%q) = %s, expected %s",
				tt.phrase, result.Format("2006-01-02"), tt.expected.Format("2006-01-02"))
		}
	}
}

func TestPostedDate_UnrecognizedPhraseFallsBackToCaptureDay(t *testing.T) {
	result := PostedDate("Posted eons ago", captureTime)
	if result == nil {
		t.Fatal("Expected capture day for unrecognized phrase, got nil")
	}
	if !result.Equal(day(0)) {
		t.Errorf("Expected capture day %s, got %s", day(0).Format("2006-01-02"), result.Format("2006-01-02"))
	}
}

func TestPostedDate_EmptyPhrase(t *testing.T) {
	if result := PostedDate("", captureTime); result != nil {
		t.Errorf("Expected nil for empty phrase, got %s", result.Format("2006-01-02"))
	}
	if result := PostedDate("   ", captureTime); result != nil {
		t.Errorf("Expected nil for whitespace phrase, got %s", result.Format("2006-01-02"))
	}
}

func TestPostedDate_ResultIsMidnight(t *testing.T) {
	result := PostedDate("Posted 2 days ago", captureTime)
	if result == nil {
		t.Fatal("Expected a date, got nil")
	}
	if result.Hour() != 0 || result.Minute() != 0 || result.Second() != 0 {
		t.Errorf("Expected midnight, got %s", result.Format(time.RFC3339))
	}
}

func TestLeadingDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"3 days ago", 3},
		{"posted 12 days ago", 12},
		{"posted 3d ago", 3},
		{"no numbers here", 0},
		{"", 0},
		{"42", 42},
	}

	for _, tt := range tests {
		if got := leadingDigits(tt.input); got != tt.expected {
			t.Errorf("leadingDigits(%q) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}
