package normalize

import (
	"regexp"
	"strings"
)

// Employment types.
const (
	EmploymentFullTime     = "Full-time"
	EmploymentPartTime     = "Part-time"
	EmploymentContract     = "Contract"
	EmploymentFreelance    = "Freelance"
	EmploymentNotSpecified = "Not specified"
)

// EmploymentType detects the employment arrangement from free text.
func EmploymentType(text string) string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "full time"), strings.Contains(lower, "full-time"):
		return EmploymentFullTime
	case strings.Contains(lower, "part time"), strings.Contains(lower, "part-time"):
		return EmploymentPartTime
	case strings.Contains(lower, "contract"):
		return EmploymentContract
	case strings.Contains(lower, "freelance"):
		return EmploymentFreelance
	}

	return EmploymentNotSpecified
}

// salaryPatterns match the salary notations seen on Philippine job boards:
// peso sign, "PHP 50,000", and dollar amounts, each with an optional range.
var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`₱[\d,]+(?:\s*-\s*₱[\d,]+)?`),
	regexp.MustCompile(`(?i)PHP\s*[\d,]+(?:\s*-\s*PHP\s*[\d,]+)?`),
	regexp.MustCompile(`\$[\d,]+(?:\s*-\s*\$[\d,]+)?`),
}

// Salary extracts the first recognizable salary expression from the raw
// salary blob, or returns the trimmed blob itself when it is short enough to
// already be a salary (some boards deliver the bare figure). Returns "" when
// nothing usable is present.
func Salary(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, pattern := range salaryPatterns {
		if m := pattern.FindString(raw); m != "" {
			return m
		}
	}

	if len(raw) <= 60 {
		return raw
	}
	return ""
}
