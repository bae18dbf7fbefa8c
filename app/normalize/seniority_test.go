package normalize

import (
	"testing"
)

func TestSeniority_RuleOrder(t *testing.T) {
	tests := []struct {
		name     string
		in       SeniorityInput
		expected string
	}{
		{
			"internship in title",
			SeniorityInput{Title: "Software Engineering Internship"},
			SeniorityInternship,
		},
		{
			"internship outranks senior keyword",
			SeniorityInput{Title: "Senior Engineering Internship Program"},
			SeniorityInternship,
		},
		{
			"fresher label",
			SeniorityInput{Title: "Software Developer", Labels: []string{"Fresher"}},
			SeniorityEntry,
		},
		{
			"fresher label is exact, not substring",
			SeniorityInput{Title: "Software Developer", Labels: []string{"No freshers please"}},
			SeniorityNonEntry,
		},
		{
			"experience outranks senior keyword",
			SeniorityInput{
				Title:          "Senior Software Engineer",
				Qualifications: "Minimum 1 year experience required",
			},
			SeniorityEntry,
		},
		{
			"two or more years",
			SeniorityInput{Title: "Developer", Qualifications: "At least 2 years of experience"},
			SeniorityNonEntry,
		},
		{
			"range takes minimum bound",
			SeniorityInput{Title: "Developer", Qualifications: "5-15 years of experience"},
			SeniorityNonEntry,
		},
		{
			"plus notation",
			SeniorityInput{Title: "Developer", Qualifications: "3+ yrs required"},
			SeniorityNonEntry,
		},
		{
			"senior keyword without experience text",
			SeniorityInput{Title: "Lead Developer"},
			SeniorityNonEntry,
		},
		{
			"entry keyword",
			SeniorityInput{Title: "Developer", Qualifications: "Fresh graduate welcome"},
			SeniorityEntry,
		},
		{
			"extra entry keyword from overlay",
			SeniorityInput{
				Title:              "Associate Developer",
				ExtraEntryKeywords: []string{"associate"},
			},
			SeniorityEntry,
		},
		{
			"no signals defaults to non-entry",
			SeniorityInput{Title: "Software Developer"},
			SeniorityNonEntry,
		},
	}

	for _, tt := range tests {
		if got := Seniority(tt.in); got != tt.expected {
			t.Errorf("%s: Seniority() = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestMinimumExperienceYears(t *testing.T) {
	tests := []struct {
		text     string
		years    int
		found    bool
	}{
		{"5-15 years of experience", 5, true},
		{"3+ years required", 3, true},
		{"2 to 4 years", 2, true},
		{"minimum 3 years", 3, true},
		{"at least 1 yr", 1, true},
		{"plenty of experience", 0, false},
	}

	for _, tt := range tests {
		years, found := minimumExperienceYears(tt.text)
		if found != tt.found || years != tt.years {
			t.Errorf("minimumExperienceYears(%q) = (%d, %v), expected (%d, %v)",
				tt.text, years, found, tt.years, tt.found)
		}
	}
}

func TestNormalizeSeniorityLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"Internship", SeniorityInternship},
		{"intern", SeniorityInternship},
		{"Entry level", SeniorityEntry},
		{"Entry-Level", SeniorityEntry},
		{"Fresher", SeniorityEntry},
		{"Mid-Senior level", SeniorityNonEntry},
		{"Associate", SeniorityNonEntry},
		{"Director", SeniorityNonEntry},
		{"", SeniorityNotSpecified},
		{"Not specified", SeniorityNotSpecified},
	}

	for _, tt := range tests {
		if got := NormalizeSeniorityLabel(tt.label); got != tt.expected {
			t.Errorf("NormalizeSeniorityLabel(%q) = %q, expected %q", tt.label, got, tt.expected)
		}
	}
}
