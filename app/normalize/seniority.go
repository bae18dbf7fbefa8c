package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Seniority levels. Platform-native labels are richer (LinkedIn has
// "Mid-Senior level", "Associate", ...) but always collapse to this set.
const (
	SeniorityInternship   = "Internship"
	SeniorityEntry        = "Entry Level"
	SeniorityNonEntry     = "Non-Entry Level"
	SeniorityNotSpecified = "Not specified"
)

var seniorSeniorityKeywords = []string{
	"senior", "lead", "principal", "manager", "supervisor", "head of",
	"director", "architect",
}

var entrySeniorityKeywords = []string{
	"fresh graduate", "new graduate", "entry level", "junior developer",
	"junior engineer",
}

// experiencePatterns capture the minimum required years in their first
// submatch group: "5-15 years", "5+ years", "5 to 10 years",
// "minimum 3 years", "at least 2 years".
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)-(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(\d+)\+\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(\d+)\s*to\s*(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`minimum\s*(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`at\s*least\s*(\d+)\s*(?:years?|yrs?)`),
}

// SeniorityInput carries everything the classifier looks at. Labels is the
// set of isolated, label-like fragments pulled off the page (chips, badges),
// checked for an exact "Fresher" match.
type SeniorityInput struct {
	Title          string
	Qualifications string
	Labels         []string
	// ExtraEntryKeywords extends the entry-indicating keyword list for
	// sources whose vocabulary differs (e.g. "associate").
	ExtraEntryKeywords []string
}

// seniorityRule pairs a predicate with its resulting level. Rules are
// evaluated top to bottom, first match wins, so the priority order is
// explicit and testable per rule.
type seniorityRule struct {
	name  string
	match func(in SeniorityInput, text string) (string, bool)
}

var seniorityRules = []seniorityRule{
	{"internship", func(in SeniorityInput, text string) (string, bool) {
		if strings.Contains(text, "internship") {
			return SeniorityInternship, true
		}
		return "", false
	}},
	{"fresher_label", func(in SeniorityInput, text string) (string, bool) {
		for _, label := range in.Labels {
			if strings.EqualFold(strings.TrimSpace(label), "fresher") {
				return SeniorityEntry, true
			}
		}
		return "", false
	}},
	// Explicit experience requirements are authoritative over loose keyword
	// hits, so this rule outranks the keyword rules below: "Senior Software
	// Engineer, minimum 1 year" classifies as Entry Level.
	{"experience_years", func(in SeniorityInput, text string) (string, bool) {
		minYears, ok := minimumExperienceYears(text)
		if !ok {
			return "", false
		}
		if minYears >= 2 {
			return SeniorityNonEntry, true
		}
		return SeniorityEntry, true
	}},
	{"senior_keyword", func(in SeniorityInput, text string) (string, bool) {
		for _, kw := range seniorSeniorityKeywords {
			if strings.Contains(text, kw) {
				return SeniorityNonEntry, true
			}
		}
		return "", false
	}},
	{"entry_keyword", func(in SeniorityInput, text string) (string, bool) {
		for _, kw := range entrySeniorityKeywords {
			if strings.Contains(text, kw) {
				return SeniorityEntry, true
			}
		}
		for _, kw := range in.ExtraEntryKeywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				return SeniorityEntry, true
			}
		}
		return "", false
	}},
}

// Seniority classifies title + qualifications text into one of the three
// substantive seniority buckets.
func Seniority(in SeniorityInput) string {
	text := strings.ToLower(in.Title + " " + in.Qualifications)

	for _, rule := range seniorityRules {
		if level, ok := rule.match(in, text); ok {
			return level
		}
	}

	return SeniorityNonEntry
}

func minimumExperienceYears(text string) (int, bool) {
	for _, pattern := range experiencePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			years, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return years, true
		}
	}
	return 0, false
}

// NormalizeSeniorityLabel reduces a platform-native seniority label to the
// three-way set. Anything that is not clearly an internship or entry level
// is Non-Entry Level; a missing label stays unspecified until the rule-based
// classifier runs.
func NormalizeSeniorityLabel(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	switch {
	case lower == "" || lower == strings.ToLower(SeniorityNotSpecified):
		return SeniorityNotSpecified
	case strings.Contains(lower, "intern"):
		return SeniorityInternship
	case strings.Contains(lower, "entry level"), strings.Contains(lower, "entry-level"),
		strings.Contains(lower, "fresher"):
		return SeniorityEntry
	default:
		return SeniorityNonEntry
	}
}
