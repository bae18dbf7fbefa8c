package normalize

import (
	"strings"
	"time"
)

// Rules are the per-source knobs; sources without an overlay get the
// canonical zero value.
type Rules struct {
	// RemoteFallback is returned when no work-arrangement signal is found
	// ("" means the canonical On-site default).
	RemoteFallback string
	// ExtraEntryKeywords extends the entry-level keyword list.
	ExtraEntryKeywords []string
}

// Normalizer turns raw fragments into canonical records. All classification
// is deterministic; the only ambient input is the clock, injectable for
// tests.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewNormalizerAt pins the capture clock, for reproducible runs and tests.
func NewNormalizerAt(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Run assembles one canonical record from one raw fragment. It never fails:
// classifiers that find nothing return their documented fallback and the
// record is produced regardless. Validation (junk titles, short
// qualifications) is the gateway's job, not the normalizer's.
func (n *Normalizer) Run(frag RawFragment, rules Rules) Record {
	capturedAt := n.now()

	title := cleanText(frag.Title)
	qualifications := cleanText(frag.Qualifications)

	record := Record{
		Title:          title,
		Company:        cleanText(frag.Company),
		Location:       cleanText(frag.Location),
		URL:            strings.TrimSpace(frag.URL),
		Platform:       strings.TrimSpace(frag.Platform),
		Keyword:        strings.TrimSpace(frag.Keyword),
		Qualifications: qualifications,
		ScrapedAt:      capturedAt,
	}

	record.Category = Category(title)
	record.Seniority = n.classifySeniority(frag, title, qualifications, rules)
	record.RemoteOption = RemoteOption(title, record.Location, qualifications, rules.RemoteFallback)
	record.EmploymentType = EmploymentType(title + " " + qualifications)
	record.Technologies = Technologies(title + " " + qualifications)
	record.Salary = Salary(frag.SalaryText)
	record.Fingerprint = Fingerprint(qualifications)

	if phrase := strings.TrimSpace(frag.PostedPhrase); phrase != "" && !strings.EqualFold(phrase, "N/A") {
		record.PostedDate = PostedDate(phrase, capturedAt)
	}

	return record
}

// classifySeniority prefers the platform's own label when the board exposes
// one; the rule cascade covers everything else, and also rescues a native
// label that normalized to "Not specified".
func (n *Normalizer) classifySeniority(frag RawFragment, title, qualifications string, rules Rules) string {
	if frag.NativeSeniority != "" {
		if level := NormalizeSeniorityLabel(frag.NativeSeniority); level != SeniorityNotSpecified {
			return level
		}
	}

	return Seniority(SeniorityInput{
		Title:              title,
		Qualifications:     qualifications,
		Labels:             frag.Labels,
		ExtraEntryKeywords: rules.ExtraEntryKeywords,
	})
}

// cleanText collapses runs of whitespace (scraped text is full of non-breaking
// spaces and newline soup) and drops the boards' literal "N/A" placeholder.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	if strings.EqualFold(s, "N/A") {
		return ""
	}
	return s
}
