package normalize

import (
	"time"
)

// Raw fragment and canonical record types

// RawFragment is one unnormalized job listing as delivered by a scraping
// collaborator. It exists only for the duration of one normalization attempt.
type RawFragment struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	URL            string `json:"url"`
	Qualifications string `json:"qualifications"`
	PostedPhrase   string `json:"posted_phrase"` // e.g. "Posted 3 days ago"
	SalaryText     string `json:"salary_text"`
	Platform       string `json:"platform"`
	Keyword        string `json:"keyword"`

	// Labels holds isolated label-like fragments from the page (chips,
	// badges) such as Foundit's standalone "Fresher" span.
	Labels []string `json:"labels,omitempty"`
	// NativeSeniority is the platform's own seniority label where the board
	// exposes one (LinkedIn's "Mid-Senior level" and friends).
	NativeSeniority string `json:"native_seniority,omitempty"`
}

// Record is the canonical, classified, fingerprinted job record ready for
// storage. Created once per successfully normalized fragment; immutable
// after creation.
type Record struct {
	Title          string
	Company        string
	Location       string
	URL            string
	EmploymentType string
	RemoteOption   string
	PostedDate     *time.Time
	Platform       string
	Keyword        string
	Seniority      string
	Salary         string
	Technologies   string // sorted, comma-joined labels; empty when none found
	Qualifications string
	Fingerprint    string // md5 hex of trimmed qualifications; empty iff qualifications empty
	Category       string
	ScrapedAt      time.Time
}
