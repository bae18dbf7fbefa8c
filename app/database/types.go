package database

import (
	"time"
)

// Job is one stored canonical job record.
type Job struct {
	ID             string // Database UUID
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
	Technologies   string
	Qualifications string
	Fingerprint    string
	Category       string
	ScrapedAt      time.Time
	CreatedAt      time.Time
}

// DuplicateRef identifies the first-seen record owning a fingerprint, used
// when reporting a skipped duplicate.
type DuplicateRef struct {
	Title   string
	Company string
}

// CategoryCount is one row of the per-category stats breakdown.
type CategoryCount struct {
	Category string
	Count    int
}
