package database

import (
	"github.com/jobsift/jobsift/app/normalize"
)

// JobRepository is the storage collaborator boundary for the dedup-and-persist
// gateway and the HTTP API.
type JobRepository interface {
	// CheckDuplicate reports whether a record with this fingerprint is
	// already stored, and if so which one.
	CheckDuplicate(fingerprint string) (bool, *DuplicateRef, error)

	// InsertJob stores one canonical record. It returns ErrDuplicate when the
	// fingerprint uniqueness constraint rejects the insert (a concurrent
	// writer won the race).
	InsertJob(record normalize.Record) error

	GetJobs(limit, offset int) ([]Job, error)
	GetJobCount() (int, error)
	GetCategoryCounts() ([]CategoryCount, error)
	GetPlatformCounts() ([]CategoryCount, error)
}
