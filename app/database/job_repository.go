package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jobsift/jobsift/app/normalize"
)

// ErrDuplicate is returned when the fingerprint uniqueness constraint rejects
// an insert. The pipeline's own duplicate check runs first, but two workers
// can both observe "not present" for the same fingerprint; the constraint is
// the authoritative guarantee and this error is how the loser finds out.
var ErrDuplicate = errors.New("duplicate qualifications fingerprint")

// PostgresJobRepository handles database operations for scraped jobs.
type PostgresJobRepository struct {
	db *DB
}

var _ JobRepository = (*PostgresJobRepository)(nil)

func NewJobRepository(db *DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// CheckDuplicate looks up the first-seen record holding the given
// fingerprint. An empty fingerprint never matches anything: records without
// qualifications text are not deduplicable.
func (r *PostgresJobRepository) CheckDuplicate(fingerprint string) (bool, *DuplicateRef, error) {
	if fingerprint == "" {
		return false, nil, nil
	}

	var ref DuplicateRef
	err := r.db.QueryRow(`
		SELECT job_title, company_name FROM scraped_jobs
		WHERE qualifications_hash = $1
		LIMIT 1
	`, fingerprint).Scan(&ref.Title, &ref.Company)
	if err == sql.ErrNoRows {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("failed to check duplicate: %w", err)
	}

	return true, &ref, nil
}

// InsertJob stores one canonical record. The insert is all-or-nothing; a
// unique violation on qualifications_hash surfaces as ErrDuplicate.
func (r *PostgresJobRepository) InsertJob(record normalize.Record) error {
	_, err := r.db.Exec(`
		INSERT INTO scraped_jobs (
			job_title, company_name, location, job_url, employment_type,
			remote_option, posted_date, platform, keyword, seniority_level,
			salary, technologies, qualifications, qualifications_hash,
			category, scraped_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		record.Title, record.Company, record.Location, record.URL,
		record.EmploymentType, record.RemoteOption, record.PostedDate,
		record.Platform, record.Keyword, record.Seniority,
		nullable(record.Salary), nullable(record.Technologies),
		record.Qualifications, nullable(record.Fingerprint),
		record.Category, record.ScrapedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert job: %w", err)
	}

	return nil
}

// GetJobs returns stored jobs, newest first.
func (r *PostgresJobRepository) GetJobs(limit, offset int) ([]Job, error) {
	rows, err := r.db.Query(`
		SELECT id, job_title, company_name, location, COALESCE(job_url, ''),
		       COALESCE(employment_type, ''), COALESCE(remote_option, ''),
		       posted_date, COALESCE(platform, ''), COALESCE(keyword, ''),
		       COALESCE(seniority_level, ''), COALESCE(salary, ''),
		       COALESCE(technologies, ''), COALESCE(qualifications, ''),
		       COALESCE(qualifications_hash, ''), COALESCE(category, ''),
		       scraped_at, created_at
		FROM scraped_jobs
		ORDER BY scraped_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		err := rows.Scan(
			&job.ID, &job.Title, &job.Company, &job.Location, &job.URL,
			&job.EmploymentType, &job.RemoteOption, &job.PostedDate,
			&job.Platform, &job.Keyword, &job.Seniority, &job.Salary,
			&job.Technologies, &job.Qualifications, &job.Fingerprint,
			&job.Category, &job.ScrapedAt, &job.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}

	return jobs, nil
}

// GetJobCount returns the total number of stored jobs.
func (r *PostgresJobRepository) GetJobCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM scraped_jobs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get job count: %w", err)
	}
	return count, nil
}

// GetCategoryCounts returns the per-category breakdown, largest first.
func (r *PostgresJobRepository) GetCategoryCounts() ([]CategoryCount, error) {
	return r.countsBy("category")
}

// GetPlatformCounts returns the per-platform breakdown, largest first.
func (r *PostgresJobRepository) GetPlatformCounts() ([]CategoryCount, error) {
	return r.countsBy("platform")
}

func (r *PostgresJobRepository) countsBy(column string) ([]CategoryCount, error) {
	// column is one of two compile-time constants, never user input
	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT COALESCE(%s, ''), COUNT(*)
		FROM scraped_jobs
		GROUP BY 1
		ORDER BY 2 DESC
	`, column))
	if err != nil {
		return nil, fmt.Errorf("failed to get %s counts: %w", column, err)
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating count rows: %w", err)
	}

	return counts, nil
}

// nullable maps "" to NULL so the partial unique index on
// qualifications_hash only constrains real fingerprints.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
