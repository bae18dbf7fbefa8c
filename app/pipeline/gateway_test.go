package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobsift/jobsift/app/database"
	"github.com/jobsift/jobsift/app/normalize"
)

// fakeRepo is an in-memory JobRepository keyed by fingerprint.
type fakeRepo struct {
	records map[string]normalize.Record

	checkErr  error
	insertErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]normalize.Record)}
}

func (r *fakeRepo) CheckDuplicate(fingerprint string) (bool, *database.DuplicateRef, error) {
	if r.checkErr != nil {
		return false, nil, r.checkErr
	}
	if fingerprint == "" {
		return false, nil, nil
	}
	if existing, ok := r.records[fingerprint]; ok {
		return true, &database.DuplicateRef{Title: existing.Title, Company: existing.Company}, nil
	}
	return false, nil, nil
}

func (r *fakeRepo) InsertJob(record normalize.Record) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, ok := r.records[record.Fingerprint]; ok && record.Fingerprint != "" {
		return database.ErrDuplicate
	}
	r.records[record.Fingerprint] = record
	return nil
}

func (r *fakeRepo) GetJobs(limit, offset int) ([]database.Job, error) { return nil, nil }
func (r *fakeRepo) GetJobCount() (int, error)                         { return len(r.records), nil }
func (r *fakeRepo) GetCategoryCounts() ([]database.CategoryCount, error) {
	return nil, nil
}
func (r *fakeRepo) GetPlatformCounts() ([]database.CategoryCount, error) {
	return nil, nil
}

func newTestGateway(repo database.JobRepository) *Gateway {
	pinned := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	normalizer := normalize.NewNormalizerAt(func() time.Time { return pinned })
	return NewGateway(normalizer, repo)
}

func validFragment() normalize.RawFragment {
	return normalize.RawFragment{
		Title:          "QA Automation Engineer",
		Company:        "Acme Corp",
		Location:       "Makati City",
		URL:            "https://example.com/jobs/1",
		Qualifications: "3+ years of test automation experience with Selenium and Python",
		PostedPhrase:   "Posted 2 days ago",
		Platform:       "foundit",
		Keyword:        "qa",
	}
}

func TestGateway_Process_InsertsNewRecord(t *testing.T) {
	repo := newFakeRepo()
	gateway := newTestGateway(repo)

	outcome, err := gateway.Process(validFragment(), normalize.Rules{})

	require.NoError(t, err)
	assert.Equal(t, ResultInserted, outcome.Result)
	assert.Equal(t, "QA Automation Engineer", outcome.Record.Title)
	assert.Len(t, repo.records, 1)
}

func TestGateway_Process_SkipsDuplicate(t *testing.T) {
	repo := newFakeRepo()
	gateway := newTestGateway(repo)

	first, err := gateway.Process(validFragment(), normalize.Rules{})
	require.NoError(t, err)
	require.Equal(t, ResultInserted, first.Result)

	// same qualifications from a different company must be discarded
	second := validFragment()
	second.Title = "Senior QA Engineer"
	second.Company = "Beta Inc"

	outcome, err := gateway.Process(second, normalize.Rules{})

	require.NoError(t, err)
	assert.Equal(t, ResultDuplicate, outcome.Result)
	require.NotNil(t, outcome.Duplicate)
	assert.Equal(t, "QA Automation Engineer", outcome.Duplicate.Title)
	assert.Equal(t, "Acme Corp", outcome.Duplicate.Company)
	assert.Len(t, repo.records, 1)
}

func TestGateway_Process_RejectsJunkTitles(t *testing.T) {
	repo := newFakeRepo()
	gateway := newTestGateway(repo)

	titles := []string{
		"",
		"N/A",
		"Showing 1-20 of 532 results",
		"Search results for developer",
	}

	for _, title := range titles {
		frag := validFragment()
		frag.Title = title

		outcome, err := gateway.Process(frag, normalize.Rules{})

		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, outcome.Result, "title %q", title)
		assert.Equal(t, "unusable_title", outcome.Reason, "title %q", title)
	}

	assert.Empty(t, repo.records)
}

func TestGateway_Process_RejectsShortQualifications(t *testing.T) {
	repo := newFakeRepo()
	gateway := newTestGateway(repo)

	frag := validFragment()
	frag.Qualifications = "see below"

	outcome, err := gateway.Process(frag, normalize.Rules{})

	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, outcome.Result)
	assert.Equal(t, "short_qualifications", outcome.Reason)
	assert.Empty(t, repo.records)
}

func TestGateway_Process_LostInsertRace(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = database.ErrDuplicate
	gateway := newTestGateway(repo)

	outcome, err := gateway.Process(validFragment(), normalize.Rules{})

	require.NoError(t, err)
	assert.Equal(t, ResultDuplicate, outcome.Result)
}

func TestGateway_Process_StorageErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.checkErr = errors.New("connection refused")
	gateway := newTestGateway(repo)

	_, err := gateway.Process(validFragment(), normalize.Rules{})
	assert.Error(t, err)

	repo = newFakeRepo()
	repo.insertErr = errors.New("connection refused")
	gateway = newTestGateway(repo)

	_, err = gateway.Process(validFragment(), normalize.Rules{})
	assert.Error(t, err)
}
