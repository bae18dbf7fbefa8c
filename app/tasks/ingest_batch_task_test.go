package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobsift/jobsift/app/database"
	"github.com/jobsift/jobsift/app/ingest"
	"github.com/jobsift/jobsift/app/normalize"
	"github.com/jobsift/jobsift/app/pipeline"
	"github.com/jobsift/jobsift/app/sources"
)

// MockProvider implements ingest.Provider for testing
type MockProvider struct {
	fragments []normalize.RawFragment
	readErr   error
	doneErr   error
	disposed  []string
}

var _ ingest.Provider = (*MockProvider)(nil)

func (m *MockProvider) Pending() ([]string, error) {
	return []string{"batch"}, nil
}

func (m *MockProvider) Read(path string) ([]normalize.RawFragment, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.fragments, nil
}

func (m *MockProvider) Done(path string) error {
	if m.doneErr != nil {
		return m.doneErr
	}
	m.disposed = append(m.disposed, path)
	return nil
}

// MockJobRepository implements database.JobRepository for testing
type MockJobRepository struct {
	fingerprints map[string]bool
	insertErr    error
}

var _ database.JobRepository = (*MockJobRepository)(nil)

func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{fingerprints: make(map[string]bool)}
}

func (m *MockJobRepository) CheckDuplicate(fingerprint string) (bool, *database.DuplicateRef, error) {
	if fingerprint != "" && m.fingerprints[fingerprint] {
		return true, &database.DuplicateRef{Title: "existing"}, nil
	}
	return false, nil, nil
}

func (m *MockJobRepository) InsertJob(record normalize.Record) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.fingerprints[record.Fingerprint] = true
	return nil
}

func (m *MockJobRepository) GetJobs(limit, offset int) ([]database.Job, error) { return nil, nil }
func (m *MockJobRepository) GetJobCount() (int, error)                         { return len(m.fingerprints), nil }
func (m *MockJobRepository) GetCategoryCounts() ([]database.CategoryCount, error) {
	return nil, nil
}
func (m *MockJobRepository) GetPlatformCounts() ([]database.CategoryCount, error) {
	return nil, nil
}

func newTestGateway(repo database.JobRepository) *pipeline.Gateway {
	pinned := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	return pipeline.NewGateway(normalize.NewNormalizerAt(func() time.Time { return pinned }), repo)
}

func TestIngestBatchTask_Execute(t *testing.T) {
	provider := &MockProvider{
		fragments: []normalize.RawFragment{
			{
				Title:          "QA Engineer",
				Qualifications: "3+ years of automation testing experience required",
				Platform:       "foundit",
			},
			{
				// duplicate of the first by qualifications
				Title:          "Senior QA Engineer",
				Qualifications: "3+ years of automation testing experience required",
				Platform:       "foundit",
			},
			{
				Title:          "Showing 20 results",
				Qualifications: "long enough qualifications text here",
				Platform:       "foundit",
			},
		},
	}

	var got RunCounters
	task := NewIngestBatchTask("batch", provider, newTestGateway(NewMockJobRepository()),
		sources.Set{}, func(c RunCounters) { got = c })
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if got.Processed != 3 {
		t.Errorf("Expected 3 processed, got %d", got.Processed)
	}
	if got.Inserted != 1 {
		t.Errorf("Expected 1 inserted, got %d", got.Inserted)
	}
	if got.Duplicates != 1 {
		t.Errorf("Expected 1 duplicate, got %d", got.Duplicates)
	}
	if got.Invalid != 1 {
		t.Errorf("Expected 1 invalid, got %d", got.Invalid)
	}

	if len(provider.disposed) != 1 {
		t.Errorf("Expected batch to be disposed, got %v", provider.disposed)
	}
}

func TestIngestBatchTask_Execute_ReadFailureIsRetryable(t *testing.T) {
	provider := &MockProvider{readErr: errors.New("disk error")}

	task := NewIngestBatchTask("batch", provider, newTestGateway(NewMockJobRepository()),
		sources.Set{}, nil)
	task.Start()

	if err := task.Execute(context.Background()); err == nil {
		t.Error("Expected error when the batch cannot be read")
	}
	if len(provider.disposed) != 0 {
		t.Error("Expected batch not to be disposed after a read failure")
	}
}

func TestIngestBatchTask_Execute_StorageFailureCounted(t *testing.T) {
	provider := &MockProvider{
		fragments: []normalize.RawFragment{
			{
				Title:          "Data Analyst",
				Qualifications: "advanced excel skills and sql knowledge required",
				Platform:       "linkedin",
			},
		},
	}

	repo := NewMockJobRepository()
	repo.insertErr = errors.New("connection refused")

	var got RunCounters
	task := NewIngestBatchTask("batch", provider, newTestGateway(repo),
		sources.Set{}, func(c RunCounters) { got = c })
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected per-fragment failure not to abort the batch, got %v", err)
	}
	if got.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", got.Failed)
	}
	if len(provider.disposed) != 1 {
		t.Error("Expected batch to be disposed despite the storage failure")
	}
}

func TestIngestBatchTask_Execute_CancelledContext(t *testing.T) {
	provider := &MockProvider{}

	task := NewIngestBatchTask("batch", provider, newTestGateway(NewMockJobRepository()),
		sources.Set{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := task.Execute(ctx); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
