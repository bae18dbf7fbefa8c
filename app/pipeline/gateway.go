package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jobsift/jobsift/app/database"
	"github.com/jobsift/jobsift/app/normalize"
)

// Outcome of processing one fragment through the gateway.
type Result string

const (
	ResultInserted  Result = "inserted"
	ResultDuplicate Result = "duplicate"
	ResultInvalid   Result = "invalid"
)

type Outcome struct {
	Result Result
	Record normalize.Record
	// Reason explains invalid outcomes ("unusable_title",
	// "short_qualifications").
	Reason string
	// Duplicate identifies the first-seen record when Result is
	// ResultDuplicate.
	Duplicate *database.DuplicateRef
}

// Qualifications shorter than this are page-extraction noise, not real
// descriptions, and are dropped before they reach storage.
const minQualificationsLength = 20

// junkTitleWords mark titles scraped off a search-results page instead of a
// job-detail page.
var junkTitleWords = []string{"showing", "results", "search", "found"}

// Gateway validates, normalizes and persists raw fragments, discarding
// records whose qualifications fingerprint is already stored. Duplicates are
// discarded, never merged: the first-seen record wins.
type Gateway struct {
	normalizer *normalize.Normalizer
	repo       database.JobRepository
}

func NewGateway(normalizer *normalize.Normalizer, repo database.JobRepository) *Gateway {
	return &Gateway{normalizer: normalizer, repo: repo}
}

// Process runs one fragment end to end. Invalid fragments and duplicates are
// reported in the outcome, not as errors; an error means the storage
// collaborator failed and the record was not persisted. Nothing here is
// fatal to the surrounding run; callers move on to the next fragment.
func (g *Gateway) Process(frag normalize.RawFragment, rules normalize.Rules) (Outcome, error) {
	if reason, ok := validate(frag); !ok {
		slog.Debug("Fragment rejected",
			"reason", reason, "title", frag.Title, "platform", frag.Platform)
		return Outcome{Result: ResultInvalid, Reason: reason}, nil
	}

	record := g.normalizer.Run(frag, rules)

	isDuplicate, ref, err := g.repo.CheckDuplicate(record.Fingerprint)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to check for duplicate: %w", err)
	}
	if isDuplicate {
		slog.Info("Duplicate job skipped (same qualifications)",
			"title", record.Title, "company", record.Company,
			"original_title", ref.Title, "original_company", ref.Company)
		return Outcome{Result: ResultDuplicate, Record: record, Duplicate: ref}, nil
	}

	if err := g.repo.InsertJob(record); err != nil {
		// a concurrent worker can win the race between check and insert;
		// the unique index turns that into ErrDuplicate, not a failure
		if errors.Is(err, database.ErrDuplicate) {
			slog.Info("Duplicate job skipped (lost insert race)",
				"title", record.Title, "company", record.Company)
			return Outcome{Result: ResultDuplicate, Record: record}, nil
		}
		return Outcome{}, fmt.Errorf("failed to persist job: %w", err)
	}

	slog.Info("Saved new job",
		"title", record.Title, "company", record.Company,
		"category", record.Category, "platform", record.Platform)
	if record.Technologies != "" {
		slog.Debug("Technologies extracted",
			"title", record.Title, "technologies", record.Technologies)
	}

	return Outcome{Result: ResultInserted, Record: record}, nil
}

func validate(frag normalize.RawFragment) (string, bool) {
	title := strings.ToLower(strings.TrimSpace(frag.Title))
	if title == "" || title == "n/a" {
		return "unusable_title", false
	}
	for _, word := range junkTitleWords {
		if strings.Contains(title, word) {
			return "unusable_title", false
		}
	}

	if len(strings.TrimSpace(frag.Qualifications)) < minQualificationsLength {
		return "short_qualifications", false
	}

	return "", true
}
