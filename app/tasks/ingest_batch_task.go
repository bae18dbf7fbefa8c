package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jobsift/jobsift/app/ingest"
	"github.com/jobsift/jobsift/app/pipeline"
	"github.com/jobsift/jobsift/app/sources"
)

// IngestBatchTask drains one inbox batch through the dedup-and-persist
// gateway. A storage failure on a single fragment is counted and logged but
// never aborts the remaining fragments; the whole task errors only when the
// batch itself cannot be read, which is worth a retry.
type IngestBatchTask struct {
	Task
	provider ingest.Provider
	gateway  *pipeline.Gateway
	overlays sources.Set
	onDone   func(RunCounters)
}

func NewIngestBatchTask(batch string, provider ingest.Provider, gateway *pipeline.Gateway,
	overlays sources.Set, onDone func(RunCounters)) *IngestBatchTask {
	return &IngestBatchTask{
		Task:     NewTask(TaskTypeIngestBatch, batch),
		provider: provider,
		gateway:  gateway,
		overlays: overlays,
		onDone:   onDone,
	}
}

func (t *IngestBatchTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fragments, err := t.provider.Read(t.Batch)
	if err != nil {
		return fmt.Errorf("failed to read batch: %w", err)
	}

	var counters RunCounters

	for _, frag := range fragments {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		counters.Processed++

		rules := t.overlays.RulesFor(frag.Platform)
		outcome, err := t.gateway.Process(frag, rules)
		if err != nil {
			// the fragment is dropped, not retried; the scraper will
			// redeliver it on its next run if it still matters
			slog.Error("Fragment persist failed",
				"batch", filepath.Base(t.Batch), "title", frag.Title, "error", err)
			counters.Failed++
			continue
		}

		switch outcome.Result {
		case pipeline.ResultInserted:
			counters.Inserted++
		case pipeline.ResultDuplicate:
			counters.Duplicates++
		case pipeline.ResultInvalid:
			counters.Invalid++
		}
	}

	if err := t.provider.Done(t.Batch); err != nil {
		return fmt.Errorf("failed to dispose of batch: %w", err)
	}

	slog.Info("Task completed",
		"type", "IngestBatch",
		"batch", filepath.Base(t.Batch),
		"duration", t.GetDuration(),
		"total", counters.Processed,
		"new", counters.Inserted,
		"duplicates", counters.Duplicates,
		"invalid", counters.Invalid,
		"failed", counters.Failed)

	if t.onDone != nil {
		t.onDone(counters)
	}

	return nil
}
