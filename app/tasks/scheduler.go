package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jobsift/jobsift/app/cfg"
	"github.com/jobsift/jobsift/app/ingest"
	"github.com/jobsift/jobsift/app/pipeline"
	"github.com/jobsift/jobsift/app/sources"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Scheduler polls the ingest provider for pending batches and fans them out
// to a worker pool. A batch stays marked in-flight from enqueue until its
// task finishes, so a slow batch is never enqueued twice.
type Scheduler struct {
	provider ingest.Provider
	gateway  *pipeline.Gateway
	overlays sources.Set

	interval    time.Duration
	workerCount int

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	taskQueue chan TaskInterface

	mu       sync.Mutex
	inFlight map[string]bool
	counters RunCounters
}

func NewScheduler(provider ingest.Provider, gateway *pipeline.Gateway,
	overlays sources.Set) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		provider:    provider,
		gateway:     gateway,
		overlays:    overlays,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
		inFlight:    make(map[string]bool),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueuePendingBatches()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueuePendingBatches()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// Counters returns a snapshot of the accumulated run counters.
func (s *Scheduler) Counters() RunCounters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}

func (s *Scheduler) enqueuePendingBatches() {
	batches, err := s.provider.Pending()
	if err != nil {
		slog.Warn("Failed to list pending batches", "error", err)
		return
	}
	if len(batches) == 0 {
		slog.Debug("No pending batches found")
		return
	}

	slog.Debug("Scheduling pending batches", "count", len(batches))

	for _, batch := range batches {
		if !s.markInFlight(batch) {
			slog.Debug("Batch already in flight, skipping", "batch", batch)
			continue
		}

		task := NewIngestBatchTask(batch, s.provider, s.gateway, s.overlays, s.accumulate)
		if err := s.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue IngestBatchTask", "batch", batch, "error", err)
			s.clearInFlight(batch)
		}
	}
}

func (s *Scheduler) markInFlight(batch string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[batch] {
		return false
	}
	s.inFlight[batch] = true
	return true
}

func (s *Scheduler) clearInFlight(batch string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, batch)
}

func (s *Scheduler) accumulate(c RunCounters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters.Processed += c.Processed
	s.counters.Inserted += c.Inserted
	s.counters.Duplicates += c.Duplicates
	s.counters.Invalid += c.Invalid
	s.counters.Failed += c.Failed
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err == nil {
		s.clearInFlight(task.GetBatch())
		return
	}

	slog.Error("Worker task execution failed", "worker_id", workerID,
		"type", string(task.GetType()), "id", task.GetID(),
		"retry_count", task.GetRetryCount(), "error", err)

	if !task.CanRetry() {
		slog.Error("Task failed after maximum retries",
			"type", string(task.GetType()), "id", task.GetID(),
			"retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(),
			"last_error", err)
		s.clearInFlight(task.GetBatch())
		return
	}

	task.IncrementRetryCount()
	retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
	if retryDelay > 30*time.Second {
		retryDelay = 30 * time.Second
	}

	slog.Warn("Task retry scheduled",
		"type", string(task.GetType()), "batch", task.GetBatch(),
		"retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(),
		"delay", retryDelay.String())

	go func() {
		time.Sleep(retryDelay)
		select {
		case <-s.ctx.Done():
			slog.Debug("Scheduler stopped, skipping task retry",
				"type", string(task.GetType()), "id", task.GetID())
		default:
			if retryErr := s.EnqueueTask(task); retryErr != nil {
				slog.Error("Failed to re-enqueue task for retry",
					"type", string(task.GetType()), "id", task.GetID(),
					"retry_count", task.GetRetryCount(), "error", retryErr)
				s.clearInFlight(task.GetBatch())
			}
		}
	}()
}
