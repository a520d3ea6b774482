package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/inkpost/internal/config"
	"github.com/dgallion1/inkpost/internal/site"
	"github.com/dgallion1/inkpost/internal/stats"
)

// Orchestrator queues site builds and runs them on a worker pool.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	library  *site.Library
	renderer *site.Renderer
	latency  *stats.Latency
	log      *slog.Logger
	cfg      config.Config

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once

	// mu guards closed and sends on queue.
	mu     sync.Mutex
	closed bool
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
// latency may be nil.
func NewOrchestrator(cfg config.Config, lib *site.Library, r *site.Renderer, latency *stats.Latency, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		library:  lib,
		renderer: r,
		latency:  latency,
		log:      log,
		cfg:      cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.library, o.renderer, o.log, o.cfg.OutputDir, o.cfg.MaxConcurrentRender, o.latency)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	o.stopOnce.Do(func() {
		o.mu.Lock()
		o.closed = true
		close(o.queue)
		o.mu.Unlock()

		if o.cancel != nil {
			o.cancel()
		}
		o.wg.Wait()
	})
}

// Submit queues a new job for processing. It fails once Stop has been called.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		job.SetStatus(StatusFailed, "shutting_down")
		return fmt.Errorf("pipeline is stopped")
	}
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
