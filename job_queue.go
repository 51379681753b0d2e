package lookupdest

import (
	"context"
	"sync"
	"time"
)

// JobQueue runs jobs on a fixed pool of worker goroutines. Jobs are
// independent and unordered; a panicking job is logged and does not take
// its worker down.
type JobQueue struct {
	jobs    chan Job
	workers int
	metrics MetricsCollector

	mu       sync.Mutex
	ctx      context.Context
	started  bool
	closed   bool
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewJobQueue creates a queue with the given worker count and capacity.
// Non-positive values fall back to the configuration defaults.
func NewJobQueue(workers, size int, metrics MetricsCollector) *JobQueue {
	if workers <= 0 {
		workers = DEFAULT_LOOKUP_WORKERS
	}
	if size <= 0 {
		size = DEFAULT_LOOKUP_QUEUE_SIZE
	}
	return &JobQueue{
		jobs:     make(chan Job, size),
		workers:  workers,
		metrics:  metrics,
		shutdown: make(chan struct{}),
	}
}

// Start launches the workers. They exit when ctx is cancelled or Stop is called.
func (q *JobQueue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	q.ctx = ctx
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.runWorker(ctx)
	}
}

// Add schedules a job without blocking. It returns ErrQueueFull when the
// queue is at capacity and ErrQueueClosed after Stop or once the Start
// context is done, since no worker would ever run the job.
func (q *JobQueue) Add(job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || (q.ctx != nil && q.ctx.Err() != nil) {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- job:
		if q.metrics != nil {
			q.metrics.SetQueuedJobs(len(q.jobs))
		}
		return nil
	default:
		if q.metrics != nil {
			q.metrics.IncrementError("queue_full")
		}
		return ErrQueueFull
	}
}

// Stop refuses new jobs and waits for the workers to finish the job they
// are running. Jobs still queued are dropped.
func (q *JobQueue) Stop() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.shutdown)
	q.mu.Unlock()
	q.wg.Wait()
}

// Len returns the number of jobs waiting to run.
func (q *JobQueue) Len() int {
	return len(q.jobs)
}

func (q *JobQueue) runWorker(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.shutdown:
			return
		case job := <-q.jobs:
			if q.metrics != nil {
				q.metrics.SetQueuedJobs(len(q.jobs))
			}
			q.run(job)
		}
	}
}

func (q *JobQueue) run(job Job) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Job %q panicked: %v", job.Name(), r)
			if q.metrics != nil {
				q.metrics.IncrementError("job_panic")
			}
		}
	}()
	job.RunJob()
	if elapsed := time.Since(start); elapsed > slowJobThreshold {
		log.Warnf("Job %q took %v", job.Name(), elapsed)
	}
}
