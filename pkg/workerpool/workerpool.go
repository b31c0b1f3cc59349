// Package workerpool runs a bounded set of goroutines over a batch of
// files, loading each one's text and handing it to a caller-supplied
// processing function — the pattern behind a bulk workspace scan, where
// per-file work is independent and embarrassingly
// parallel. Structurally this is the teacher's pkg/indexer worker pool
// almost unchanged: the same buffered job/result/error channel triple,
// the same Start/Submit/FinishSubmitting/Wait/Stop lifecycle, and the
// same util.GetOptimalPoolSize sizing rule — generalized from "read the
// file, run the TS/JS extractor" to "read the file, run a caller-supplied
// Process func" so pkg/scanner can plug in plain collection of each
// file's path and text instead of the teacher's symbol extractor.
package workerpool

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"sysmlkit/pkg/util"
)

// FileJob is one file to load and process.
type FileJob struct {
	FilePath string
	JobID    int
}

// FileResult is the outcome of successfully processing one file.
type FileResult struct {
	FilePath string
	Text     string
	JobID    int
}

// FileError reports a file that failed to load or process.
type FileError struct {
	FilePath string
	Error    error
}

// Process is called once per job, off the main goroutine, with the
// file's text already read from disk. Returning an error routes the job
// to the Errors channel instead of Results.
type Process func(filePath string, text string) error

// Pool manages a pool of goroutines for parallel file processing.
type Pool struct {
	numWorkers int
	jobs       chan FileJob
	results    chan FileResult
	errors     chan FileError
	wg         sync.WaitGroup
	process    Process
	logger     *slog.Logger

	ctx        context.Context
	cancel     context.CancelFunc
	started    atomic.Bool
	stopped    atomic.Bool
	jobsClosed atomic.Bool

	jobsSubmitted atomic.Int64
	jobsProcessed atomic.Int64
	jobsFailed    atomic.Int64
}

// New creates a worker pool. numWorkers of 0 auto-detects via
// util.GetOptimalPoolSize. process is called for every job; a nil
// logger falls back to slog.Default().
func New(numWorkers int, process Process, logger *slog.Logger) *Pool {
	if numWorkers == 0 {
		numWorkers = util.GetOptimalPoolSize()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan FileJob, numWorkers*2),
		results:    make(chan FileResult, numWorkers),
		errors:     make(chan FileError, numWorkers),
		process:    process,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start spawns the worker goroutines. Must be called before Submit.
func (p *Pool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		p.logger.Warn("workerpool: already started")
		return
	}
	p.logger.Debug("workerpool: starting", "workers", p.numWorkers)
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processJob(job)
		}
	}
}

func (p *Pool) processJob(job FileJob) {
	data, err := os.ReadFile(job.FilePath)
	if err != nil {
		p.jobsFailed.Add(1)
		p.errors <- FileError{FilePath: job.FilePath, Error: fmt.Errorf("failed to read file: %w", err)}
		return
	}

	text := string(data)
	if err := p.process(job.FilePath, text); err != nil {
		p.jobsFailed.Add(1)
		p.errors <- FileError{FilePath: job.FilePath, Error: err}
		return
	}

	p.jobsProcessed.Add(1)
	p.results <- FileResult{FilePath: job.FilePath, Text: text, JobID: job.JobID}
}

// Submit enqueues a job. Blocks if the jobs channel is full.
func (p *Pool) Submit(job FileJob) error {
	if p.stopped.Load() {
		return fmt.Errorf("workerpool: pool is stopped")
	}
	p.jobsSubmitted.Add(1)
	select {
	case <-p.ctx.Done():
		return fmt.Errorf("workerpool: pool cancelled")
	case p.jobs <- job:
		return nil
	}
}

// Results returns the channel of successfully processed files.
func (p *Pool) Results() <-chan FileResult { return p.results }

// Errors returns the channel of failed files.
func (p *Pool) Errors() <-chan FileError { return p.errors }

// FinishSubmitting closes the jobs channel. Idempotent.
func (p *Pool) FinishSubmitting() {
	if p.jobsClosed.CompareAndSwap(false, true) {
		close(p.jobs)
	}
}

// Wait blocks until every worker has exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Stop closes the jobs channel if needed, waits for workers to drain,
// then closes the result and error channels. Idempotent.
func (p *Pool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	p.FinishSubmitting()
	p.wg.Wait()
	close(p.results)
	close(p.errors)
	p.cancel()
}

// Stats reports the pool's current throughput counters.
type Stats struct {
	NumWorkers    int
	JobsSubmitted int64
	JobsProcessed int64
	JobsFailed    int64
	QueueLength   int
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	return Stats{
		NumWorkers:    p.numWorkers,
		JobsSubmitted: p.jobsSubmitted.Load(),
		JobsProcessed: p.jobsProcessed.Load(),
		JobsFailed:    p.jobsFailed.Load(),
		QueueLength:   len(p.jobs),
	}
}
