// Package fridge implements the bounded reusable worker pool that executes
// submitted upcall tasks asynchronously.
//
// The pool accepts a function and guarantees at-most-one asynchronous
// invocation on a worker goroutine if accepted, or rejects synchronously
// (saturated, not running). Work accepted before Stop is still drained;
// there is no cancellation of accepted work.
//
// A backend expecting to shoot out lots of upcalls can size its own fridge
// several workers wide; fridges are independent and cheap.
package fridge

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/marmos91/upcalld/internal/logger"
	"github.com/marmos91/upcalld/pkg/status"
)

// WorkFunc is a unit of work executed on a worker goroutine. The context is
// the pool's run context; it is not cancelled by Stop for already-accepted
// work.
type WorkFunc func(ctx context.Context)

// Submission rejection reasons. These are the only errors Submit returns.
var (
	// ErrSaturated indicates the submission queue is full.
	ErrSaturated = errors.New("fridge: queue saturated")

	// ErrNotRunning indicates the fridge was not started or was stopped.
	ErrNotRunning = errors.New("fridge: not running")
)

// ErrnoOf maps a Submit rejection to the POSIX-style error domain consumed
// by the status bridge.
func ErrnoOf(err error) status.Errno {
	switch {
	case err == nil:
		return status.ErrnoSuccess
	case errors.Is(err, ErrSaturated):
		return status.ErrnoAgain
	case errors.Is(err, ErrNotRunning):
		return status.ErrnoPipe
	default:
		return status.ErrnoInvalid
	}
}

// Config holds configuration for a fridge.
type Config struct {
	// Workers is the number of concurrent worker goroutines.
	// Default: 4
	Workers int `mapstructure:"workers" yaml:"workers"`

	// QueueSize is the maximum number of accepted, not yet executing tasks.
	// Default: 1024
	QueueSize int `mapstructure:"queue_size" yaml:"queue_size"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:   4,
		QueueSize: 1024,
	}
}

// Fridge is a bounded pool of reusable worker goroutines.
type Fridge struct {
	queue chan WorkFunc

	workers   int
	wg        sync.WaitGroup
	stopCh    chan struct{}
	stoppedCh chan struct{}

	mu        sync.Mutex
	started   bool
	stopping  bool
	pending   int
	completed int
}

// New creates a fridge. Call Start before submitting work.
func New(cfg Config) *Fridge {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}

	return &Fridge{
		queue:     make(chan WorkFunc, cfg.QueueSize),
		workers:   cfg.Workers,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Start spins up the worker goroutines. Idempotent.
func (f *Fridge) Start(ctx context.Context) {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return
	}
	f.started = true
	f.mu.Unlock()

	logger.Info("Starting fridge", "workers", f.workers, "queue", cap(f.queue))

	for i := 0; i < f.workers; i++ {
		f.wg.Add(1)
		go f.worker(ctx, i)
	}

	go func() {
		f.wg.Wait()
		close(f.stoppedCh)
	}()
}

// Stop shuts the fridge down, draining already-accepted work. New
// submissions are rejected as soon as Stop is entered. Returns once all
// workers exit or the timeout elapses.
func (f *Fridge) Stop(timeout time.Duration) {
	f.mu.Lock()
	if !f.started || f.stopping {
		f.stopping = true
		f.mu.Unlock()
		return
	}
	f.stopping = true
	f.mu.Unlock()

	logger.Info("Stopping fridge", "pending", f.Pending())

	close(f.stopCh)

	select {
	case <-f.stoppedCh:
		logger.Info("Fridge stopped")
	case <-time.After(timeout):
		logger.Warn("Fridge stop timed out", "pending", f.Pending())
	}
}

// Submit hands a unit of work to the pool. Non-blocking: if the queue is
// full the work is rejected with ErrSaturated and will never run. On nil
// return the work is guaranteed to execute exactly once, eventually.
func (f *Fridge) Submit(fn WorkFunc) error {
	if fn == nil {
		return ErrNotRunning
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.started || f.stopping {
		return ErrNotRunning
	}

	// Enqueue under the lock: a Submit that observes the fridge running
	// lands in the queue before Stop closes stopCh, so the drain loop is
	// guaranteed to see it.
	select {
	case f.queue <- fn:
		f.pending++
		return nil
	default:
		return ErrSaturated
	}
}

// Running reports whether the fridge is accepting submissions.
func (f *Fridge) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started && !f.stopping
}

// Pending returns the number of accepted tasks not yet finished.
func (f *Fridge) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Completed returns the number of tasks that have finished executing.
func (f *Fridge) Completed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

// worker is the main loop for a single worker goroutine.
func (f *Fridge) worker(ctx context.Context, id int) {
	defer f.wg.Done()

	logger.Debug("Fridge worker started", "worker", id)

	for {
		select {
		case fn := <-f.queue:
			f.execute(ctx, fn)
		case <-f.stopCh:
			// Drain accepted work before exiting.
			for {
				select {
				case fn := <-f.queue:
					f.execute(ctx, fn)
				default:
					logger.Debug("Fridge worker exiting", "worker", id)
					return
				}
			}
		}
	}
}

func (f *Fridge) execute(ctx context.Context, fn WorkFunc) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Fridge task panicked", "panic", r)
		}
		f.mu.Lock()
		f.pending--
		f.completed++
		f.mu.Unlock()
	}()

	fn(ctx)
}
