package utils

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// WorkerPool runs named jobs on a bounded number of goroutines. A job
// that panics is recovered and reported by Wait instead of taking the
// process down.
type WorkerPool struct {
	semaphore chan struct{}
	wg        sync.WaitGroup
	interval  time.Duration

	mu        sync.Mutex
	lastStart time.Time
	failures  []error
}

// NewWorkerPool creates a pool running at most maxWorkers jobs at once.
// rateLimitMs spaces job starts; 0 disables spacing.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		semaphore: make(chan struct{}, maxWorkers),
		interval:  time.Duration(rateLimitMs) * time.Millisecond,
	}
}

// Submit schedules job. It blocks while every worker is busy.
func (wp *WorkerPool) Submit(name string, job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()
		defer func() {
			if r := recover(); r != nil {
				wp.fail(fmt.Errorf("job %s panicked: %v", name, r))
			}
		}()

		wp.throttle()
		job()
	}()
}

// Wait blocks until every submitted job has returned and reports the
// jobs that panicked, if any.
func (wp *WorkerPool) Wait() error {
	wp.wg.Wait()

	wp.mu.Lock()
	defer wp.mu.Unlock()
	err := errors.Join(wp.failures...)
	wp.failures = nil
	return err
}

func (wp *WorkerPool) fail(err error) {
	wp.mu.Lock()
	wp.failures = append(wp.failures, err)
	wp.mu.Unlock()
}

func (wp *WorkerPool) throttle() {
	if wp.interval <= 0 {
		return
	}
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if elapsed := time.Since(wp.lastStart); elapsed < wp.interval {
		time.Sleep(wp.interval - elapsed)
	}
	wp.lastStart = time.Now()
}

// Set is a thread-safe set of comparable keys.
type Set[K comparable] struct {
	mu   sync.RWMutex
	seen map[K]struct{}
}

func NewSet[K comparable]() *Set[K] {
	return &Set[K]{seen: make(map[K]struct{})}
}

// Add reports whether k was newly added.
func (s *Set[K]) Add(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[k]; exists {
		return false
	}
	s.seen[k] = struct{}{}
	return true
}

func (s *Set[K]) Contains(k K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[k]
	return exists
}

// Size returns the number of distinct keys added.
func (s *Set[K]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
