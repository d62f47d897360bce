package utils

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetNoDuplicates(t *testing.T) {
	s := NewSet[int]()

	assert.True(t, s.Add(7), "first Add should return true")
	assert.False(t, s.Add(7), "second Add of same id should return false")
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(8))
	assert.Equal(t, 1, s.Size())
}

func TestSetConcurrency(t *testing.T) {
	s := NewSet[string]()
	var added int64

	pool := NewWorkerPool(10, 0)
	for i := 0; i < 100; i++ {
		pool.Submit(fmt.Sprint("add-", i), func() {
			if s.Add("Samsung") {
				atomic.AddInt64(&added, 1)
			}
		})
	}
	require.NoError(t, pool.Wait())

	assert.Equal(t, int64(1), added, "expected exactly 1 successful add")
}

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(3, 0)
	var done int64
	for i := 0; i < 25; i++ {
		pool.Submit("count", func() { atomic.AddInt64(&done, 1) })
	}
	require.NoError(t, pool.Wait())
	assert.Equal(t, int64(25), done)
}

func TestWorkerPoolRecoversPanics(t *testing.T) {
	pool := NewWorkerPool(2, 0)
	var done int64

	pool.Submit("ok", func() { atomic.AddInt64(&done, 1) })
	pool.Submit("boom", func() { panic("bad bucket") })
	pool.Submit("ok-too", func() { atomic.AddInt64(&done, 1) })

	err := pool.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job boom panicked: bad bucket")
	assert.Equal(t, int64(2), done)

	assert.NoError(t, pool.Wait(), "failures are reported once")
}

func TestWorkerPoolRateLimit(t *testing.T) {
	rateLimitMs := 50
	pool := NewWorkerPool(1, rateLimitMs)

	var mu sync.Mutex
	var timestamps []time.Time
	for i := 0; i < 3; i++ {
		pool.Submit("tick", func() {
			mu.Lock()
			timestamps = append(timestamps, time.Now())
			mu.Unlock()
		})
	}
	require.NoError(t, pool.Wait())

	// Timestamps are taken after the limiter releases, allow a little jitter.
	min := time.Duration(rateLimitMs)*time.Millisecond - 5*time.Millisecond
	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		assert.GreaterOrEqual(t, gap, min, "gap between job %d and %d", i-1, i)
	}
}
