package jobs

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeRecycler struct {
	calls   atomic.Int64
	lastAge atomic.Int64
	recycle int
}

func (f *fakeRecycler) RecycleIdle(maxAge time.Duration) int {
	f.calls.Add(1)
	f.lastAge.Store(int64(maxAge))
	return f.recycle
}

func TestBrowserJanitor_RunOnce(t *testing.T) {
	pool := &fakeRecycler{recycle: 2}
	j := NewBrowserJanitor(pool, 5*time.Minute, time.Hour)

	n := j.RunOnce()

	assert.Equal(t, 2, n)
	assert.Equal(t, int64(1), pool.calls.Load())
	assert.Equal(t, int64(5*time.Minute), pool.lastAge.Load())
}

func TestBrowserJanitor_SweepsOnTicker(t *testing.T) {
	pool := &fakeRecycler{}
	j := NewBrowserJanitor(pool, time.Minute, 10*time.Millisecond)

	j.Start()
	defer j.Stop()

	assert.Eventually(t, func() bool {
		return pool.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestBrowserJanitor_StartIsIdempotent(t *testing.T) {
	pool := &fakeRecycler{}
	j := NewBrowserJanitor(pool, time.Minute, time.Hour)

	j.Start()
	j.Start()
	assert.True(t, j.IsRunning())

	j.Stop()
	j.Stop()
	assert.False(t, j.IsRunning())
}

func TestBrowserJanitor_Defaults(t *testing.T) {
	j := NewBrowserJanitor(&fakeRecycler{}, 0, 0)

	assert.Equal(t, 10*time.Minute, j.maxIdle)
	assert.Equal(t, 5*time.Minute, j.interval)
}
