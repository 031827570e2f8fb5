package jobs

import (
	"log/slog"
	"sync"
	"time"
)

// IdleRecycler is the part of the browser pool the janitor needs.
type IdleRecycler interface {
	RecycleIdle(maxAge time.Duration) int
}

// BrowserJanitor periodically closes pooled Chrome instances that have sat
// idle too long. A long-idle browser holds memory and its portal session may
// have gone stale, so it is cheaper to relaunch on demand.
type BrowserJanitor struct {
	pool     IdleRecycler
	maxIdle  time.Duration
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewBrowserJanitor creates a janitor that recycles browsers idle longer
// than maxIdle, sweeping every interval.
func NewBrowserJanitor(pool IdleRecycler, maxIdle, interval time.Duration) *BrowserJanitor {
	if maxIdle <= 0 {
		maxIdle = 10 * time.Minute
	}
	if interval <= 0 {
		interval = maxIdle / 2
	}
	return &BrowserJanitor{
		pool:     pool,
		maxIdle:  maxIdle,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the sweep loop
func (j *BrowserJanitor) Start() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.mu.Unlock()

	j.wg.Add(1)
	go j.run()
	slog.Info("browser janitor started",
		slog.Duration("max_idle", j.maxIdle),
		slog.Duration("interval", j.interval),
	)
}

// Stop gracefully stops the sweep loop
func (j *BrowserJanitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.mu.Unlock()

	close(j.stopCh)
	j.wg.Wait()
	slog.Info("browser janitor stopped")
}

func (j *BrowserJanitor) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopCh:
			return
		}
	}
}

func (j *BrowserJanitor) sweep() {
	if n := j.pool.RecycleIdle(j.maxIdle); n > 0 {
		slog.Info("recycled idle browsers", slog.Int("count", n))
	}
}

// RunOnce performs a single sweep (for testing or manual trigger)
func (j *BrowserJanitor) RunOnce() int {
	return j.pool.RecycleIdle(j.maxIdle)
}

// IsRunning returns whether the janitor is running
func (j *BrowserJanitor) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}
