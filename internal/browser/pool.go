package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrPoolClosed is returned by Get after the pool has been shut down.
var ErrPoolClosed = errors.New("browser pool closed")

// Pool is a bounded pool of reusable instances. Instances are created lazily
// up to the configured size; Get blocks until one is free or the context is
// done. The zero value is not usable, use NewPool.
type Pool[T any] struct {
	newFn   func(context.Context) (T, error)
	closeFn func(T)

	idle chan pooled[T]
	done chan struct{}

	mu      sync.Mutex
	size    int
	created int
	closed  bool
}

type pooled[T any] struct {
	inst  T
	since time.Time
}

// NewPool creates a pool holding at most size instances. newFn builds an
// instance, closeFn releases one.
func NewPool[T any](size int, newFn func(context.Context) (T, error), closeFn func(T)) *Pool[T] {
	if size < 1 {
		size = 1
	}
	return &Pool[T]{
		newFn:   newFn,
		closeFn: closeFn,
		idle:    make(chan pooled[T], size),
		done:    make(chan struct{}),
		size:    size,
	}
}

// Get returns an idle instance, creates a new one if the pool is below its
// cap, or blocks until an instance is returned. The caller owns the instance
// until it calls Put or Discard.
func (p *Pool[T]) Get(ctx context.Context) (T, error) {
	var zero T

	select {
	case e := <-p.idle:
		return e.inst, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return zero, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		inst, err := p.newFn(ctx)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return zero, fmt.Errorf("create pooled instance: %w", err)
		}
		return inst, nil
	}
	p.mu.Unlock()

	select {
	case e := <-p.idle:
		return e.inst, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-p.done:
		return zero, ErrPoolClosed
	}
}

// Put returns a healthy instance to the pool.
func (p *Pool[T]) Put(inst T) {
	p.requeue(pooled[T]{inst: inst, since: time.Now()})
}

// requeue places an entry on the idle channel, keeping whatever timestamp it
// carries. The closed check and the send happen under one lock so an entry
// cannot slip in after Close has drained the channel.
func (p *Pool[T]) requeue(e pooled[T]) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.destroy(e.inst)
		return
	}

	select {
	case p.idle <- e:
		p.mu.Unlock()
	default:
		// Pool already full of idle instances; should not happen with
		// balanced Get/Put, but never block the caller.
		p.mu.Unlock()
		p.destroy(e.inst)
	}
}

// Discard closes a suspect instance and frees its slot so a fresh one can be
// created.
func (p *Pool[T]) Discard(inst T) {
	p.destroy(inst)
}

// RecycleIdle closes idle instances that have not been used for at least
// maxAge and reports how many were recycled.
func (p *Pool[T]) RecycleIdle(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	recycled := 0

	for {
		select {
		case e := <-p.idle:
			if e.since.Before(cutoff) {
				p.destroy(e.inst)
				recycled++
				continue
			}
			// Still fresh; put it back with its original timestamp so the
			// idle clock keeps running across sweeps. Entries behind it are
			// newer or will be caught on the next sweep.
			p.requeue(e)
			return recycled
		default:
			return recycled
		}
	}
}

// Stats reports how many instances exist and how many are idle.
func (p *Pool[T]) Stats() (created, idle int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created, len(p.idle)
}

// Close shuts the pool down and releases all idle instances. Instances
// checked out at close time are released when they are returned.
func (p *Pool[T]) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.done)
	for {
		select {
		case e := <-p.idle:
			p.destroy(e.inst)
		default:
			return
		}
	}
}

func (p *Pool[T]) destroy(inst T) {
	p.closeFn(inst)
	p.mu.Lock()
	p.created--
	p.mu.Unlock()
}
