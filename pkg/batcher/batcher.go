// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrClosed is returned by Add once Close has been called.
var ErrClosed = errors.New("batcher closed")

// drainTimeout bounds the final flush once the context given to Start is done.
const drainTimeout = 10 * time.Second

// Batcher buffers items and flushes them either by size or interval. Flush failures
// are retained: Add stops accepting items after the first one and Close reports all of them.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	itemsCh       chan T
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	mu      sync.Mutex
	errs    []error
	flushed int

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Batcher. rps bounds the number of flushes per second.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, flushSize int, flushInterval time.Duration, rps int) *Batcher[T] {
	if flushSize <= 0 {
		flushSize = 1
	}
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		itemsCh:       make(chan T, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		rl:            ratelimit.New(rps),
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop. When ctx is done the loop drains what
// was queued and flushes it under a detached context bounded by drainTimeout.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Add queues an item. It fails once the batcher is closed or a flush has failed.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrClosed
	default:
	}
	if err := b.Err(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.itemsCh <- item:
		return nil
	}
}

// Close flushes what is buffered, stops the loop and returns every flush failure.
// Producers must have returned from Add before Close is called.
func (b *Batcher[T]) Close() error {
	b.stopOnce.Do(func() {
		close(b.stop)
	})
	b.wg.Wait()
	return b.Err()
}

// Err returns the flush failures recorded so far.
func (b *Batcher[T]) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return errors.Join(b.errs...)
}

// Flushed returns the number of items written by successful flushes.
func (b *Batcher[T]) Flushed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushed
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.flushSize)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		err := b.flushCallback(ctx, buf)

		b.mu.Lock()
		if err != nil {
			b.errs = append(b.errs, err)
		} else {
			b.flushed += len(buf)
		}
		b.mu.Unlock()

		if err != nil {
			b.logger.Error("batch not flushed", zap.Error(err), zap.Int("size", len(buf)))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	drain := func(ctx context.Context) {
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
				if len(buf) >= b.flushSize {
					flush(ctx)
				}
			default:
				flush(ctx)
				return
			}
		}
	}

	drainDetached := func() {
		detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
		defer cancel()
		drain(detached)
	}

	for {
		select {
		case <-ctx.Done():
			drainDetached()
			return

		case <-b.stop:
			if ctx.Err() != nil {
				drainDetached()
				return
			}
			drain(ctx)
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.flushSize {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
