package lock

import (
	"context"
	"sync"
)

// Local is an exclusive lock for writers inside one process.
type Local struct {
	sem chan struct{}
}

// NewLocal constructs an unlocked Local.
func NewLocal() *Local {
	return &Local{sem: make(chan struct{}, 1)}
}

// Lock blocks until the lock is free or ctx is done. The returned context is derived
// from ctx and ends on unlock. The returned func is safe to call twice.
func (l *Local) Lock(ctx context.Context) (context.Context, func(), error) {
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case l.sem <- struct{}{}:
	}

	held, cancel := context.WithCancel(ctx)
	var once sync.Once
	return held, func() {
		once.Do(func() {
			cancel()
			<-l.sem
		})
	}, nil
}
