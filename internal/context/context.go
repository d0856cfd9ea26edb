// Package context detaches background work from the request that started it
package context

import (
	"context"
	"time"
)

type detached struct {
	parent context.Context
}

// Detach keeps the values of ctx, drops its cancellation and deadline, and bounds the result by timeout.
func Detach(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(detached{parent: ctx}, timeout)
}

func (d detached) Deadline() (deadline time.Time, ok bool) {
	return time.Time{}, false
}

func (d detached) Done() <-chan struct{} {
	return nil
}

func (d detached) Err() error {
	return nil
}

func (d detached) Value(key any) any {
	return d.parent.Value(key)
}
