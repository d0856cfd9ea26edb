package context

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type key struct{}

func TestDetach(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.WithValue(context.Background(), key{}, "req-1"))
	ctx, cancel := Detach(parent, time.Minute)
	defer cancel()

	cancelParent()
	require.Error(t, parent.Err())
	assert.NoError(t, ctx.Err())
	assert.Equal(t, "req-1", ctx.Value(key{}))

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestDetach_Timeout(t *testing.T) {
	ctx, cancel := Detach(context.Background(), time.Millisecond)
	defer cancel()

	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("detached context never expired")
	}
}
