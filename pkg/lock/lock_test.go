package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLockerExclusive(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	ok, err := l.Acquire(ctx, "booking:decide:b1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Acquire(ctx, "booking:decide:b1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire while held must fail")

	ok, err = l.Acquire(ctx, "booking:decide:b2", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "unrelated keys are independent")
}

func TestMemoryLockerReleaseFreesKey(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	ok, err := l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, l.Release(ctx, "k"))

	ok, err = l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLockerTTLExpires(t *testing.T) {
	l := NewMemoryLocker()
	now := time.Now()
	l.clock = func() time.Time { return now }
	ctx := context.Background()

	ok, err := l.Acquire(ctx, "k", 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(100 * time.Millisecond)
	ok, err = l.Acquire(ctx, "k", 50*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok, "expired lock is reacquirable")
}
