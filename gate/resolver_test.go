package gate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// countingResolver records how often the inner resolver is hit.
type countingResolver struct {
	set   Set
	calls int
}

func (r *countingResolver) Resolve(context.Context, uint) (Set, error) {
	r.calls++
	return r.set, nil
}

func TestCachedResolverCaches(t *testing.T) {
	inner := &countingResolver{set: Set{"ROLE_USER"}}
	cached := NewCachedResolver(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		set, err := cached.Resolve(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, Set{"ROLE_USER"}, set)
	}
	require.Equal(t, 1, inner.calls)
}

func TestCachedResolverTTLExpiry(t *testing.T) {
	inner := &countingResolver{set: Set{"ROLE_USER"}}
	cached := NewCachedResolver(inner, 20*time.Millisecond)
	ctx := context.Background()

	_, err := cached.Resolve(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)

	time.Sleep(30 * time.Millisecond)

	_, err = cached.Resolve(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, inner.calls, "expired entry re-fetches")
}

func TestCachedResolverInvalidate(t *testing.T) {
	inner := &countingResolver{set: Set{"ROLE_USER"}}
	cached := NewCachedResolver(inner, time.Minute)
	ctx := context.Background()

	_, _ = cached.Resolve(ctx, 1)
	_, _ = cached.Resolve(ctx, 2)
	require.Equal(t, 2, inner.calls)

	cached.Invalidate(1)
	_, _ = cached.Resolve(ctx, 1)
	_, _ = cached.Resolve(ctx, 2)
	require.Equal(t, 3, inner.calls, "only the invalidated user re-fetches")

	cached.InvalidateAll()
	_, _ = cached.Resolve(ctx, 1)
	_, _ = cached.Resolve(ctx, 2)
	require.Equal(t, 5, inner.calls)
}
