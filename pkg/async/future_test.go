package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashpool/poolkit/pkg/async"
)

func TestGo(t *testing.T) {
	t.Parallel()

	t.Run("returns computed value", func(t *testing.T) {
		t.Parallel()

		f := async.Go(context.Background(), func(ctx context.Context) (int, error) {
			return 42, nil
		})

		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("propagates error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		f := async.Go(context.Background(), func(ctx context.Context) (int, error) {
			return 0, boom
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("pre-canceled context skips execution", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		f := async.Go(ctx, func(ctx context.Context) (int, error) {
			called = true
			return 1, nil
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestExec(t *testing.T) {
	t.Parallel()

	f := async.Exec(context.Background(), func(ctx context.Context) error {
		return nil
	})
	_, err := f.Await()
	assert.NoError(t, err)
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("completes before timeout", func(t *testing.T) {
		t.Parallel()

		f := async.Go(context.Background(), func(ctx context.Context) (string, error) {
			return "ok", nil
		})

		v, err := f.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
	})

	t.Run("returns ErrTimeout when still running", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)

		f := async.Go(context.Background(), func(ctx context.Context) (string, error) {
			<-release
			return "late", nil
		})

		_, err := f.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
	})
}

func TestIsComplete(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Go(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	assert.False(t, f.IsComplete())
	close(release)

	_, err := f.Await()
	require.NoError(t, err)
	assert.True(t, f.IsComplete())
}

func TestAwaitAll(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	ok := async.Go(context.Background(), func(ctx context.Context) (int, error) { return 1, nil })
	bad := async.Go(context.Background(), func(ctx context.Context) (int, error) { return 0, boom })

	err := async.AwaitAll(ok, bad)
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, async.AwaitAll[int]())
}
