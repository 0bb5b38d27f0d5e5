package async

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTimeout is returned when AwaitWithTimeout exceeds its duration.
	ErrTimeout = errors.New("async: await timed out")
)

// Future represents the result of an asynchronous computation.
// UI event loops use it to start a store operation without blocking
// and pick up the outcome later.
type Future[T any] struct {
	value T
	err   error
	done  chan struct{}
}

// Go executes fn on a new goroutine and returns a Future for its result.
// If the context is already canceled the function is never invoked.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents goroutine leak when context is pre-canceled
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.value, f.err = fn(ctx)
	}()

	return f
}

// Exec executes a function that only returns an error.
func Exec(ctx context.Context, fn func(context.Context) error) *Future[struct{}] {
	return Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
}

// Await blocks until the computation completes and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits for completion up to the given duration.
// Returns ErrTimeout if the computation is still running when it elapses.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the computation has finished without blocking.
// Views use it as a busy flag to guard against duplicate submission.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// AwaitAll waits for all futures of the same type and returns the first error, if any.
func AwaitAll[T any](futures ...*Future[T]) error {
	var errs []error
	for _, f := range futures {
		if _, err := f.Await(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
