package collection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/hashpool/poolkit/core/notification"
	"github.com/hashpool/poolkit/pkg/logger"
)

var (
	// ErrEntityNotFound is returned when a mutation targets an id that is
	// not in the local collection.
	ErrEntityNotFound = errors.New("collection: entity not found")
	// ErrStaleResponse is returned when a refresh response arrives after a
	// newer refresh has been issued. The stale payload is discarded.
	ErrStaleResponse = errors.New("collection: stale refresh discarded")
	// ErrRefresh wraps source failures during a refresh.
	ErrRefresh = errors.New("collection: refresh failed")
)

// Stats is the derived aggregate over a collection. It is updated in the
// same critical section as the item slice: a consumer can never observe
// Total != Active+Inactive against the items it just read.
type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// Entity is a collection member. WithStatus must return a copy; stored
// items are never mutated in place.
type Entity[T any] interface {
	EntityID() string
	IsActive() bool
	WithStatus(active bool, at time.Time) T
}

// Source is the remote side of a collection.
type Source[T Entity[T]] interface {
	FetchAll(ctx context.Context) ([]T, Stats, error)
	UpdateStatus(ctx context.Context, id string, active bool) error
	// Delete reports whether the server actually removed the entity.
	Delete(ctx context.Context, id string) (bool, error)
}

// Store mediates between a remote resource collection and its UI consumers.
// Status changes apply locally first and reconcile with the server in the
// same call, rolling back on rejection; deletes are server-first. Failures
// surface on the notification channel, never silently.
//
// Concurrent mutations on distinct ids interleave freely. Two concurrent
// mutations on the same id are a race the store does not arbitrate: the
// last write to local state wins.
type Store[T Entity[T]] struct {
	source   Source[T]
	notifier *notification.Notifier
	logger   *slog.Logger
	clock    func() time.Time
	resource string

	mu     sync.Mutex
	items  []T
	stats  Stats
	loaded bool
	gen    uint64
}

// Option configures a Store.
type Option[T Entity[T]] func(*Store[T])

// WithLogger configures structured logging.
func WithLogger[T Entity[T]](log *slog.Logger) Option[T] {
	return func(s *Store[T]) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithClock overrides the time source. Tests use it to pin UpdatedAt.
func WithClock[T Entity[T]](clock func() time.Time) Option[T] {
	return func(s *Store[T]) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New creates a collection store. The resource name ("Proxy", ...) is used
// in user-facing notifications.
func New[T Entity[T]](source Source[T], notifier *notification.Notifier, resource string, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		source:   source,
		notifier: notifier,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    time.Now,
		resource: resource,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Refresh replaces the collection and stats from the server. A failed
// fetch resets both to empty and reports the error; a response that is no
// longer the newest in flight is discarded and ErrStaleResponse returned.
func (s *Store[T]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	items, stats, err := s.source.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.Debug("discarding stale refresh", logger.Generation(gen))
		return ErrStaleResponse
	}

	if err != nil {
		s.items = nil
		s.stats = Stats{}
		s.loaded = true
		s.notifier.Error("Load failed", errorDetail(err))
		return errors.Join(ErrRefresh, err)
	}

	s.items = items
	s.stats = stats
	s.loaded = true
	return nil
}

// SetStatus toggles an entity's status: local state first, then the
// server. A server rejection restores the entity and reverses the stats
// delta, so a failed toggle leaves nothing half-applied.
func (s *Store[T]) SetStatus(ctx context.Context, id string, active bool) error {
	s.mu.Lock()
	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrEntityNotFound, id)
	}

	before := s.items[idx]
	if before.IsActive() == active {
		s.mu.Unlock()
		return nil
	}

	s.items[idx] = before.WithStatus(active, s.clock())
	s.applyStatusDelta(active)
	s.mu.Unlock()

	if err := s.source.UpdateStatus(ctx, id, active); err != nil {
		s.mu.Lock()
		// Restore only if the optimistic value is still in place; a later
		// write to the same id wins over the rollback.
		if idx := s.index(id); idx >= 0 && s.items[idx].IsActive() == active {
			s.items[idx] = before
			s.applyStatusDelta(!active)
		}
		s.mu.Unlock()

		s.notifier.Error("Status update failed", errorDetail(err))
		s.logger.Error("status update rejected",
			slog.String("id", id), logger.Error(err))
		return err
	}

	s.notifier.Success("Status changed", fmt.Sprintf("%s %s %s", s.resource, id, statusWord(active)))
	return nil
}

// Remove deletes an entity server-first. Local state changes only after
// the server confirms; a rejection leaves collection and stats untouched.
// The boolean tells confirmation dialogs whether to dismiss themselves.
func (s *Store[T]) Remove(ctx context.Context, id string) (bool, error) {
	deleted, err := s.source.Delete(ctx, id)
	if err != nil {
		s.notifier.Error("Delete failed", errorDetail(err))
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.mu.Lock()
	idx := s.index(id)
	if idx >= 0 {
		wasActive := s.items[idx].IsActive()
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		s.stats.Total--
		if wasActive {
			s.stats.Active--
		} else {
			s.stats.Inactive--
		}
	}
	s.mu.Unlock()

	if idx >= 0 {
		s.notifier.Success("Deleted", fmt.Sprintf("%s %s deleted successfully", s.resource, id))
	} else {
		// Confirmed server-side but never held locally (e.g. deleted
		// between refreshes); nothing changed that the UI should toast.
		s.logger.Debug("deleted entity was not in local collection",
			slog.String("id", id))
	}
	return true, nil
}

// Items returns a copy of the collection. Selectors operate on the copy,
// never on shared state.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Stats returns the aggregate snapshot consistent with the last Items call
// made in the same critical window.
func (s *Store[T]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Snapshot returns items and stats from one critical section, so the pair
// is guaranteed mutually consistent.
func (s *Store[T]) Snapshot() ([]T, Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out, s.stats
}

// Loaded reports whether at least one refresh has completed.
func (s *Store[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// index returns the position of id, or -1. Caller must hold s.mu.
func (s *Store[T]) index(id string) int {
	for i, item := range s.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

// applyStatusDelta moves one entity between buckets. Caller must hold s.mu.
func (s *Store[T]) applyStatusDelta(nowActive bool) {
	if nowActive {
		s.stats.Active++
		s.stats.Inactive--
	} else {
		s.stats.Active--
		s.stats.Inactive++
	}
}

func statusWord(active bool) string {
	if active {
		return "activated"
	}
	return "deactivated"
}

// errorDetail prefers a server-provided message over the raw error chain.
func errorDetail(err error) string {
	var detailed interface{ ErrorDetail() string }
	if errors.As(err, &detailed) && detailed.ErrorDetail() != "" {
		return detailed.ErrorDetail()
	}
	return err.Error()
}
