package collection_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hashpool/poolkit/core/collection"
	"github.com/hashpool/poolkit/core/notification"
)

type testItem struct {
	id        string
	active    bool
	updatedAt time.Time
}

func (i testItem) EntityID() string { return i.id }
func (i testItem) IsActive() bool   { return i.active }
func (i testItem) WithStatus(active bool, at time.Time) testItem {
	i.active = active
	i.updatedAt = at
	return i
}

type mockSource struct {
	mock.Mock
}

func (m *mockSource) FetchAll(ctx context.Context) ([]testItem, collection.Stats, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]testItem)
	return items, args.Get(1).(collection.Stats), args.Error(2)
}

func (m *mockSource) UpdateStatus(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *mockSource) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type rejection struct{ detail string }

func (r rejection) Error() string       { return r.detail }
func (r rejection) ErrorDetail() string { return r.detail }

func seedItems() []testItem {
	return []testItem{
		{id: "p1", active: true},
		{id: "p2", active: true},
		{id: "p3", active: false},
	}
}

func seedStats() collection.Stats {
	return collection.Stats{Total: 3, Active: 2, Inactive: 1}
}

// checkInvariant asserts the aggregate matches the collection it was read with.
func checkInvariant(t *testing.T, items []testItem, stats collection.Stats) {
	t.Helper()
	active := 0
	for _, it := range items {
		if it.IsActive() {
			active++
		}
	}
	assert.Equal(t, len(items), stats.Total)
	assert.Equal(t, active, stats.Active)
	assert.Equal(t, stats.Total-stats.Active, stats.Inactive)
}

func TestStore_Refresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("replaces collection and stats", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := collection.New[testItem](src, notifier, "Proxy")

		src.On("FetchAll", ctx).Return(seedItems(), seedStats(), nil)

		require.NoError(t, store.Refresh(ctx))
		assert.True(t, store.Loaded())

		items, stats := store.Snapshot()
		assert.Len(t, items, 3)
		assert.Equal(t, seedStats(), stats)
		checkInvariant(t, items, stats)
	})

	t.Run("failure resets to empty and notifies", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := collection.New[testItem](src, notifier, "Proxy")

		src.On("FetchAll", ctx).Return(seedItems(), seedStats(), nil).Once()
		src.On("FetchAll", ctx).Return(nil, collection.Stats{}, rejection{"backend down"}).Once()

		require.NoError(t, store.Refresh(ctx))

		err := store.Refresh(ctx)
		require.ErrorIs(t, err, collection.ErrRefresh)

		items, stats := store.Snapshot()
		assert.Empty(t, items)
		assert.Equal(t, collection.Stats{}, stats)

		msg := <-notifier.Notifications()
		assert.Equal(t, notification.LevelError, msg.Level)
		assert.Equal(t, "Load failed", msg.Title)
		assert.Equal(t, "backend down", msg.Message)
	})

	t.Run("sequential refreshes are last-write-wins", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := collection.New[testItem](src, notifier, "Proxy")

		src.On("FetchAll", ctx).Return(seedItems(), seedStats(), nil).Once()
		src.On("FetchAll", ctx).Return([]testItem{}, collection.Stats{}, nil).Once()

		require.NoError(t, store.Refresh(ctx))
		require.NoError(t, store.Refresh(ctx))

		items, stats := store.Snapshot()
		assert.Empty(t, items)
		assert.Equal(t, collection.Stats{}, stats)
	})

	t.Run("stale response is discarded", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := collection.New[testItem](src, notifier, "Proxy")

		entered := make(chan struct{})
		release := make(chan struct{})

		stale := []testItem{{id: "old", active: true}}
		fresh := seedItems()

		src.On("FetchAll", ctx).Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).Return(stale, collection.Stats{Total: 1, Active: 1}, nil).Once()
		src.On("FetchAll", ctx).Return(fresh, seedStats(), nil).Once()

		firstDone := make(chan error, 1)
		go func() { firstDone <- store.Refresh(ctx) }()

		<-entered
		require.NoError(t, store.Refresh(ctx))

		close(release)
		assert.ErrorIs(t, <-firstDone, collection.ErrStaleResponse)

		items, stats := store.Snapshot()
		assert.Len(t, items, 3)
		assert.Equal(t, seedStats(), stats)
	})
}

func TestStore_SetStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	newStore := func(t *testing.T, src *mockSource, notifier *notification.Notifier) *collection.Store[testItem] {
		t.Helper()
		store := collection.New[testItem](src, notifier, "Proxy",
			collection.WithClock[testItem](func() time.Time { return now }))
		src.On("FetchAll", ctx).Return(seedItems(), seedStats(), nil).Once()
		require.NoError(t, store.Refresh(ctx))
		return store
	}

	t.Run("optimistic apply with success notification", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := newStore(t, src, notifier)

		src.On("UpdateStatus", ctx, "p1", false).Return(nil)

		require.NoError(t, store.SetStatus(ctx, "p1", false))

		items, stats := store.Snapshot()
		assert.False(t, items[0].IsActive())
		assert.Equal(t, now, items[0].updatedAt)
		assert.Equal(t, collection.Stats{Total: 3, Active: 1, Inactive: 2}, stats)
		checkInvariant(t, items, stats)

		msg := <-notifier.Notifications()
		assert.Equal(t, notification.LevelSuccess, msg.Level)
		assert.Equal(t, "Status changed", msg.Title)
		assert.Equal(t, "Proxy p1 deactivated", msg.Message)
	})

	t.Run("single entity example", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := collection.New[testItem](src, notifier, "Proxy")

		src.On("FetchAll", ctx).
			Return([]testItem{{id: "p1", active: true}}, collection.Stats{Total: 1, Active: 1, Inactive: 0}, nil)
		src.On("UpdateStatus", ctx, "p1", false).Return(nil)

		require.NoError(t, store.Refresh(ctx))
		require.NoError(t, store.SetStatus(ctx, "p1", false))

		items, stats := store.Snapshot()
		assert.Equal(t, collection.Stats{Total: 1, Active: 0, Inactive: 1}, stats)
		assert.False(t, items[0].IsActive())
	})

	t.Run("server rejection rolls back snapshot", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := newStore(t, src, notifier)

		beforeItems, beforeStats := store.Snapshot()

		src.On("UpdateStatus", ctx, "p2", false).Return(rejection{"status locked"})

		err := store.SetStatus(ctx, "p2", false)
		require.Error(t, err)

		afterItems, afterStats := store.Snapshot()
		assert.Equal(t, beforeItems, afterItems)
		assert.Equal(t, beforeStats, afterStats)

		msg := <-notifier.Notifications()
		assert.Equal(t, notification.LevelError, msg.Level)
		assert.Equal(t, "status locked", msg.Message)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := newStore(t, src, notifier)

		err := store.SetStatus(ctx, "nope", false)
		assert.ErrorIs(t, err, collection.ErrEntityNotFound)
	})

	t.Run("same status is a no-op without a server call", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := newStore(t, src, notifier)

		require.NoError(t, store.SetStatus(ctx, "p1", true))
		src.AssertNotCalled(t, "UpdateStatus", ctx, "p1", true)
	})

	t.Run("invariant holds after every call in a sequence", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := newStore(t, src, notifier)

		src.On("UpdateStatus", ctx, mock.Anything, mock.Anything).Return(nil)

		toggles := []struct {
			id     string
			active bool
		}{
			{"p1", false}, {"p3", true}, {"p2", false},
			{"p1", true}, {"p3", false}, {"p1", false},
		}
		for _, tg := range toggles {
			require.NoError(t, store.SetStatus(ctx, tg.id, tg.active))
			items, stats := store.Snapshot()
			checkInvariant(t, items, stats)
		}
	})
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newStore := func(t *testing.T, src *mockSource, notifier *notification.Notifier) *collection.Store[testItem] {
		t.Helper()
		store := collection.New[testItem](src, notifier, "Proxy")
		src.On("FetchAll", ctx).Return(seedItems(), seedStats(), nil).Once()
		require.NoError(t, store.Refresh(ctx))
		return store
	}

	t.Run("server-first removal", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := newStore(t, src, notifier)

		src.On("Delete", ctx, "p1").Return(true, nil)

		deleted, err := store.Remove(ctx, "p1")
		require.NoError(t, err)
		assert.True(t, deleted)

		items, stats := store.Snapshot()
		assert.Len(t, items, 2)
		assert.Equal(t, collection.Stats{Total: 2, Active: 1, Inactive: 1}, stats)
		checkInvariant(t, items, stats)

		msg := <-notifier.Notifications()
		assert.Equal(t, notification.LevelSuccess, msg.Level)
		assert.Equal(t, "Proxy p1 deleted successfully", msg.Message)
	})

	t.Run("removing inactive entity decrements inactive bucket", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := newStore(t, src, notifier)

		src.On("Delete", ctx, "p3").Return(true, nil)

		deleted, err := store.Remove(ctx, "p3")
		require.NoError(t, err)
		assert.True(t, deleted)

		_, stats := store.Snapshot()
		assert.Equal(t, collection.Stats{Total: 2, Active: 2, Inactive: 0}, stats)
	})

	t.Run("server rejection leaves state identical", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := newStore(t, src, notifier)

		beforeItems, beforeStats := store.Snapshot()

		src.On("Delete", ctx, "p2").Return(false, rejection{"proxy is referenced"})

		deleted, err := store.Remove(ctx, "p2")
		require.Error(t, err)
		assert.False(t, deleted)

		afterItems, afterStats := store.Snapshot()
		assert.Equal(t, beforeItems, afterItems)
		assert.Equal(t, beforeStats, afterStats)

		msg := <-notifier.Notifications()
		assert.Equal(t, notification.LevelError, msg.Level)
		assert.Equal(t, "proxy is referenced", msg.Message)
	})

	t.Run("id absent locally removes nothing and stays silent", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := newStore(t, src, notifier)

		beforeItems, beforeStats := store.Snapshot()

		// Server confirms (e.g. the proxy vanished between refreshes),
		// but the local collection never held the id.
		src.On("Delete", ctx, "ghost").Return(true, nil)

		deleted, err := store.Remove(ctx, "ghost")
		require.NoError(t, err)
		assert.True(t, deleted)

		afterItems, afterStats := store.Snapshot()
		assert.Equal(t, beforeItems, afterItems)
		assert.Equal(t, beforeStats, afterStats)
		checkInvariant(t, afterItems, afterStats)

		select {
		case msg := <-notifier.Notifications():
			t.Fatalf("unexpected notification: %+v", msg)
		default:
		}
	})

	t.Run("declined without error reports false", func(t *testing.T) {
		t.Parallel()

		src := &mockSource{}
		notifier := notification.New()
		defer notifier.Close()
		store := newStore(t, src, notifier)

		src.On("Delete", ctx, "p2").Return(false, nil)

		deleted, err := store.Remove(ctx, "p2")
		require.NoError(t, err)
		assert.False(t, deleted)

		items, _ := store.Snapshot()
		assert.Len(t, items, 3)
	})
}

func TestStore_Items_ReturnsCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := &mockSource{}
	notifier := notification.New()
	defer notifier.Close()
	store := collection.New[testItem](src, notifier, "Proxy")

	src.On("FetchAll", ctx).Return(seedItems(), seedStats(), nil)
	require.NoError(t, store.Refresh(ctx))

	items := store.Items()
	items[0] = testItem{id: "mutated"}

	fresh := store.Items()
	assert.Equal(t, "p1", fresh[0].EntityID())
}
