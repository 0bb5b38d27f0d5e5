package mining_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hashpool/poolkit/core/collection"
	"github.com/hashpool/poolkit/core/notification"
	"github.com/hashpool/poolkit/mining"
)

type mockProxyAPI struct {
	mock.Mock
}

func (m *mockProxyAPI) Proxies(ctx context.Context) (mining.ProxyList, error) {
	args := m.Called(ctx)
	return args.Get(0).(mining.ProxyList), args.Error(1)
}

func (m *mockProxyAPI) UpdateProxyStatus(ctx context.Context, id string, status mining.ProxyStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockProxyAPI) DeleteProxy(ctx context.Context, id string) (mining.ProxyDeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mining.ProxyDeleteResult), args.Error(1)
}

func TestProxyStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	list := mining.ProxyList{
		Proxies: []mining.Proxy{
			{ID: "p1", Status: mining.ProxyActive, Config: json.RawMessage(`{"fee":1}`)},
			{ID: "p2", Status: mining.ProxyInactive, Config: json.RawMessage(`{"fee":2}`)},
		},
		Stats: collection.Stats{Total: 2, Active: 1, Inactive: 1},
		Total: 2,
	}

	t.Run("refresh adopts the server listing", func(t *testing.T) {
		t.Parallel()

		api := new(mockProxyAPI)
		api.On("Proxies", ctx).Return(list, nil).Once()

		notifier := notification.New()
		defer notifier.Close()

		store := mining.NewProxyStore(api, notifier)
		require.NoError(t, store.Refresh(ctx))

		items, stats := store.Snapshot()
		require.Len(t, items, 2)
		assert.Equal(t, "p1", items[0].EntityID())
		assert.Equal(t, collection.Stats{Total: 2, Active: 1, Inactive: 1}, stats)
		api.AssertExpectations(t)
	})

	t.Run("status toggle reaches the API as a status string", func(t *testing.T) {
		t.Parallel()

		api := new(mockProxyAPI)
		api.On("Proxies", ctx).Return(list, nil).Once()
		api.On("UpdateProxyStatus", ctx, "p1", mining.ProxyInactive).Return(nil).Once()
		api.On("UpdateProxyStatus", ctx, "p2", mining.ProxyActive).Return(nil).Once()

		notifier := notification.New()
		defer notifier.Close()

		now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		store := mining.NewProxyStore(api, notifier,
			collection.WithClock[mining.Proxy](func() time.Time { return now }))
		require.NoError(t, store.Refresh(ctx))

		require.NoError(t, store.SetStatus(ctx, "p1", false))
		require.NoError(t, store.SetStatus(ctx, "p2", true))

		items, stats := store.Snapshot()
		assert.Equal(t, mining.ProxyInactive, items[0].Status)
		assert.Equal(t, mining.ProxyActive, items[1].Status)
		assert.Equal(t, now, items[0].UpdatedAt)
		assert.Equal(t, collection.Stats{Total: 2, Active: 1, Inactive: 1}, stats)
		api.AssertExpectations(t)
	})

	t.Run("unacknowledged delete keeps the proxy", func(t *testing.T) {
		t.Parallel()

		api := new(mockProxyAPI)
		api.On("Proxies", ctx).Return(list, nil).Once()
		api.On("DeleteProxy", ctx, "p1").Return(mining.ProxyDeleteResult{Success: false, ProxyID: "p1"}, nil).Once()
		api.On("DeleteProxy", ctx, "p2").Return(mining.ProxyDeleteResult{Success: true, ProxyID: "p2"}, nil).Once()

		notifier := notification.New()
		defer notifier.Close()

		store := mining.NewProxyStore(api, notifier)
		require.NoError(t, store.Refresh(ctx))

		deleted, err := store.Remove(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = store.Remove(ctx, "p2")
		require.NoError(t, err)
		assert.True(t, deleted)

		items, stats := store.Snapshot()
		require.Len(t, items, 1)
		assert.Equal(t, "p1", items[0].ID)
		assert.Equal(t, collection.Stats{Total: 1, Active: 1, Inactive: 0}, stats)
		api.AssertExpectations(t)
	})
}
