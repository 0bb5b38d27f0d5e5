package mining

import (
	"context"

	"github.com/hashpool/poolkit/core/collection"
	"github.com/hashpool/poolkit/core/notification"
)

// ProxyAPI is the slice of the API client the proxy store consumes.
type ProxyAPI interface {
	Proxies(ctx context.Context) (ProxyList, error)
	UpdateProxyStatus(ctx context.Context, id string, status ProxyStatus) error
	DeleteProxy(ctx context.Context, id string) (ProxyDeleteResult, error)
}

// proxySource adapts ProxyAPI to the collection source contract.
type proxySource struct {
	api ProxyAPI
}

func (s proxySource) FetchAll(ctx context.Context) ([]Proxy, collection.Stats, error) {
	list, err := s.api.Proxies(ctx)
	if err != nil {
		return nil, collection.Stats{}, err
	}
	return list.Proxies, list.Stats, nil
}

func (s proxySource) UpdateStatus(ctx context.Context, id string, active bool) error {
	status := ProxyInactive
	if active {
		status = ProxyActive
	}
	return s.api.UpdateProxyStatus(ctx, id, status)
}

func (s proxySource) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.api.DeleteProxy(ctx, id)
	if err != nil {
		return false, err
	}
	return result.Success, nil
}

// NewProxyStore instantiates the optimistic collection store for the
// account's proxy configurations.
func NewProxyStore(api ProxyAPI, notifier *notification.Notifier, opts ...collection.Option[Proxy]) *collection.Store[Proxy] {
	return collection.New[Proxy](proxySource{api: api}, notifier, "Proxy", opts...)
}
