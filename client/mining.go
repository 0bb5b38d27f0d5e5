package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hashpool/poolkit/mining"
)

// CreateProxyRequest provisions a new proxy configuration. Config is
// resource-specific and passed through verbatim.
type CreateProxyRequest struct {
	Config json.RawMessage    `json:"config"`
	Status mining.ProxyStatus `json:"status,omitempty"`
}

// UpdateProxyRequest replaces the configuration of an existing proxy.
type UpdateProxyRequest struct {
	Config json.RawMessage `json:"config"`
}

type proxyStatusRequest struct {
	Status mining.ProxyStatus `json:"status"`
}

// Proxies fetches all proxy configurations for the account, together with
// the server-computed activity stats.
func (c *Client) Proxies(ctx context.Context) (mining.ProxyList, error) {
	var out mining.ProxyList
	if err := c.do(ctx, http.MethodGet, "/mining/proxies", nil, nil, &out); err != nil {
		return mining.ProxyList{}, err
	}
	return out, nil
}

// CreateProxy provisions a proxy configuration and returns it with the
// server-assigned identifier.
func (c *Client) CreateProxy(ctx context.Context, req CreateProxyRequest) (mining.Proxy, error) {
	var out mining.Proxy
	if err := c.do(ctx, http.MethodPost, "/mining/proxies", nil, req, &out); err != nil {
		return mining.Proxy{}, err
	}
	return out, nil
}

// UpdateProxy replaces the configuration of the given proxy.
func (c *Client) UpdateProxy(ctx context.Context, id string, req UpdateProxyRequest) (mining.Proxy, error) {
	var out mining.Proxy
	if err := c.do(ctx, http.MethodPut, "/mining/proxies/"+url.PathEscape(id), nil, req, &out); err != nil {
		return mining.Proxy{}, err
	}
	return out, nil
}

// UpdateProxyStatus toggles a proxy between active and inactive.
func (c *Client) UpdateProxyStatus(ctx context.Context, id string, status mining.ProxyStatus) error {
	path := "/mining/proxies/" + url.PathEscape(id) + "/status"
	return c.do(ctx, http.MethodPatch, path, nil, proxyStatusRequest{Status: status}, nil)
}

// DeleteProxy removes a proxy configuration server-side.
func (c *Client) DeleteProxy(ctx context.Context, id string) (mining.ProxyDeleteResult, error) {
	var out mining.ProxyDeleteResult
	if err := c.do(ctx, http.MethodDelete, "/mining/proxies/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return mining.ProxyDeleteResult{}, err
	}
	return out, nil
}

// Workers lists the account's mining rigs for the given currency.
func (c *Client) Workers(ctx context.Context, currency mining.Currency) (mining.WorkerList, error) {
	query := url.Values{"currency": {string(currency)}}

	var out mining.WorkerList
	if err := c.do(ctx, http.MethodGet, "/mining/workers/", query, nil, &out); err != nil {
		return mining.WorkerList{}, err
	}
	return out, nil
}

// WorkerHistory fetches one rig's hashrate history for the trailing
// window of the given number of hours.
func (c *Client) WorkerHistory(ctx context.Context, name string, hours int, currency mining.Currency) (mining.WorkerHistory, error) {
	path := "/mining/workers/" + url.PathEscape(name) + "/history"
	query := url.Values{
		"hours":    {strconv.Itoa(hours)},
		"currency": {string(currency)},
	}

	var out mining.WorkerHistory
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return mining.WorkerHistory{}, err
	}
	return out, nil
}

// HashrateStats fetches the account-level hashrate summary.
func (c *Client) HashrateStats(ctx context.Context, currency mining.Currency) (mining.HashrateStats, error) {
	query := url.Values{"currency": {string(currency)}}

	var out mining.HashrateStats
	if err := c.do(ctx, http.MethodGet, "/mining/stats/hashrate", query, nil, &out); err != nil {
		return mining.HashrateStats{}, err
	}
	return out, nil
}

// HashrateChart fetches the hashrate history for the trailing window of
// the given number of hours.
func (c *Client) HashrateChart(ctx context.Context, currency mining.Currency, hours int) ([]mining.ChartPoint, error) {
	query := url.Values{
		"currency": {string(currency)},
		"hours":    {strconv.Itoa(hours)},
	}

	var out []mining.ChartPoint
	if err := c.do(ctx, http.MethodGet, "/mining/charts/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
