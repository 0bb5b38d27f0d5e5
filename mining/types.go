package mining

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashpool/poolkit/core/collection"
)

// Currency is a display/accounting currency the pool mines.
type Currency string

const (
	BTC Currency = "BTC"
	LTC Currency = "LTC"
)

// ErrUnknownCurrency is returned by ParseCurrency for unsupported codes.
var ErrUnknownCurrency = errors.New("mining: unknown currency")

// ParseCurrency validates a currency code.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case BTC, LTC:
		return Currency(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
}

// ProxyStatus is the lifecycle state of a proxy configuration.
type ProxyStatus string

const (
	ProxyActive   ProxyStatus = "active"
	ProxyInactive ProxyStatus = "inactive"
)

// Proxy is a server-side routing/fee configuration grouping workers under
// fee rules. Config is resource-specific and opaque to the SDK: the store
// never interprets it, only carries it.
type Proxy struct {
	ID        string          `json:"proxy_id"`
	Config    json.RawMessage `json:"config"`
	Status    ProxyStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// EntityID implements collection.Entity.
func (p Proxy) EntityID() string { return p.ID }

// IsActive implements collection.Entity.
func (p Proxy) IsActive() bool { return p.Status == ProxyActive }

// WithStatus implements collection.Entity, returning a copy.
func (p Proxy) WithStatus(active bool, at time.Time) Proxy {
	if active {
		p.Status = ProxyActive
	} else {
		p.Status = ProxyInactive
	}
	p.UpdatedAt = at
	return p
}

// ProxyList is the full-refresh payload for the proxy collection.
type ProxyList struct {
	Proxies []Proxy          `json:"proxies"`
	Stats   collection.Stats `json:"stats"`
	Total   int              `json:"total"`
}

// ProxyDeleteResult acknowledges a server-side proxy deletion.
type ProxyDeleteResult struct {
	Success bool   `json:"success"`
	ProxyID string `json:"proxy_id"`
}

// Worker is a mining rig identified by a dotted name, reporting hashrate
// and liveness.
type Worker struct {
	Name        string   `json:"worker"`
	Hashrate    string   `json:"hashrate"`
	RawHashrate float64  `json:"raw_hashrate"`
	IsActive    bool     `json:"is_active"`
	LastSeen    int64    `json:"last_seen"`
	Currency    Currency `json:"coinType"`
}

// BaseName returns the rig name before the first dot, grouping
// sub-workers of one physical machine.
func (w Worker) BaseName() string {
	for i, r := range w.Name {
		if r == '.' {
			return w.Name[:i]
		}
	}
	return w.Name
}

// WorkerList is the wire shape of the workers listing.
type WorkerList struct {
	Workers []Worker `json:"workers"`
}

// WorkerHistoryPoint is one sample of a single worker's hashrate history.
type WorkerHistoryPoint struct {
	Timestamp   int64   `json:"timestamp"`
	RawHashrate float64 `json:"raw_hashrate"`
	Hashrate    string  `json:"hashrate"`
}

// WorkerHistory is one worker's hashrate history over a trailing window.
type WorkerHistory struct {
	Worker   string               `json:"worker"`
	Hours    int                  `json:"hours"`
	Data     []WorkerHistoryPoint `json:"data"`
	Currency Currency             `json:"currency"`
}

// HashrateStats is the account-level hashrate summary.
type HashrateStats struct {
	Current  float64  `json:"current"`
	Hourly   float64  `json:"hourly"`
	Daily    float64  `json:"daily"`
	Currency Currency `json:"currency"`
}

// ChartPoint is one sample of the hashrate history chart.
type ChartPoint struct {
	Timestamp     int64    `json:"timestamp"`
	RawHashrate   float64  `json:"rawHashrate"`
	TotalHashrate float64  `json:"total_hashrate"`
	Currency      Currency `json:"currency"`
}
