// Package mining holds the domain model of the pool dashboard: proxies,
// workers, hashrate telemetry and the pure selectors the UI renders from.
//
// NewProxyStore wires the proxy endpoints into the generic optimistic
// collection store (core/collection): toggles apply locally before the
// server confirms, deletes wait for acknowledgement, and every outcome
// surfaces on the notification channel.
//
// Selectors (FilterWorkers, FilterProxies, GroupWorkers) are pure
// projections over a snapshot. They copy, never mutate, so the UI can
// re-derive a view on every render without touching store state.
package mining
