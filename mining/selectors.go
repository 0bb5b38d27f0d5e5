package mining

import (
	"sort"
	"strings"
)

// Selectors are pure projections over a collection snapshot: they never
// mutate their input and return the same output for the same input.

// StatusFilter narrows a listing by liveness/status.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterActive   StatusFilter = "active"
	FilterInactive StatusFilter = "inactive"
)

// WorkerSortKey orders a worker listing.
type WorkerSortKey string

const (
	WorkerByName     WorkerSortKey = "name"
	WorkerByHashrate WorkerSortKey = "hashrate"
	WorkerByStatus   WorkerSortKey = "status"
)

// WorkerQuery describes a worker list projection.
type WorkerQuery struct {
	Search     string
	Status     StatusFilter
	SortBy     WorkerSortKey
	Descending bool
}

// FilterWorkers returns a new slice of workers matching the query, sorted
// by the requested key. The input slice is left untouched.
func FilterWorkers(workers []Worker, q WorkerQuery) []Worker {
	out := make([]Worker, 0, len(workers))
	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, w := range workers {
		if search != "" && !strings.Contains(strings.ToLower(w.Name), search) {
			continue
		}
		switch q.Status {
		case FilterActive:
			if !w.IsActive {
				continue
			}
		case FilterInactive:
			if w.IsActive {
				continue
			}
		}
		out = append(out, w)
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareWorkers(out[i], out[j], q.SortBy)
		if q.Descending {
			return cmp > 0
		}
		return cmp < 0
	})

	return out
}

func compareWorkers(a, b Worker, key WorkerSortKey) int {
	switch key {
	case WorkerByHashrate:
		switch {
		case a.RawHashrate < b.RawHashrate:
			return -1
		case a.RawHashrate > b.RawHashrate:
			return 1
		}
		return 0
	case WorkerByStatus:
		// Active rigs sort first in ascending order.
		switch {
		case a.IsActive && !b.IsActive:
			return -1
		case !a.IsActive && b.IsActive:
			return 1
		}
		return 0
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

// ProxySortKey orders a proxy listing.
type ProxySortKey string

const (
	ProxyByCreated ProxySortKey = "created"
	ProxyByUpdated ProxySortKey = "updated"
)

// ProxyQuery describes a proxy list projection.
type ProxyQuery struct {
	Search     string
	Status     StatusFilter
	SortBy     ProxySortKey
	Descending bool
}

// FilterProxies returns a new slice of proxies matching the query, sorted
// by the requested timestamp. The input slice is left untouched.
func FilterProxies(proxies []Proxy, q ProxyQuery) []Proxy {
	out := make([]Proxy, 0, len(proxies))
	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, p := range proxies {
		if search != "" && !strings.Contains(strings.ToLower(p.ID), search) {
			continue
		}
		switch q.Status {
		case FilterActive:
			if p.Status != ProxyActive {
				continue
			}
		case FilterInactive:
			if p.Status != ProxyInactive {
				continue
			}
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreatedAt, out[j].CreatedAt
		if q.SortBy == ProxyByUpdated {
			a, b = out[i].UpdatedAt, out[j].UpdatedAt
		}
		if q.Descending {
			return a.After(b)
		}
		return a.Before(b)
	})

	return out
}

// GroupWorkers buckets workers by rig base name (the part before the
// first dot), preserving the listing order within each group.
func GroupWorkers(workers []Worker) map[string][]Worker {
	groups := make(map[string][]Worker)
	for _, w := range workers {
		base := w.BaseName()
		groups[base] = append(groups[base], w)
	}
	return groups
}
