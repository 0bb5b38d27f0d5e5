// Package collection implements the optimistic collection store pattern
// shared by resource list views (mining proxies today, analogous resources
// later).
//
// A Store[T] owns a fetched collection plus its aggregate Stats and keeps
// the two atomically consistent: every mutation adjusts items and stats in
// one critical section, so Total == Active + Inactive == len(items) holds
// at every observable point.
//
// # Mutation semantics
//
//   - SetStatus applies locally first for perceived responsiveness, then
//     reconciles with the server; a rejection restores the pre-call state.
//   - Remove is server-first; local state only changes after confirmation.
//   - Refresh tags each request with a monotonic generation and discards
//     responses that are no longer the newest in flight.
//
// Failures surface through the notification channel, never silently.
//
// # Instantiation
//
// A resource package supplies the entity type and a Source adapter:
//
//	store := collection.New[mining.Proxy](source, notifier, "Proxy")
//	if err := store.Refresh(ctx); err != nil { ... }
package collection
