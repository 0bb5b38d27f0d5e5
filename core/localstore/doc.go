// Package localstore provides durable client-side key-value storage.
//
// A dashboard client keeps exactly two durable values: the bearer token and
// the display-currency preference. Both live behind the Store interface so
// the session store and preference layer never care where the bytes go.
//
// Three implementations ship with the SDK:
//
//   - Memory: process-local, for tests and ephemeral sessions
//   - File: JSON file on disk, the desktop-client analog of localStorage
//   - redis (integration/localstore/redis): shared storage for kiosk-style
//     deployments where several displays present one account
//
// Only the session store may write the token key; every other consumer
// reads it through a read-only view (see TokenSource in the client package).
package localstore
