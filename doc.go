// Package poolkit is a Go client SDK for a cryptocurrency mining-pool
// operations dashboard API. It owns the stateful subsystems a dashboard
// client needs: the authentication session, the optimistically updated
// proxy collection, display preferences and the transient notification
// channel, plus the HTTP client binding them to the API.
//
// # Package Organization
//
// Core state machines and abstractions:
//
//	github.com/hashpool/poolkit/core/session      - Authentication lifecycle, token persistence, identity decode
//	github.com/hashpool/poolkit/core/collection   - Generic optimistic collection store with consistent stats
//	github.com/hashpool/poolkit/core/notification - Buffered success/error message channel for the UI
//	github.com/hashpool/poolkit/core/localstore   - Durable client-side key-value storage (memory, file)
//	github.com/hashpool/poolkit/core/prefs        - Display-currency preference over durable storage
//	github.com/hashpool/poolkit/core/config       - Type-safe environment variable loading
//	github.com/hashpool/poolkit/core/validator    - Tag-based struct validation for form payloads
//
// Domain and transport:
//
//	github.com/hashpool/poolkit/mining            - Proxies, workers, hashrate types and pure selectors
//	github.com/hashpool/poolkit/client            - HTTP API client: bearer injection, 401 teardown, error taxonomy
//
// Utilities:
//
//	github.com/hashpool/poolkit/pkg/async         - Futures for running store operations off the UI loop
//	github.com/hashpool/poolkit/pkg/logger        - slog attribute helpers
//
// Integrations:
//
//	github.com/hashpool/poolkit/integration/localstore/redis - Redis-backed durable storage for shared displays
//
// Application composition:
//
//	github.com/hashpool/poolkit/app/dashboard     - Environment-configured wiring of the full SDK
//
// # Getting Started
//
// app/dashboard wires everything from environment variables; see its
// package documentation for the startup sequence. Components can also be
// assembled by hand, starting from a storage backend and a client:
//
//	storage, _ := localstore.NewFile(".poolkit_state.json")
//	api := client.New(baseURL,
//		client.WithTokenSource(client.StorageTokenSource(storage, session.DefaultTokenKey)))
//	sessions := session.New(client.SessionAuth{Client: api}, storage)
//	api.SetUnauthorizedHandler(sessions.HandleUnauthorized)
package poolkit
