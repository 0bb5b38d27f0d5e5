// Package client implements the HTTP client for the mining-pool dashboard
// API: auth, proxy management, worker listings and hashrate telemetry.
//
// One Client serves every endpoint group. It injects the bearer token on
// each request from a TokenSource (typically backed by durable storage,
// which only the session store writes) and fires the unauthorized hook on
// any 401 so the session layer can tear itself down:
//
//	api := client.New("https://pool.example.com/api",
//		client.WithTokenSource(client.StorageTokenSource(store, session.DefaultTokenKey)),
//	)
//	sessions := session.New(client.SessionAuth{Client: api}, store, notifier)
//	api.SetUnauthorizedHandler(sessions.HandleUnauthorized)
//
// Errors come in two flavors. Server rejections are *APIError carrying the
// HTTP status and the body's detail string; 401s additionally match
// ErrUnauthorized. Network and decoding failures match ErrTransport and
// never carry server detail.
package client
