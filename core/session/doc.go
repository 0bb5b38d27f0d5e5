// Package session owns the authentication lifecycle of the dashboard
// client: current token, decoded identity, status flags, and the durable
// persistence of the token.
//
// # State machine
//
//	Unauthenticated -> Authenticating -> {Authenticated, Error}
//	Authenticated   -> Unauthenticated   (Logout, or a 401 on any request)
//	Error           -> Authenticating    (user retries Login/Register)
//
// Rehydrate runs only from the boot state and resolves directly to
// Authenticated or Unauthenticated without passing through Authenticating.
//
// # Trust boundary
//
// The identity is decoded from the token's claims segment without
// verifying the signature. That is a deliberate choice inherited from the
// dashboard's design: the decoded IsPrivileged flag only controls what the
// UI shows, never what the server allows. The server independently
// authorizes every privileged request against the signed token.
//
// # Wiring
//
//	storage := localstore.NewMemory()
//	api := client.New(baseURL,
//		client.WithTokenSource(client.StorageTokenSource(storage, session.DefaultTokenKey)))
//	sessions := session.New(client.SessionAuth{Client: api}, storage)
//	api.SetUnauthorizedHandler(sessions.HandleUnauthorized)
//
//	if err := sessions.Rehydrate(ctx); err != nil { ... }
package session
