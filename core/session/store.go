package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/hashpool/poolkit/core/localstore"
	"github.com/hashpool/poolkit/pkg/logger"
)

// DefaultTokenKey is the durable-storage key holding the bearer token.
const DefaultTokenKey = "access_token"

// Store is the single source of truth for "is there a logged-in user, and
// who". It owns the bearer token: nothing else writes the token key in
// durable storage.
//
// The store is created at application root and rehydrated once at boot.
// Page-level views gate on Status; the transport layer feeds 401 responses
// back through HandleUnauthorized.
type Store struct {
	auth     Authenticator
	storage  localstore.Store
	tokenKey string
	logger   *slog.Logger

	mu       sync.Mutex
	status   Status
	token    string
	identity *Identity
	errMsg   string
	inFlight bool
	hydrated bool
}

// Option configures the Store.
type Option func(*Store)

// WithTokenKey overrides the durable-storage key for the token.
func WithTokenKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.tokenKey = key
		}
	}
}

// WithLogger configures structured logging.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.logger = log
		}
	}
}

// New creates a session store over the given authenticator and durable
// storage. The store starts Unauthenticated; call Rehydrate once at boot.
func New(auth Authenticator, storage localstore.Store, opts ...Option) *Store {
	s := &Store{
		auth:     auth,
		storage:  storage,
		tokenKey: DefaultTokenKey,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		status:   StatusUnauthenticated,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Login authenticates with the given credentials. On success the token is
// persisted, identity decoded, and the store becomes Authenticated. On
// failure the store holds no token or identity at all, in memory or in
// durable storage, and Status is Error with the server's message
// ("Login failed" when the server sent none).
func (s *Store) Login(ctx context.Context, creds Credentials) error {
	if err := s.begin(); err != nil {
		return err
	}

	token, err := s.auth.Login(ctx, creds.Identifier, creds.Secret)
	if err != nil {
		return s.fail(ctx, "Login failed", err)
	}

	return s.succeed(ctx, "Login failed", token)
}

// Register creates an account and authenticates in one step (seamless
// registration). Same contract as Login with default error
// "Registration failed".
func (s *Store) Register(ctx context.Context, profile Profile) error {
	if err := s.begin(); err != nil {
		return err
	}

	token, err := s.auth.Register(ctx, profile.Name, profile.Password, profile.Attributes)
	if err != nil {
		return s.fail(ctx, "Registration failed", err)
	}

	return s.succeed(ctx, "Registration failed", token)
}

// Logout tears the session down unconditionally: durable storage cleared,
// in-memory state dropped. It cannot fail; a storage error only logs.
func (s *Store) Logout() {
	s.teardown()
	s.logger.Info("session logged out")
}

// HandleUnauthorized is the transport layer's 401 hook. Any authenticated
// request the server rejects triggers the same teardown as Logout.
func (s *Store) HandleUnauthorized() {
	s.teardown()
	s.logger.Info("session torn down after unauthorized response")
}

// Rehydrate restores the session from durable storage. It runs once at
// boot and resolves directly to Authenticated or Unauthenticated, never
// through Authenticating.
//
// A present token is decoded locally with no server round-trip and trusted
// optimistically for UI purposes; a malformed token is wiped. A second
// call returns ErrAlreadyHydrated, except after a storage read failure,
// which leaves the store eligible for a retry.
func (s *Store) Rehydrate(ctx context.Context) error {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return ErrAlreadyHydrated
	}
	s.hydrated = true
	s.mu.Unlock()

	token, err := s.storage.Get(ctx, s.tokenKey)
	if errors.Is(err, localstore.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		// Release the claim so a later boot retry can hydrate after a
		// transient storage failure.
		s.mu.Lock()
		s.hydrated = false
		s.mu.Unlock()

		s.logger.Error("rehydrate storage read failed", logger.Error(err))
		return err
	}

	identity, err := DecodeIdentity(token)
	if err != nil {
		s.logger.Warn("stored token malformed, wiping session", logger.Error(err))
		if derr := s.storage.Delete(ctx, s.tokenKey); derr != nil {
			s.logger.Error("failed to wipe malformed token", logger.Error(derr))
		}
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.identity = &identity
	s.status = StatusAuthenticated
	s.mu.Unlock()

	s.logger.Info("session rehydrated", slog.String("user", identity.DisplayName))
	return nil
}

// ClearError clears only the error message. Idempotent.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// Status returns the current authentication status.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// IsAuthenticated reports whether a session is held.
func (s *Store) IsAuthenticated() bool {
	return s.Status() == StatusAuthenticated
}

// Identity returns a copy of the decoded identity, or nil when none is
// held. Non-nil exactly when Status is Authenticated with a well-formed token.
func (s *Store) Identity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

// Token returns the bearer token currently held in memory.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Err returns the last operation's error message, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Reset returns the store to its pristine boot state. Test harnesses use
// it between cases; applications never call it.
func (s *Store) Reset() {
	s.teardown()
	s.mu.Lock()
	s.hydrated = false
	s.inFlight = false
	s.mu.Unlock()
}

// begin claims the single authentication slot and enters Authenticating.
func (s *Store) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return ErrOperationInFlight
	}
	s.inFlight = true
	s.status = StatusAuthenticating
	s.errMsg = ""
	return nil
}

// fail records the rejection and guarantees no half-authenticated state
// survives: memory and durable storage both end up without a token.
func (s *Store) fail(ctx context.Context, defaultMsg string, cause error) error {
	msg := defaultMsg
	var detailed interface{ ErrorDetail() string }
	if errors.As(cause, &detailed) && detailed.ErrorDetail() != "" {
		msg = detailed.ErrorDetail()
	}

	s.mu.Lock()
	s.status = StatusError
	s.errMsg = msg
	s.token = ""
	s.identity = nil
	s.inFlight = false
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, s.tokenKey); err != nil {
		s.logger.Error("failed to clear stale token", logger.Error(err))
	}

	s.logger.Warn("authentication failed",
		slog.String("message", msg), logger.Error(cause))
	return cause
}

func (s *Store) succeed(ctx context.Context, defaultMsg, token string) error {
	if err := s.storage.Set(ctx, s.tokenKey, token); err != nil {
		return s.fail(ctx, defaultMsg, errors.Join(ErrPersistToken, err))
	}

	var identity *Identity
	if decoded, err := DecodeIdentity(token); err == nil {
		identity = &decoded
	} else {
		// Authenticated with an undecodable token: the server accepted it,
		// the UI just cannot derive a display identity from it.
		s.logger.Warn("token accepted but identity undecodable", logger.Error(err))
	}

	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.status = StatusAuthenticated
	s.errMsg = ""
	s.inFlight = false
	s.mu.Unlock()

	return nil
}

// teardown clears memory and durable storage. Shared by Logout and the
// 401 hook.
func (s *Store) teardown() {
	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.status = StatusUnauthenticated
	s.errMsg = ""
	s.mu.Unlock()

	if err := s.storage.Delete(context.Background(), s.tokenKey); err != nil {
		s.logger.Error("failed to clear token from storage", logger.Error(err))
	}
}
