package prefs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashpool/poolkit/core/localstore"
	"github.com/hashpool/poolkit/mining"
	"github.com/hashpool/poolkit/pkg/logger"
)

// DefaultCurrencyKey is the storage key the display currency persists under.
const DefaultCurrencyKey = "display_currency"

// ErrPersistPreference is returned when a preference cannot be written to
// durable storage. The in-memory value is not changed on failure.
var ErrPersistPreference = errors.New("prefs: failed to persist preference")

// Store keeps per-device display preferences in durable storage. A missing
// or unreadable value falls back to the default; preferences are never a
// reason to fail the UI.
type Store struct {
	storage localstore.Store
	logger  *slog.Logger
	key     string
}

// Option configures the Store.
type Option func(*Store)

// WithCurrencyKey overrides the storage key for the display currency.
func WithCurrencyKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger configures structured logging.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.logger = log
		}
	}
}

// New creates a preference store over the given durable storage.
func New(storage localstore.Store, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		key:     DefaultCurrencyKey,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// DisplayCurrency returns the persisted display currency, or BTC when none
// is stored or the stored value is not a known currency.
func (s *Store) DisplayCurrency(ctx context.Context) mining.Currency {
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, localstore.ErrKeyNotFound) {
			s.logger.Warn("preference read failed", logger.Error(err))
		}
		return mining.BTC
	}

	currency, err := mining.ParseCurrency(raw)
	if err != nil {
		s.logger.Warn("stored currency is unknown, falling back",
			slog.String("stored", raw))
		return mining.BTC
	}
	return currency
}

// SetDisplayCurrency validates and persists the display currency.
func (s *Store) SetDisplayCurrency(ctx context.Context, currency mining.Currency) error {
	if _, err := mining.ParseCurrency(string(currency)); err != nil {
		return err
	}

	if err := s.storage.Set(ctx, s.key, string(currency)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistPreference, err)
	}
	return nil
}
