package dashboard

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/hashpool/poolkit/client"
	"github.com/hashpool/poolkit/core/collection"
	"github.com/hashpool/poolkit/core/config"
	"github.com/hashpool/poolkit/core/localstore"
	"github.com/hashpool/poolkit/core/notification"
	"github.com/hashpool/poolkit/core/prefs"
	"github.com/hashpool/poolkit/core/session"
	redisstore "github.com/hashpool/poolkit/integration/localstore/redis"
	"github.com/hashpool/poolkit/mining"
)

// App composes the SDK: one API client, the session store, the proxy
// collection store, preferences and the notification channel, all sharing
// one durable storage backend.
type App struct {
	Config   Config
	Client   *client.Client
	Sessions *session.Store
	Proxies  *collection.Store[mining.Proxy]
	Prefs    *prefs.Store
	Notifier *notification.Notifier
	Storage  localstore.Store

	logger  *slog.Logger
	closers []func() error
}

// Option configures the App.
type Option func(*App) error

// WithLogger replaces the default stderr logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) error {
		if log != nil {
			a.logger = log
		}
		return nil
	}
}

// WithStorage overrides the storage backend chosen from configuration.
func WithStorage(storage localstore.Store) Option {
	return func(a *App) error {
		if storage != nil {
			a.Storage = storage
		}
		return nil
	}
}

// New loads configuration from the environment and wires the full SDK.
// Callers own the returned App and must Close it.
func New(ctx context.Context, opts ...Option) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{Config: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = newLogger(cfg)
	}

	if app.Storage == nil {
		storage, err := app.openStorage(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.Storage = storage
	}

	app.Notifier = notification.New(notification.WithLogger(app.logger))
	app.closers = append(app.closers, func() error {
		app.Notifier.Close()
		return nil
	})

	app.Client = client.New(cfg.APIBaseURL,
		client.WithLogger(app.logger),
		client.WithTokenSource(client.StorageTokenSource(app.Storage, session.DefaultTokenKey)),
	)

	app.Sessions = session.New(
		client.SessionAuth{Client: app.Client},
		app.Storage,
		session.WithLogger(app.logger),
	)
	app.Client.SetUnauthorizedHandler(app.Sessions.HandleUnauthorized)

	app.Proxies = mining.NewProxyStore(app.Client, app.Notifier,
		collection.WithLogger[mining.Proxy](app.logger))

	app.Prefs = prefs.New(app.Storage, prefs.WithLogger(app.logger))

	return app, nil
}

// Start rehydrates the session from durable storage. Call once after New.
func (a *App) Start(ctx context.Context) error {
	return a.Sessions.Rehydrate(ctx)
}

// Close releases everything New opened, in reverse order.
func (a *App) Close() error {
	var last error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			last = err
		}
	}
	return last
}

// Logger exposes the app-wide logger for component wiring.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) openStorage(ctx context.Context, cfg Config) (localstore.Store, error) {
	if cfg.RedisURL == "" {
		return localstore.NewFile(cfg.StatePath)
	}

	var rcfg redisstore.Config
	if err := config.Load(&rcfg); err != nil {
		return nil, err
	}

	store, err := redisstore.ConnectStore(ctx, rcfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.Close)
	return store, nil
}

func newLogger(cfg Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", cfg.AppName))
}
