package notification

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBufferSize is the default buffer size for the notification channel.
	DefaultBufferSize = 32
)

// ErrNotifierClosed is returned when publishing to a closed notifier.
var ErrNotifierClosed = errors.New("notification: notifier closed")

// Level classifies a notification for presentation.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a single transient message for the user. The UI renders
// it as a toast and dismisses it; the SDK never blocks on delivery.
type Notification struct {
	ID      uuid.UUID
	Level   Level
	Title   string
	Message string
	At      time.Time
}

// Notifier is a buffered in-memory channel of user-facing notifications.
// It is safe for concurrent publishers. When the buffer is full the oldest
// pending notification is dropped rather than blocking a store operation.
type Notifier struct {
	ch     chan Notification
	logger *slog.Logger
	mu     sync.RWMutex
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithBufferSize sets the channel buffer size. Default is 32.
func WithBufferSize(size int) Option {
	return func(n *Notifier) {
		if size > 0 {
			n.ch = make(chan Notification, size)
		}
	}
}

// WithLogger configures structured logging for the notifier.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New creates a notifier.
//
// Example:
//
//	notifier := notification.New(notification.WithBufferSize(64))
//	defer notifier.Close()
func New(opts ...Option) *Notifier {
	n := &Notifier{
		ch:     make(chan Notification, DefaultBufferSize),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Success publishes a success notification.
func (n *Notifier) Success(title, message string) {
	n.publish(Notification{Level: LevelSuccess, Title: title, Message: message})
}

// Error publishes an error notification.
func (n *Notifier) Error(title, message string) {
	n.publish(Notification{Level: LevelError, Title: title, Message: message})
}

// Info publishes an informational notification.
func (n *Notifier) Info(title, message string) {
	n.publish(Notification{Level: LevelInfo, Title: title, Message: message})
}

func (n *Notifier) publish(msg Notification) {
	msg.ID = uuid.New()
	msg.At = time.Now()

	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.logger.Warn("notification dropped, notifier closed",
			slog.String("title", msg.Title))
		return
	}

	for {
		select {
		case n.ch <- msg:
			n.logger.Debug("notification published",
				slog.String("level", string(msg.Level)),
				slog.String("title", msg.Title))
			return
		default:
			// Buffer full: drop the oldest so store operations never block on the UI.
			select {
			case dropped := <-n.ch:
				n.logger.Warn("notification dropped, buffer full",
					slog.String("title", dropped.Title))
			default:
			}
		}
	}
}

// Notifications returns the read-only channel the UI consumes.
func (n *Notifier) Notifications() <-chan Notification {
	return n.ch
}

// Close shuts the notifier down. Publishing after Close is a silent no-op
// so teardown ordering never panics a store operation in flight.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrNotifierClosed
	}

	n.closed = true
	close(n.ch)
	return nil
}
