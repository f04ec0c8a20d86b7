package scraper

import (
	"context"
	"fmt"
	"sync"

	"github.com/use-agent/pagelens/metrics"
	"github.com/use-agent/pagelens/models"
	"github.com/use-agent/pagelens/reqlog"
)

// Conn is an open connection to a remote browser holding one page.
type Conn interface {
	Page() Page
	Close() error
}

// Connector opens connections to a remote browser endpoint.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}

// Session is the exclusive ownership of one Conn by one request.
// Release is idempotent; the underlying connection is closed once.
type Session struct {
	conn    Conn
	once    sync.Once
	metrics *metrics.Metrics
}

// Page returns the session's page.
func (s *Session) Page() Page {
	return s.conn.Page()
}

// Release closes the connection. Calls after the first are no-ops.
func (s *Session) Release(ctx context.Context) {
	s.once.Do(func() {
		if err := s.conn.Close(); err != nil {
			reqlog.Stage(ctx, "release").Warn("closing browser session failed", "error", err)
		} else {
			reqlog.Stage(ctx, "release").Debug("browser session closed")
		}
		s.metrics.SessionClosed()
	})
}

// Manager hands out request-scoped sessions. It holds no per-session state
// and is safe for concurrent use.
type Manager struct {
	connector Connector
	metrics   *metrics.Metrics
}

// NewManager creates a Manager over connector. m may be nil.
func NewManager(connector Connector, m *metrics.Metrics) *Manager {
	return &Manager{connector: connector, metrics: m}
}

// Acquire opens a new session. Connection failures are fatal to the
// request and are not retried.
func (m *Manager) Acquire(ctx context.Context) (*Session, error) {
	log := reqlog.Stage(ctx, "connect")

	if m.connector == nil {
		return nil, models.NewScrapeError(models.ErrCodeConnection, "remote browser is not configured", nil)
	}

	conn, err := m.connector.Connect(ctx)
	if err != nil {
		log.Warn("connecting to remote browser failed", "error", err)
		se := models.AsScrapeError(err)
		if se.Code == models.ErrCodeInternal {
			se = models.NewScrapeError(models.ErrCodeConnection, "failed to connect to remote browser", err)
		}
		return nil, se
	}

	m.metrics.SessionOpened()
	log.Debug("browser session opened")
	return &Session{conn: conn, metrics: m.metrics}, nil
}

// WithSession acquires a session, runs fn with its page, and releases the
// session on every exit path: normal return, error, or panic. A panic in
// fn is recovered and reported as an internal error.
func (m *Manager) WithSession(ctx context.Context, fn func(ctx context.Context, page Page) error) (err error) {
	session, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	defer session.Release(ctx)

	defer func() {
		if r := recover(); r != nil {
			reqlog.From(ctx).Error("recovered panic in browser session", "panic", r)
			err = models.NewScrapeError(models.ErrCodeInternal, fmt.Sprintf("unexpected fault: %v", r), nil)
		}
	}()

	return fn(ctx, session.Page())
}

// Do is WithSession for functions that produce a value.
func Do[T any](ctx context.Context, m *Manager, fn func(ctx context.Context, page Page) (T, error)) (T, error) {
	var out T
	err := m.WithSession(ctx, func(ctx context.Context, page Page) error {
		v, err := fn(ctx, page)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
