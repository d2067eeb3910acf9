package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/logger"
)

const (
	connectTimeout    = 10 * time.Second
	disconnectTimeout = 5 * time.Second
)

// Session is the part of *mongo.Client the Manager needs.
type Session interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
	Disconnect(ctx context.Context) error
}

// Dialer opens a new session to uri.
type Dialer func(ctx context.Context, uri string) (Session, error)

// DialMongo connects with the Stable API v1 in strict mode.
func DialMongo(ctx context.Context, uri string) (Session, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Manager lazily opens one MongoDB session per process and hands it out to
// every request. Each Acquire pings the cached session and reconnects when
// the ping fails.
type Manager struct {
	uri    string
	dbName string
	dial   Dialer
	// onConnect runs once per fresh connection (index creation).
	onConnect func(ctx context.Context, database *mongo.Database) error

	mu       sync.RWMutex
	session  Session
	database *mongo.Database
	group    singleflight.Group
}

// Option customizes a Manager.
type Option func(*Manager)

// WithDialer replaces the driver dialer, mostly for tests.
func WithDialer(d Dialer) Option {
	return func(m *Manager) { m.dial = d }
}

// WithOnConnect registers a hook that runs after every fresh connection.
// Hook errors are logged, not returned.
func WithOnConnect(fn func(ctx context.Context, database *mongo.Database) error) Option {
	return func(m *Manager) { m.onConnect = fn }
}

// NewManager does not dial; the first Acquire does.
func NewManager(uri, dbName string, opts ...Option) *Manager {
	m := &Manager{uri: uri, dbName: dbName, dial: DialMongo}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Acquire returns the cached database handle after a liveness ping,
// connecting (or reconnecting) first if needed.
func (m *Manager) Acquire(ctx context.Context) (*mongo.Database, error) {
	m.mu.RLock()
	session, database := m.session, m.database
	m.mu.RUnlock()

	if session != nil {
		err := session.Ping(ctx, readpref.Primary())
		if err == nil {
			return database, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn().Err(err).Msg("cached MongoDB connection failed ping, reconnecting")
		m.discard(session)
	}

	v, err, _ := m.group.Do("connect", func() (interface{}, error) {
		return m.connect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Database), nil
}

// Collections resolves the named collections from the cached handle.
func (m *Manager) Collections(ctx context.Context) (*Collections, error) {
	database, err := m.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return CollectionsFor(database), nil
}

// Close disconnects the cached session. Only called on process shutdown.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	session := m.session
	m.session, m.database = nil, nil
	m.mu.Unlock()

	if session == nil {
		return nil
	}
	return session.Disconnect(ctx)
}

func (m *Manager) connect(ctx context.Context) (*mongo.Database, error) {
	// A concurrent caller may have connected while we waited on the group.
	m.mu.RLock()
	if m.session != nil {
		database := m.database
		m.mu.RUnlock()
		return database, nil
	}
	m.mu.RUnlock()

	// Shared by every waiter in the group, so it must not die with one request.
	dialCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), connectTimeout)
	defer cancel()

	session, err := m.dial(dialCtx, m.uri)
	if err != nil {
		logger.Error().Err(err).Msg("MongoDB connection error")
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := session.Ping(dialCtx, readpref.Primary()); err != nil {
		logger.Error().Err(err).Msg("MongoDB ping failed after connect")
		go disconnect(session)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	database := session.Database(m.dbName)
	if m.onConnect != nil {
		if err := m.onConnect(dialCtx, database); err != nil {
			logger.Warn().Err(err).Msg("MongoDB on-connect hook failed")
		}
	}

	m.mu.Lock()
	m.session, m.database = session, database
	m.mu.Unlock()

	logger.Info().Str("database", m.dbName).Msg("connected to MongoDB")
	return database, nil
}

// discard drops session from the cache if it is still the cached one.
func (m *Manager) discard(session Session) {
	m.mu.Lock()
	if m.session == session {
		m.session, m.database = nil, nil
	}
	m.mu.Unlock()
	go disconnect(session)
}

func disconnect(session Session) {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	if err := session.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		logger.Debug().Err(err).Msg("disconnect stale MongoDB session")
	}
}
