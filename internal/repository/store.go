package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store bundles the repositories of one device namespace.
type Store struct {
	Namespace    string
	Messages     MessageRepository
	CallLogs     CallLogRepository
	Contacts     ContactRepository
	Timeline     TimelineRepository
	Correlations CorrelationRepository
	URLFindings  URLFindingRepository
	Reports      ReportRepository
}

// NewStore builds a Store over a connection whose search_path targets the namespace schema.
func NewStore(namespace string, db *sqlx.DB, logger *zap.Logger) *Store {
	logger = logger.With(zap.String("namespace", namespace))
	return &Store{
		Namespace:    namespace,
		Messages:     NewMessageRepository(db, logger),
		CallLogs:     NewCallLogRepository(db, logger),
		Contacts:     NewContactRepository(db, logger),
		Timeline:     NewTimelineRepository(db, logger),
		Correlations: NewCorrelationRepository(db, logger),
		URLFindings:  NewURLFindingRepository(db, logger),
		Reports:      NewReportRepository(db, logger),
	}
}

var namespaceUnsafe = regexp.MustCompile(`[^a-z0-9_]`)

// NamespaceFor maps a device name onto its schema name.
func NamespaceFor(prefix, deviceName string) string {
	return prefix + namespaceUnsafe.ReplaceAllString(strings.ToLower(deviceName), "_")
}

// ErrRegistryClosed is returned by Open after Close.
var ErrRegistryClosed = errors.New("namespace registry closed")

// NamespaceRegistry opens and caches one Store per device.
type NamespaceRegistry struct {
	control     *sqlx.DB
	databaseURL string
	prefix      string
	logger      *zap.Logger

	// connect prepares a namespace schema and returns a connection scoped to it.
	connect func(ctx context.Context, namespace string) (*sqlx.DB, error)
	group   singleflight.Group

	mu     sync.Mutex
	closed bool
	dbs    map[string]*sqlx.DB
	stores map[string]*Store
}

func NewNamespaceRegistry(control *sqlx.DB, databaseURL, prefix string, logger *zap.Logger) *NamespaceRegistry {
	r := &NamespaceRegistry{
		control:     control,
		databaseURL: databaseURL,
		prefix:      prefix,
		logger:      logger,
		dbs:         make(map[string]*sqlx.DB),
		stores:      make(map[string]*Store),
	}
	r.connect = r.prepareNamespace
	return r
}

func (r *NamespaceRegistry) cached(namespace string) (*Store, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, false, ErrRegistryClosed
	}
	store, ok := r.stores[namespace]
	return store, ok, nil
}

// Open returns the Store for deviceName, creating and migrating its schema on first use.
// Concurrent first opens of one namespace share a single preparation; other
// namespaces are served from the cache meanwhile.
func (r *NamespaceRegistry) Open(ctx context.Context, deviceName string) (*Store, error) {
	namespace := NamespaceFor(r.prefix, deviceName)

	if store, ok, err := r.cached(namespace); err != nil || ok {
		return store, err
	}

	v, err, _ := r.group.Do(namespace, func() (any, error) {
		if store, ok, err := r.cached(namespace); err != nil || ok {
			return store, err
		}

		db, err := r.connect(ctx, namespace)
		if err != nil {
			return nil, err
		}
		store := NewStore(namespace, db, r.logger)

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed {
			db.Close()
			return nil, ErrRegistryClosed
		}
		r.dbs[namespace] = db
		r.stores[namespace] = store
		r.logger.Info("Opened device namespace", zap.String("namespace", namespace))
		return store, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}

func (r *NamespaceRegistry) prepareNamespace(ctx context.Context, namespace string) (*sqlx.DB, error) {
	if _, err := r.control.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(namespace)); err != nil {
		r.logger.Error("Failed to create device schema", zap.String("namespace", namespace), zap.Error(err))
		return nil, fmt.Errorf("failed to create schema %s: %w", namespace, err)
	}

	if err := MigrateDevice(r.databaseURL, namespace, r.logger); err != nil {
		r.logger.Error("Failed to migrate device schema", zap.String("namespace", namespace), zap.Error(err))
		return nil, err
	}

	dsn, err := WithSearchPath(r.databaseURL, namespace)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		r.logger.Error("Failed to connect to device schema", zap.String("namespace", namespace), zap.Error(err))
		return nil, fmt.Errorf("failed to connect to schema %s: %w", namespace, err)
	}
	return db, nil
}

// Close closes every cached namespace connection.
func (r *NamespaceRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	var firstErr error
	for namespace, db := range r.dbs {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.dbs, namespace)
		delete(r.stores, namespace)
	}
	return firstErr
}
