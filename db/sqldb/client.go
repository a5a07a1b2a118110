package sqldb

import (
	"context"
	"fmt"
	"sync"
)

// Client is one configured database. Stores only ever see its Handle side.
type Client interface {
	Init() error
	Open(ctx context.Context) error
	Close() error
	GetHandle() Handle
	Handle
	GetConf() *Conf
	GetDSN() string
	Ping(ctx context.Context) error
	BeginTx(ctx context.Context) (Tx, error)
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}

type Result interface {
	RowsAffected() (int64, error)
	LastInsertId() (int64, error)
}

// ClientFactory builds a Client for one "type" value of .sql-databases.json
type ClientFactory func(conf *Conf) (Client, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]ClientFactory{}
)

// RegisterFactory is called by each driver package; a later call for the same type wins
func RegisterFactory(dbType string, factory ClientFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[dbType] = factory
}

// New builds the client for dbType. Init and Open are left to the caller.
func New(dbType string, conf *Conf) (Client, error) {
	registryMu.RLock()
	factory, ok := registry[dbType]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, dbType)
	}
	return factory(conf)
}
