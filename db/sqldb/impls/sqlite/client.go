package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // side-effect: registers "sqlite"
)

const DBType = "sqlite"

// MemoryDB opens a private in-memory database
const MemoryDB = ":memory:"

// Register makes "sqlite" available to sqldb.New
func Register() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

type Client struct {
	Handle // [Embedded] for Promoted Methods
	Conf   *sqldb.Conf
	dsn    string
}

// Ensure sqlite.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

// BuildDSN returns the file DSN with foreign keys and a busy timeout enabled
func BuildDSN(path string) string {
	if path == "" {
		path = MemoryDB
	}
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Set("_time_format", "sqlite")
	return "file:" + path + "?" + q.Encode()
}

func (c *Client) Init() error {
	if c.Conf.DSN != "" {
		c.dsn = c.Conf.DSN
	} else {
		c.dsn = BuildDSN(c.Conf.DB)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Open(ctx); err != nil {
		return err
	}
	if err := c.Ping(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	zap.L().Info("sqlite client initialized", zap.String("db", c.Conf.DB))
	return nil
}

func (c *Client) Open(_ context.Context) error {
	db, err := sql.Open("sqlite", c.dsn)
	if err != nil {
		return err
	}
	// one writer. an in-memory database also lives and dies with its only connection
	db.SetMaxOpenConns(1)
	if strings.Contains(c.dsn, MemoryDB) {
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}
	c.DB = db
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}
	zap.L().Info("closing sqlite client")
	return c.DB.Close()
}

func (c *Client) GetHandle() sqldb.Handle {
	return &c.Handle
}

func (c *Client) GetConf() *sqldb.Conf {
	return c.Conf
}

func (c *Client) GetDSN() string {
	return c.dsn
}

func (c *Client) BeginTx(ctx context.Context) (sqldb.Tx, error) {
	if c.DB == nil {
		return nil, fmt.Errorf("sqlite client not initialized")
	}
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}
