package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

const DBType = "mysql"

// Register makes "mysql" available to sqldb.New
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

// Ensure mysql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func (c *Client) Init() error {
	dsn, err := c.buildDSN()
	if err != nil {
		return err
	}
	c.dsn = dsn
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Open(ctx); err != nil {
		return err
	}
	if err := c.Ping(ctx); err != nil {
		return fmt.Errorf("mysql ping failed: %w", err)
	}
	zap.L().Info("mysql client initialized", zap.String("host", c.Conf.Host), zap.String("db", c.Conf.DB))
	return nil
}

// buildDSN prefers a literal DSN from the conf. Otherwise ClientFoundRows is
// set so an UPDATE that leaves a row unchanged still reports it as matched.
func (c *Client) buildDSN() (string, error) {
	if c.Conf.DSN != "" {
		return c.Conf.DSN, nil
	}
	tz := c.Conf.TZ
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", fmt.Errorf("mysql tz %q: %w", tz, err)
	}
	cfg := mysql.NewConfig()
	cfg.User = c.Conf.User
	cfg.Passwd = c.Conf.PW
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", c.Conf.Host, c.Conf.Port)
	cfg.DBName = c.Conf.DB
	cfg.ParseTime = true
	cfg.Loc = loc
	cfg.ClientFoundRows = true
	cfg.MultiStatements = true
	cfg.Params = map[string]string{"sql_mode": "ANSI_QUOTES"}
	return cfg.FormatDSN(), nil
}

func (c *Client) Open(_ context.Context) error {
	db, err := sql.Open("mysql", c.dsn)
	if err != nil {
		return err
	}
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxOpenConns(c.Conf.PoolSize(10))
	db.SetMaxIdleConns(c.Conf.PoolSize(10))
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
	zap.L().Info("closing mysql client")
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
		return nil, fmt.Errorf("mysql client not initialized")
	}
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}
