// Package conf owns the process wiring: config files, databases, services and shutdown.
package conf

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Christosun/flotech-report-system/db"
	"github.com/Christosun/flotech-report-system/db/kvdb"
	"github.com/Christosun/flotech-report-system/db/kvdb/impls/memory"
	"github.com/Christosun/flotech-report-system/db/kvdb/impls/redis"
	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/Christosun/flotech-report-system/db/sqldb/impls/mysql"
	"github.com/Christosun/flotech-report-system/db/sqldb/impls/pgsql"
	"github.com/Christosun/flotech-report-system/db/sqldb/impls/sqlite"
	"github.com/Christosun/flotech-report-system/documents"
	"github.com/Christosun/flotech-report-system/logging"
	"github.com/Christosun/flotech-report-system/sec"
	"github.com/Christosun/flotech-report-system/stores"
	"github.com/Christosun/flotech-report-system/svc"
	"github.com/Christosun/flotech-report-system/throttle"
	"github.com/Christosun/flotech-report-system/web"
	"go.uber.org/zap"
)

// DefaultSQLDB is the entry of .sql-databases.json used when sql_db is empty
const DefaultSQLDB = "main"

// LoginLockConf locks an email after repeated wrong passwords
type LoginLockConf struct {
	MaxFailures   int64 `json:"max_failures"`   // 0 disables the lock
	WindowMinutes int   `json:"window_minutes"` // 0 = 15
}

func (c LoginLockConf) Window() time.Duration {
	if c.WindowMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.WindowMinutes) * time.Minute
}

// ThrottleConf configures the token bucket groups keyed by client IP
type ThrottleConf struct {
	CleanupCycleSec     int                            `json:"cleanup_cycle_sec"`      // 0 = 60
	CleanupOlderThanSec int                            `json:"cleanup_older_than_sec"` // 0 = 600
	Groups              map[string]throttle.BucketConf `json:"groups"`                 // "login", "pdf"
}

// Core - common config
type Core struct {
	AppName    string             `json:"app_name"`
	Listen     string             `json:"listen"`     // HTTP Server Listen IP:PORT Address
	Host       string             `json:"host"`       // HTTP Host. Can be used to generate public url endpoints
	Log        logging.Conf       `json:"log"`        // process logger
	SQLDB      string             `json:"sql_db"`     // entry name in .sql-databases.json
	UploadDir  string             `json:"upload_dir"` // report photos, relative to AppRoot
	LogoPath   string             `json:"logo_path"`  // relative to AppRoot
	Company    *documents.Company `json:"company"`    // overrides the built-in identity
	JWT        sec.TokenConf      `json:"jwt"`
	LoginLock  LoginLockConf      `json:"login_lock"`
	Throttle   ThrottleConf       `json:"throttle"`
	AppRoot    string             `json:"-"` // Filled from compiled paths
	RootCtx    context.Context    `json:"-"` // Global Context with RootCancel
	RootCancel context.CancelFunc `json:"-"` // CancelFunc for RootCtx

	Logger              *zap.Logger                   `json:"-"` // BaseInit
	WebService          *web.Service                  `json:"-"` // PrepareWebService
	ThrottleBucketStore *throttle.BucketStore[string] `json:"-"` // PrepareThrottleBucketStore
	KVDBConf            kvdb.Conf                     `json:"-"` // PrepareKVDatabase
	BackendKVDBClient   kvdb.Client                   `json:"-"` // PrepareKVDatabase
	SQLDBConfs          map[string]*sqldb.Conf        `json:"-"` // PrepareSQLDatabases
	BackendSQLDBClients map[string]sqldb.Client       `json:"-"` // PrepareSQLDatabases
	RawStmts            map[string]*sqldb.RawSQLStore `json:"-"` // per db type

	services      []svc.Service // Services to Manage
	done          chan error
	restoreLogger func()
	uploadRoot    *os.Root
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. install the process logger
// 4. Start ShutdownSignalListener
func (c *Core) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	c.AppRoot = appRoot
	if err := c.readConfFile(".core.json", c); err != nil {
		return err
	}
	if c.AppName == "" {
		return errors.New("config/.core.json: app_name is required")
	}
	logger, restore, err := logging.Install(c.Log)
	if err != nil {
		return err
	}
	c.Logger, c.restoreLogger = logger.With(zap.String("app", c.AppName)), restore
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.startShutdownSignalListener()
	return nil
}

// readConfFile decodes config/<name> into v
func (c *Core) readConfFile(name string, v any) error {
	confBytes, err := os.ReadFile(filepath.Join(c.AppRoot, "config", name))
	if err != nil {
		return err
	}
	if err = json.Unmarshal(confBytes, v); err != nil {
		return fmt.Errorf("config/%s: %w", name, err)
	}
	return nil
}

func (c *Core) AddService(s svc.Service) {
	c.services = append(c.services, s)
	zap.L().Info("service added", zap.String("service", s.Name()), zap.Int("total", len(c.services)))
}

func (c *Core) StartServices() error {
	c.done = make(chan error, len(c.services))
	for _, s := range c.services {
		if err := s.Start(); err != nil {
			return fmt.Errorf("start %s: %w", s.Name(), err)
		}
		go func() {
			c.done <- <-s.Done()
		}()
	}
	return nil
}

// WaitServicesDone blocks until every started service reported on Done.
// The first error cancels the root context so the others wind down too.
func (c *Core) WaitServicesDone() error {
	var first error
	for range c.services {
		if err := <-c.done; err != nil && first == nil {
			first = err
			c.RootCancel()
		}
	}
	return first
}

func (c *Core) StopServices() {
	for _, s := range c.services {
		s.Stop()
	}
}

func (c *Core) startShutdownSignalListener() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			zap.L().Info("shutting down", zap.String("signal", sig.String()))
			c.RootCancel() // broadcast to all child services via Context.Done()
		case <-c.RootCtx.Done():
		}
	}()
}

func (c *Core) PrepareWebService(router http.Handler) {
	c.WebService = web.NewService(c.RootCtx, c.Listen, router)
	c.AddService(c.WebService)
}

// PrepareThrottleBucketStore registers every configured bucket group
func (c *Core) PrepareThrottleBucketStore() error {
	cycle := time.Duration(c.Throttle.CleanupCycleSec) * time.Second
	if cycle <= 0 {
		cycle = time.Minute
	}
	olderThan := time.Duration(c.Throttle.CleanupOlderThanSec) * time.Second
	if olderThan <= 0 {
		olderThan = 10 * time.Minute
	}
	store := throttle.NewBucketStore[string](c.RootCtx, cycle, olderThan)
	for name, bc := range c.Throttle.Groups {
		if err := store.SetBucketGroup(name, bc); err != nil {
			return err
		}
	}
	c.ThrottleBucketStore = store
	c.AddService(store)
	return nil
}

// PrepareKVDatabase connects config/.kv-databases.json or, when the file
// is absent, a process-local memory store
func (c *Core) PrepareKVDatabase() error {
	redis.Register()
	memory.Register()
	err := c.readConfFile(".kv-databases.json", &c.KVDBConf)
	if errors.Is(err, fs.ErrNotExist) {
		c.KVDBConf = kvdb.Conf{Type: memory.KVType}
	} else if err != nil {
		return err
	}
	client, err := kvdb.New(c.KVDBConf.Type, &c.KVDBConf)
	if err != nil {
		return err
	}
	if err = client.Init(); err != nil {
		return err
	}
	c.BackendKVDBClient = client
	zap.L().Info("kv database ready", zap.String("kvtype", c.KVDBConf.Type))
	return nil
}

// PrepareSQLDatabases builds & inits a client per entry of config/.sql-databases.json
// and loads the raw statements of every dialect in use
func (c *Core) PrepareSQLDatabases() error {
	c.SQLDBConfs = make(map[string]*sqldb.Conf)
	if err := c.readConfFile(".sql-databases.json", &c.SQLDBConfs); err != nil {
		return err
	}

	// Registering Supported Implementations
	pgsql.Register()
	mysql.Register()
	sqlite.Register()

	c.BackendSQLDBClients = make(map[string]sqldb.Client)
	c.RawStmts = make(map[string]*sqldb.RawSQLStore)
	for dbName, dbConf := range c.SQLDBConfs {
		if dbConf.Type == sqlite.DBType && dbConf.DB != sqlite.MemoryDB && !filepath.IsAbs(dbConf.DB) {
			dbConf.DB = filepath.Join(c.AppRoot, dbConf.DB)
		}
		if dbConf.Type == sqlite.DBType && dbConf.DB != sqlite.MemoryDB {
			if err := os.MkdirAll(filepath.Dir(dbConf.DB), 0o755); err != nil {
				return fmt.Errorf("sql db %q: %w", dbName, err)
			}
		}
		dbClient, err := sqldb.New(dbConf.Type, dbConf)
		if err != nil {
			return fmt.Errorf("sql db %q: %w", dbName, err)
		}
		if err = dbClient.Init(); err != nil {
			return fmt.Errorf("sql db %q: %w", dbName, err)
		}
		c.BackendSQLDBClients[dbName] = dbClient
		if _, ok := c.RawStmts[dbConf.Type]; ok {
			continue
		}
		stmts, err := sqldb.LoadRawStmts(dbConf.Type)
		if err != nil {
			return err
		}
		c.RawStmts[dbConf.Type] = stmts
	}
	return nil
}

// SQLDBClient returns the client named by sql_db with its statements
func (c *Core) SQLDBClient() (sqldb.Client, *sqldb.RawSQLStore, error) {
	name := c.SQLDB
	if name == "" {
		name = DefaultSQLDB
	}
	client, ok := c.BackendSQLDBClients[name]
	if !ok {
		return nil, nil, fmt.Errorf("sql database %q not configured", name)
	}
	return client, c.RawStmts[client.GetConf().Type], nil
}

// Stores builds the record stores over the main SQL database
func (c *Core) Stores() (*stores.Stores, error) {
	client, stmts, err := c.SQLDBClient()
	if err != nil {
		return nil, err
	}
	return stores.New(client, stmts), nil
}

// Assembler builds the document assembler with the configured logo and identity.
// Report photos are read below UploadDir only.
func (c *Core) Assembler() (*documents.Assembler, error) {
	opts := []documents.Option{documents.WithLogger(c.Logger)}
	if c.LogoPath != "" {
		logo, err := documents.LoadLogo(c.path(c.LogoPath))
		if err != nil {
			return nil, err
		}
		opts = append(opts, documents.WithLogo(logo))
	}
	if c.Company != nil {
		opts = append(opts, documents.WithCompany(*c.Company))
	}
	uploads := c.UploadDir
	if uploads == "" {
		uploads = "uploads"
	}
	root, err := os.OpenRoot(c.path(uploads))
	if err != nil {
		zap.L().Warn("upload dir unavailable, report photos become placeholders", zap.Error(err))
		opts = append(opts, documents.WithFiles(func(string) ([]byte, error) { return nil, err }))
	} else {
		c.uploadRoot = root
		opts = append(opts, documents.WithFiles(func(p string) ([]byte, error) {
			p = strings.TrimPrefix(filepath.ToSlash(p), "/")
			return root.ReadFile(strings.TrimPrefix(p, filepath.ToSlash(uploads)+"/"))
		}))
	}
	return documents.New(opts...), nil
}

// Issuer builds the access token issuer
func (c *Core) Issuer() (*sec.Issuer, error) {
	return sec.NewIssuer(c.AppName, c.JWT)
}

func (c *Core) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.AppRoot, p)
}

func (c *Core) ResourceCleanUp() {
	zap.L().Info("app resource cleaning up")
	if c.BackendKVDBClient != nil {
		db.CloseClient("kv:"+c.KVDBConf.Type, c.BackendKVDBClient)
	}
	for name, sqlDBClient := range c.BackendSQLDBClients {
		db.CloseClient("sql:"+name+":"+sqlDBClient.GetConf().Type, sqlDBClient)
	}
	if c.uploadRoot != nil {
		_ = c.uploadRoot.Close()
	}
	zap.L().Info("app resource cleanup complete")
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	if c.restoreLogger != nil {
		c.restoreLogger()
	}
}
