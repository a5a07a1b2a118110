// Package stores reads and writes the records behind every document.
//
// Statements live as embedded files under queries/<group>/sql. A `.sql` file
// holds standard SQL with `?` placeholders; a file named after a dialect
// (`.pgsql`, `.mysql`) replaces it for that dialect.
package stores

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/Christosun/flotech-report-system/nullable"
	"go.uber.org/zap"
)

//go:embed queries
var queriesFS embed.FS

var groups = []string{
	"schema",
	"users",
	"engineers",
	"reports",
	"onsite",
	"quotations",
	"handovers",
	"stock",
}

func init() {
	for _, group := range groups {
		sub, err := fs.Sub(queriesFS, path.Join("queries", group))
		if err != nil {
			panic(fmt.Errorf("stores: embedded group %q: %w", group, err))
		}
		sqldb.RegisterGroup(sub, group)
	}
}

var (
	// ErrNotFound is returned when the requested row does not exist
	ErrNotFound = fmt.Errorf("stores: not found: %w", sqldb.ErrNoRows)
	// ErrDuplicate is returned when a unique column already holds the value
	ErrDuplicate = errors.New("stores: duplicate")
)

// translate maps driver level errors onto the package sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sqldb.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, sqldb.ErrUniqueViolation):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return err
}

// base is shared by every store: the querier, the loaded statements and the clock
type base struct {
	q     sqldb.Querier
	stmts *sqldb.RawSQLStore
	group string
	now   func() time.Time
}

func (b *base) stmt(name string) (string, error) {
	return b.stmts.Stmt(b.group, name)
}

// expand fills the `??` lists of a statement. first is the ordinal of the first list placeholder.
func (b *base) expand(name string, first int, counts ...int) (string, error) {
	raw, err := b.stmt(name)
	if err != nil {
		return "", err
	}
	return sqldb.ExpandDynamicPlaceholders(raw, b.stmts.PlaceholderPrefix(), counts, first)
}

func (b *base) exec(ctx context.Context, name string, args ...any) (int64, error) {
	stmt, err := b.stmt(name)
	if err != nil {
		return 0, err
	}
	res, err := b.q.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, translate(err)
	}
	return res.RowsAffected()
}

// execOne runs an UPDATE or DELETE that must touch exactly one row
func (b *base) execOne(ctx context.Context, name string, args ...any) error {
	n, err := b.exec(ctx, name, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (b *base) insert(ctx context.Context, name string, args ...any) (int64, error) {
	stmt, err := b.stmt(name)
	if err != nil {
		return 0, err
	}
	res, err := b.q.InsertStmt(ctx, stmt, args...)
	if err != nil {
		return 0, translate(err)
	}
	return res.LastInsertId()
}

// stamp sets the creation and update times that are still unset
func (b *base) stamp(created, updated *nullable.Time) {
	now := b.now()
	if created != nil && !created.Valid {
		*created = nullable.TimeOf(now)
	}
	if updated != nil && !updated.Valid {
		*updated = nullable.TimeOf(now)
	}
}

// Stores groups one store per record kind over a single database
type Stores struct {
	Users      *Users
	Engineers  *Engineers
	Reports    *Reports
	Onsite     *OnsiteReports
	Quotations *Quotations
	Handovers  *Handovers
	Stock      *Stock
}

// Option configures New
type Option func(*base)

// WithClock replaces time.Now for created_at and updated_at stamps
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// New builds the stores over q with statements loaded for q's dialect
func New(q sqldb.Querier, stmts *sqldb.RawSQLStore, opts ...Option) *Stores {
	mk := func(group string) base {
		b := base{q: q, stmts: stmts, group: group, now: time.Now}
		for _, opt := range opts {
			opt(&b)
		}
		return b
	}
	return &Stores{
		Users:      &Users{mk("users")},
		Engineers:  &Engineers{mk("engineers")},
		Reports:    &Reports{mk("reports")},
		Onsite:     &OnsiteReports{base: mk("onsite"), engineers: &Engineers{mk("engineers")}},
		Quotations: &Quotations{mk("quotations")},
		Handovers:  &Handovers{mk("handovers")},
		Stock:      &Stock{mk("stock")},
	}
}

// InitSchema creates the tables that do not exist yet
func InitSchema(ctx context.Context, q sqldb.Querier, stmts *sqldb.RawSQLStore) error {
	script, err := stmts.Stmt("schema", "create")
	if err != nil {
		return err
	}
	n, err := sqldb.ExecScript(ctx, q, script)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	zap.L().Info("schema ready", zap.String("dbtype", stmts.DBType()), zap.Int("stmts", n))
	return nil
}
