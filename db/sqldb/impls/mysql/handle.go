package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	driver "github.com/go-sql-driver/mysql"
)

const errDupEntry = 1062 // ER_DUP_ENTRY

type Handle struct {
	*sql.DB // [Embedded]
}

// Ensure mysql.Handle implements sqldb.Handle interface
var _ sqldb.Handle = (*Handle)(nil)

func (h *Handle) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	result, err := h.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	return &Result{result: result}, nil
}

func (h *Handle) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := h.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Rows{rows: rows}, nil
}

func (h *Handle) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	row := h.DB.QueryRowContext(ctx, query, args...)
	return &Row{row: row}
}

func (h *Handle) InsertStmt(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	if err := checkInsert(query); err != nil {
		return nil, err
	}
	return h.Exec(ctx, query, args...)
}

func checkInsert(query string) error {
	trimmed := strings.TrimSpace(query)
	if !strings.HasPrefix(strings.ToUpper(trimmed), "INSERT") {
		return fmt.Errorf("InsertStmt must start with INSERT")
	}
	return nil
}

// translateErr maps duplicate-key errors onto sqldb.ErrUniqueViolation
func translateErr(err error) error {
	var myErr *driver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errDupEntry {
		return fmt.Errorf("%w: %s", sqldb.ErrUniqueViolation, myErr.Message)
	}
	return err
}
