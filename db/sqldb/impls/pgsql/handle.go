package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const codeUniqueViolation = "23505"

type Handle struct {
	*pgxpool.Pool // [Embedded]
}

var _ sqldb.Handle = (*Handle)(nil)

// querier is the subset shared by *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (h *Handle) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	return execOn(ctx, h.Pool, query, args...)
}

func (h *Handle) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	return queryRowsOn(ctx, h.Pool, query, args...)
}

func (h *Handle) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	return &Row{row: h.Pool.QueryRow(ctx, query, args...)}
}

func (h *Handle) InsertStmt(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	return insertOn(ctx, h.Pool, query, args...)
}

func execOn(ctx context.Context, q querier, query string, args ...any) (sqldb.Result, error) {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	return &Result{tag: tag}, nil
}

func queryRowsOn(ctx context.Context, q querier, query string, args ...any) (sqldb.Rows, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Rows{current: rows}, nil
}

func insertOn(ctx context.Context, q querier, query string, args ...any) (sqldb.Result, error) {
	trimmed := strings.TrimSpace(query)
	if !strings.HasPrefix(strings.ToUpper(trimmed), "INSERT") {
		return nil, fmt.Errorf("InsertStmt must start with INSERT")
	}
	// append RETURNING id if missing
	if !strings.Contains(strings.ToUpper(query), "RETURNING") {
		query = strings.TrimSuffix(trimmed, ";") + " RETURNING id"
		var id int64
		if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			return nil, translateErr(err)
		}
		return &Result{lastInsertID: id, rowsAffected: 1}, nil
	}
	return execOn(ctx, q, query, args...)
}

// translateErr maps unique violations onto sqldb.ErrUniqueViolation
func translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return fmt.Errorf("%w: %s", sqldb.ErrUniqueViolation, pgErr.ConstraintName)
	}
	return err
}
