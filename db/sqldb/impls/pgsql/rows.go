package pgsql

import (
	"errors"

	"github.com/Christosun/flotech-report-system/db/sqldb"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Rows struct {
	current pgx.Rows
}

// Ensure pgsql.Rows implements sqldb.Rows
var _ sqldb.Rows = (*Rows)(nil)

func (r *Rows) Next() bool {
	return r.current.Next()
}

func (r *Rows) Scan(dest ...any) error {
	return r.current.Scan(dest...)
}

func (r *Rows) Close() error {
	r.current.Close()
	return nil
}

func (r *Rows) Err() error {
	return r.current.Err()
}

type Row struct {
	row pgx.Row
}

// Ensure pgsql.Row implements sqldb.Row
var _ sqldb.Row = (*Row)(nil)

func (r *Row) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqldb.ErrNoRows
	}
	return err
}

type Result struct {
	tag          pgconn.CommandTag
	lastInsertID int64
	rowsAffected int64
}

// Ensure pgsql.Result implements sqldb.Result
var _ sqldb.Result = (*Result)(nil)

func (r *Result) RowsAffected() (int64, error) {
	if r.rowsAffected > 0 {
		return r.rowsAffected, nil
	}
	return r.tag.RowsAffected(), nil
}

func (r *Result) LastInsertId() (int64, error) {
	return r.lastInsertID, nil
}
