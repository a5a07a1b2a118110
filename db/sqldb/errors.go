package sqldb

import "errors"

var (
	// ErrNoRows is returned by Row.Scan when the query selected nothing
	ErrNoRows = errors.New("sqldb: no rows in result set")
	// ErrUniqueViolation is returned by Exec and InsertStmt when a unique constraint rejects the row
	ErrUniqueViolation = errors.New("sqldb: unique constraint violation")
	// ErrUnsupportedType is returned by New for a type no driver registered
	ErrUnsupportedType = errors.New("sqldb: unsupported database type")
)
