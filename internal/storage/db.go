package storage

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Document struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type ImportLog struct {
	ID         int64
	RunID      string
	Source     string
	Customers  int64
	Payments   int64
	Expenses   int64
	Invoices   int64
	ImportedAt time.Time
}
