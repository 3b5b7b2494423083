package storage

import (
	"context"
	"time"
)

const getDocument = `
SELECT key, value, updated_at FROM documents WHERE key = ?
`

func (q *Queries) GetDocument(ctx context.Context, key string) (Document, error) {
	row := q.db.QueryRowContext(ctx, getDocument, key)
	var d Document
	err := row.Scan(&d.Key, &d.Value, &d.UpdatedAt)
	return d, err
}

const upsertDocument = `
INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

type UpsertDocumentParams struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

func (q *Queries) UpsertDocument(ctx context.Context, arg UpsertDocumentParams) error {
	_, err := q.db.ExecContext(ctx, upsertDocument, arg.Key, arg.Value, arg.UpdatedAt)
	return err
}

const listDocumentKeys = `
SELECT key FROM documents ORDER BY key
`

func (q *Queries) ListDocumentKeys(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listDocumentKeys)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		items = append(items, key)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createImportLog = `
INSERT INTO import_log (run_id, source, customers, payments, expenses, invoices, imported_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, run_id, source, customers, payments, expenses, invoices, imported_at
`

type CreateImportLogParams struct {
	RunID      string
	Source     string
	Customers  int64
	Payments   int64
	Expenses   int64
	Invoices   int64
	ImportedAt time.Time
}

func (q *Queries) CreateImportLog(ctx context.Context, arg CreateImportLogParams) (ImportLog, error) {
	row := q.db.QueryRowContext(ctx, createImportLog,
		arg.RunID,
		arg.Source,
		arg.Customers,
		arg.Payments,
		arg.Expenses,
		arg.Invoices,
		arg.ImportedAt,
	)
	var i ImportLog
	err := row.Scan(
		&i.ID,
		&i.RunID,
		&i.Source,
		&i.Customers,
		&i.Payments,
		&i.Expenses,
		&i.Invoices,
		&i.ImportedAt,
	)
	return i, err
}

const listImportLogs = `
SELECT id, run_id, source, customers, payments, expenses, invoices, imported_at
FROM import_log ORDER BY id DESC LIMIT ?
`

func (q *Queries) ListImportLogs(ctx context.Context, limit int64) ([]ImportLog, error) {
	rows, err := q.db.QueryContext(ctx, listImportLogs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ImportLog
	for rows.Next() {
		var i ImportLog
		if err := rows.Scan(
			&i.ID,
			&i.RunID,
			&i.Source,
			&i.Customers,
			&i.Payments,
			&i.Expenses,
			&i.Invoices,
			&i.ImportedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
