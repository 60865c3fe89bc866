package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"paymediator/pkg/platform/sentinel"
	"paymediator/pkg/platform/tx"
)

const defaultPostgresTable = "mediator_kv"

// PostgresBackend keeps every namespace in one table keyed by
// (namespace, item_key). A sequence column preserves first-write order so
// Keys and Iterate are stable for a given namespace.
type PostgresBackend struct {
	db    *sql.DB
	table string
	tx    *tx.Runner
}

// PostgresOption configures a PostgresBackend.
type PostgresOption func(*PostgresBackend)

// WithPostgresTable overrides the table name.
func WithPostgresTable(table string) PostgresOption {
	return func(b *PostgresBackend) {
		if table != "" {
			b.table = table
		}
	}
}

// NewPostgresBackend constructs a PostgreSQL-backed storage backend.
func NewPostgresBackend(db *sql.DB, opts ...PostgresOption) *PostgresBackend {
	b := &PostgresBackend{db: db, table: defaultPostgresTable, tx: tx.NewRunner(db, tx.DefaultTimeout)}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Migrate creates the backing table if it does not exist.
func (b *PostgresBackend) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			namespace  TEXT        NOT NULL,
			item_key   TEXT        NOT NULL,
			value      BYTEA       NOT NULL,
			seq        BIGSERIAL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (namespace, item_key)
		)`, pq.QuoteIdentifier(b.table))
	if _, err := b.db.ExecContext(ctx, query); err != nil {
		return translatePostgresError("migrate", err)
	}
	return nil
}

// RunInTx runs fn in one transaction. Namespaces used with the context fn
// receives join it.
func (b *PostgresBackend) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return b.tx.RunInTx(ctx, fn)
}

func (b *PostgresBackend) Namespace(name string) Namespace {
	return &postgresNamespace{db: b.db, table: pq.QuoteIdentifier(b.table), name: name}
}

type postgresNamespace struct {
	db    *sql.DB
	table string
	name  string
}

func (n *postgresNamespace) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := fmt.Sprintf(`SELECT value FROM %s WHERE namespace = $1 AND item_key = $2`, n.table)
	err := tx.QuerierFrom(ctx, n.db).QueryRowContext(ctx, query, n.name, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, translatePostgresError("get", err)
	}
	return value, nil
}

func (n *postgresNamespace) Set(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (namespace, item_key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (namespace, item_key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = now()`, n.table)
	if _, err := tx.QuerierFrom(ctx, n.db).ExecContext(ctx, query, n.name, key, value); err != nil {
		return translatePostgresError("set", err)
	}
	return nil
}

func (n *postgresNamespace) Remove(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE namespace = $1 AND item_key = $2`, n.table)
	if _, err := tx.QuerierFrom(ctx, n.db).ExecContext(ctx, query, n.name, key); err != nil {
		return translatePostgresError("remove", err)
	}
	return nil
}

func (n *postgresNamespace) Keys(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT item_key FROM %s WHERE namespace = $1 ORDER BY seq`, n.table)
	rows, err := tx.QuerierFrom(ctx, n.db).QueryContext(ctx, query, n.name)
	if err != nil {
		return nil, translatePostgresError("keys", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePostgresError("keys", err)
	}
	return keys, nil
}

func (n *postgresNamespace) Clear(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE namespace = $1`, n.table)
	if _, err := tx.QuerierFrom(ctx, n.db).ExecContext(ctx, query, n.name); err != nil {
		return translatePostgresError("clear", err)
	}
	return nil
}

// Iterate loads the namespace before calling fn so fn may write back into the
// same namespace without holding an open cursor.
func (n *postgresNamespace) Iterate(ctx context.Context, fn func(key string, value []byte) error) error {
	query := fmt.Sprintf(`SELECT item_key, value FROM %s WHERE namespace = $1 ORDER BY seq`, n.table)
	rows, err := tx.QuerierFrom(ctx, n.db).QueryContext(ctx, query, n.name)
	if err != nil {
		return translatePostgresError("iterate", err)
	}
	type entry struct {
		key   string
		value []byte
	}
	var entries []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.key, &e.value); err != nil {
			rows.Close()
			return fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return translatePostgresError("iterate", err)
	}

	for _, e := range entries {
		if err := fn(e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}

// translatePostgresError maps connection-class and missing-table failures to
// sentinel.ErrUnavailable so services treat them as infrastructure outages.
func translatePostgresError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code.Class() == "08":
			return fmt.Errorf("postgres %s: %w: %v", op, sentinel.ErrUnavailable, err)
		case pqErr.Code == "42P01":
			return fmt.Errorf("postgres %s: table missing, run migrations: %w: %v", op, sentinel.ErrUnavailable, err)
		}
	}
	return fmt.Errorf("postgres %s: %w", op, err)
}
