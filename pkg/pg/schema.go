package pg

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var tableNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TranslationsSchema returns the DDL for a translations table with (lang, key) as primary key.
func TranslationsSchema(table string) (string, error) {
	if !tableNameRe.MatchString(table) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	name := pgx.Identifier{table}.Sanitize()
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	lang  TEXT NOT NULL,
	key   TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (lang, key)
)`, name), nil
}

// EnsureTranslationsTable creates the translations table when it does not exist.
func EnsureTranslationsTable(ctx context.Context, db Execer, table string) error {
	ddl, err := TranslationsSchema(table)
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, ddl); err != nil {
		return errors.Join(ErrFailedToCreateSchema, err)
	}
	return nil
}

// UpsertTranslation inserts or replaces a single catalog entry.
func UpsertTranslation(ctx context.Context, db Execer, table, lang, key, value string) error {
	if !tableNameRe.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	sql := fmt.Sprintf(
		`INSERT INTO %s (lang, key, value) VALUES ($1, $2, $3) ON CONFLICT (lang, key) DO UPDATE SET value = EXCLUDED.value`,
		pgx.Identifier{table}.Sanitize(),
	)
	_, err := db.Exec(ctx, sql, lang, key, value)
	return err
}
