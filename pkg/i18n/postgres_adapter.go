package i18n

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool and *pgx.Conn used by PostgresAdapter.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// DefaultTranslationsTable is the table read by PostgresAdapter.
const DefaultTranslationsTable = "translations"

var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresAdapter loads flat (lang, key, value) rows from a table.
//
//	CREATE TABLE translations (
//	    lang  TEXT NOT NULL,
//	    key   TEXT NOT NULL,
//	    value TEXT NOT NULL,
//	    PRIMARY KEY (lang, key)
//	);
type PostgresAdapter struct {
	db    Querier
	table string
	langs []string
}

// PostgresOption configures PostgresAdapter.
type PostgresOption func(*PostgresAdapter)

// WithTable sets the table name, optionally schema-qualified.
func WithTable(table string) PostgresOption {
	return func(a *PostgresAdapter) {
		a.table = table
	}
}

// WithLanguages restricts loading to the given languages.
func WithLanguages(langs ...string) PostgresOption {
	return func(a *PostgresAdapter) {
		a.langs = langs
	}
}

// NewPostgresAdapter creates a PostgresAdapter.
func NewPostgresAdapter(db Querier, opts ...PostgresOption) *PostgresAdapter {
	a := &PostgresAdapter{db: db, table: DefaultTranslationsTable}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load implements TranslationAdapter.
func (a *PostgresAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	query, args, err := a.query()
	if err != nil {
		return nil, err
	}

	rows, err := a.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrFailedToQuery, err)
	}
	defer rows.Close()

	result := make(map[string]map[string]any)
	for rows.Next() {
		var lang, key, value string
		if err := rows.Scan(&lang, &key, &value); err != nil {
			return nil, errors.Join(ErrFailedToQuery, err)
		}

		lang = strings.ToLower(lang)
		if result[lang] == nil {
			result[lang] = make(map[string]any)
		}
		result[lang][key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToQuery, err)
	}

	return result, nil
}

func (a *PostgresAdapter) query() (string, []any, error) {
	if !tableNameRegex.MatchString(a.table) {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidTableName, a.table)
	}

	table := pgx.Identifier(strings.Split(a.table, ".")).Sanitize()
	query := "SELECT lang, key, value FROM " + table

	if len(a.langs) == 0 {
		return query + " ORDER BY lang, key", nil, nil
	}

	return query + " WHERE lang = ANY($1) ORDER BY lang, key", []any{a.langs}, nil
}
