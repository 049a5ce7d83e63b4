package pg

import "time"

// Config is the environment-driven Postgres pool configuration.
// An empty URL means Postgres is not used.
type Config struct {
	URL             string        `env:"PG_CONN_URL"`
	MaxConns        int32         `env:"PG_MAX_CONNS" envDefault:"4"`
	MinConns        int32         `env:"PG_MIN_CONNS" envDefault:"0"`
	MaxConnIdleTime time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
	RetryAttempts   int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"2s"`

	TranslationsTable string `env:"PG_TRANSLATIONS_TABLE" envDefault:"translations"`
	CreateSchema      bool   `env:"PG_CREATE_SCHEMA" envDefault:"false"`
}

// Enabled reports whether a URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
