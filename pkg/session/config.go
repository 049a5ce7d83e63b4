package session

import "time"

// Config is the environment-driven session configuration.
type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	// HeaderName switches the transport from the cookie to this header.
	HeaderName    string        `env:"SESSION_HEADER_NAME"`
	SecureCookies bool          `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
	IdleTimeout   time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	MaxLifetime   time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"24h"`
	// SweepInterval drives the memory store's expiry sweeper; 0 disables it.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
	RedisPrefix   string        `env:"SESSION_REDIS_PREFIX" envDefault:"session:"`
}

// DefaultConfig mirrors the envDefault values.
func DefaultConfig() Config {
	return Config{
		CookieName:    "sid",
		IdleTimeout:   30 * time.Minute,
		MaxLifetime:   24 * time.Hour,
		SweepInterval: 5 * time.Minute,
		RedisPrefix:   DefaultRedisPrefix,
	}
}

func (c Config) transport() Transport {
	if c.HeaderName != "" {
		return HeaderTransport{Name: c.HeaderName}
	}
	return CookieTransport{Name: c.CookieName, Secure: c.SecureCookies}
}

// NewFromConfig creates a Manager from cfg. Options are applied after cfg.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
