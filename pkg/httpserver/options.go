package httpserver

import (
	"context"
	"log/slog"
	"time"
)

// Option configures a Server.
type Option func(*settings)

// Hook runs on server start (with the bound address) or after shutdown.
type Hook func(ctx context.Context, addr string)

// WithAddr sets the listen address. An empty address panics.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty address")
	}
	return func(s *settings) { s.addr = addr }
}

// WithTimeouts sets read, write and idle timeouts. Non-positive values are ignored.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *settings) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
		if idle > 0 {
			s.idleTimeout = idle
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithLogger sets the logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStartHook registers a hook called once the listener is bound.
func WithStartHook(h Hook) Option {
	return func(s *settings) {
		if h != nil {
			s.onStart = append(s.onStart, h)
		}
	}
}

// WithStopHook registers a hook called after shutdown completes.
func WithStopHook(h Hook) Option {
	return func(s *settings) {
		if h != nil {
			s.onStop = append(s.onStop, h)
		}
	}
}
