// Package session keeps per-client state between requests, mainly the rounds of
// the number-guess and quiz games.
//
// # Architecture
//
// A Manager pairs a Transport, which carries the token, with a Store, which
// persists the session:
//
//	┌────────┐  token  ┌───────────┐
//	│ Client │ ──────► │ Transport │  CookieTransport (default) or HeaderTransport
//	└────────┘         └───────────┘
//	                         │
//	                         ▼
//	                   ┌───────────┐
//	                   │  Manager  │  Load / Ensure / Save / Destroy
//	                   └───────────┘
//	                         │
//	                         ▼
//	                   ┌───────────┐
//	                   │   Store   │  MemoryStore (default) or RedisStore
//	                   └───────────┘
//
// Tokens are 32 random bytes, base64url encoded. The session ID is a UUID and is
// never sent to the client.
//
// # Expiry
//
// Every save moves ExpiresAt to now + IdleTimeout, but never past CreatedAt +
// MaxLifetime. Stores drop expired sessions on Load: MemoryStore also sweeps
// them in the background every SweepInterval, RedisStore leaves it to key TTLs.
//
// # Configuration
//
//	SESSION_COOKIE_NAME     cookie carrying the token (default "sid")
//	SESSION_HEADER_NAME     use this header instead of the cookie
//	SESSION_SECURE_COOKIES  mark the cookie Secure (default false)
//	SESSION_IDLE_TIMEOUT    default 30m
//	SESSION_MAX_LIFETIME    default 24h
//	SESSION_SWEEP_INTERVAL  memory store sweeper period, 0 disables (default 5m)
//	SESSION_REDIS_PREFIX    key prefix for RedisStore (default "session:")
//
// # Usage
//
//	manager := session.NewFromConfig(cfg,
//		session.WithStore(session.NewRedisStore(client)),
//		session.WithLogger(log),
//	)
//	defer manager.Close()
//
//	r.Use(manager.Middleware)
//	r.With(manager.EnsureSession).Get("/games/number", h)
//
//	func h(w http.ResponseWriter, r *http.Request) {
//		sess, _ := session.FromContext(r.Context())
//		n, _ := sess.Int("secretNumber")
//		sess.Set("secretNumber", n+1)
//	}
//
// Middleware loads an existing session if the request presents a valid token;
// EnsureSession creates one and issues the token immediately. Both reuse a
// session that an outer middleware already put in the context, so they can be
// stacked. Handlers work on private copies; the session is saved back after the
// handler returns, and only when Set or Delete were called.
//
// Concurrent requests presenting the same token each see their own copy and the
// last save wins; callers needing strict ordering per client must serialise upstream.
//
// # Errors
//
// Stores return ErrNoSession, ErrExpired, ErrInvalidSession or ErrStoreFailure.
// Middleware treats a missing or expired session as anonymous and only logs
// store failures; EnsureSession answers 500 when it cannot start a session.
package session
