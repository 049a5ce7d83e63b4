package httpserver

import "errors"

var (
	// ErrStart indicates that the listener could not be opened or the server failed while serving.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates that graceful shutdown did not complete in time.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
	// ErrAlreadyRunning is returned when Run is called twice on the same Server.
	ErrAlreadyRunning = errors.New("server already running")
)
