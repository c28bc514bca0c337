package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener the HTTP server accepts connections on,
// either plain TCP or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a long-running listener with graceful shutdown.
type Server interface {
	// Start blocks until the server stops. A graceful stop returns nil.
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
