// Package server exposes the settings bridge over gRPC on the loopback
// interface.
package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"

	"github.com/easysurf/easysurf/internal/daemon/bridge"
	"github.com/easysurf/easysurf/internal/rpc"
)

// Host is the only interface the bridge listens on.
const Host = "127.0.0.1"

// Controls are the daemon operations reachable over the bridge beyond the
// settings window surface.
type Controls interface {
	RequestShutdown()
	PollerState() (mode string, interval time.Duration)
	WindowOpen() bool
}

// Server is the daemon's gRPC server.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	port       int
	startedAt  time.Time
	done       chan struct{}
	stopOnce   sync.Once
}

// New creates a new server listening on the specified loopback port.
// Pass port 0 for dynamic allocation.
func New(port int, b bridge.Bridge, c Controls) (*Server, error) {
	listener, err := (&net.ListenConfig{}).Listen(context.TODO(), "tcp", fmt.Sprintf("%s:%d", Host, port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}
	return NewWithListener(listener, b, c), nil
}

// NewWithListener creates a server on an existing listener.
func NewWithListener(listener net.Listener, b bridge.Bridge, c Controls) *Server {
	port := 0
	if addr, ok := listener.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}

	srv := &Server{
		grpcServer: grpc.NewServer(),
		listener:   listener,
		port:       port,
		startedAt:  time.Now().UTC(),
		done:       make(chan struct{}),
	}
	rpc.RegisterBridgeServer(srv.grpcServer, &bridgeService{bridge: b, controls: c, server: srv})
	return srv
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// Serve starts serving requests. This blocks until Stop is called.
func (s *Server) Serve() error {
	return s.grpcServer.Serve(s.listener)
}

// Stop ends open push streams and gracefully stops the server.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.grpcServer.GracefulStop()
		_ = s.listener.Close()
	})
}
