package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
)

// ErrListen is returned by servers built with NewFailingServer.
var ErrListen = errors.New("listen failure")

// StubHTTPServer stands in for the service's HTTP servers. ListenAndServe returns ListenErr
// immediately; Shutdown waits on Unblock when it is set.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Unblock     chan struct{}

	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32
}

// NewClosedServer returns a server whose listen loop reports a normal close.
func NewClosedServer() *StubHTTPServer {
	return &StubHTTPServer{ListenErr: http.ErrServerClosed}
}

// NewFailingServer returns a server whose listen loop fails with ErrListen.
func NewFailingServer() *StubHTTPServer {
	return &StubHTTPServer{ListenErr: ErrListen}
}

// NewBlockingServer returns a server whose Shutdown blocks until unblock is closed or ctx ends.
func NewBlockingServer(unblock chan struct{}) *StubHTTPServer {
	return &StubHTTPServer{Unblock: unblock}
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.listenCalls.Add(1)
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls.Add(1)
	if s.Unblock != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Unblock:
		}
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NewServeMux()
	}
	return s.HandlerVal
}

// ListenCalls reports how many times ListenAndServe ran.
func (s *StubHTTPServer) ListenCalls() int { return int(s.listenCalls.Load()) }

// ShutdownCalls reports how many times Shutdown ran.
func (s *StubHTTPServer) ShutdownCalls() int { return int(s.shutdownCalls.Load()) }
