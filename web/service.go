// Package web runs the HTTP server as a svc.Service.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Christosun/flotech-report-system/svc"
	"go.uber.org/zap"
)

// ShutdownTimeout bounds how long in-flight requests get after the context ends
const ShutdownTimeout = 15 * time.Second

type Service struct {
	Ctx    context.Context    // Service Context
	Cancel context.CancelFunc // Service Context CancelFunc
	state  int                // internal service state
	done   chan error
	ln     net.Listener
	Server *http.Server
}

// Ensure Service implements svc.Service
var _ svc.Service = (*Service)(nil)

func NewService(parentCtx context.Context, addr string, router http.Handler) *Service {
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	return &Service{
		Ctx:    svcCtx,
		Cancel: svcCancel,
		state:  svc.StateREADY,
		done:   make(chan error, 1),
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return svcCtx },
		},
	}
}

func (s *Service) Name() string {
	return "WebService"
}

// Start binds the listen address and serves in the background.
// Bind errors are returned here; later serve errors arrive on Done.
func (s *Service) Start() error {
	if s.state != svc.StateREADY {
		return fmt.Errorf("web service cannot start. state %d", s.state)
	}
	ln, err := net.Listen("tcp", s.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Server.Addr, err)
	}
	s.ln = ln
	s.state = svc.StateRUNNING
	zap.L().Info("web service listening", zap.String("addr", ln.Addr().String()))

	serveErr := make(chan error, 1)
	go func() {
		if err := s.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()
	go s.wait(serveErr)
	return nil
}

// wait shuts the server down once the service context ends
func (s *Service) wait(serveErr chan error) {
	select {
	case err := <-serveErr:
		s.Cancel()
		s.done <- err
		return
	case <-s.Ctx.Done():
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	err := s.Server.Shutdown(ctx)
	if err != nil {
		zap.L().Error("web service shutdown", zap.Error(err))
	}
	if serr := <-serveErr; serr != nil {
		err = serr
	}
	zap.L().Info("web service stopped")
	s.done <- err
}

// Addr is the bound address once started, e.g. when Server.Addr used port 0
func (s *Service) Addr() string {
	if s.ln == nil {
		return s.Server.Addr
	}
	return s.ln.Addr().String()
}

func (s *Service) Stop() {
	if s.state != svc.StateRUNNING {
		return
	}
	s.Cancel()
	s.state = svc.StateSTOPPED
}

func (s *Service) Done() <-chan error {
	return s.done
}
