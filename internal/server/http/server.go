// Package http exposes the Auth Service over a JSON HTTP API built on gin.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/siteauth/internal/logging"
	"github.com/dmitrijs2005/siteauth/internal/server/models"
	"github.com/dmitrijs2005/siteauth/internal/server/services"
	"github.com/gin-gonic/gin"
)

// UserService is the subset of services.UserService the handlers need.
type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address        string
	users          UserService
	logger         logging.Logger
	jwtSecret      []byte
	allowedOrigins []string
}

func NewHTTPServer(a string, l logging.Logger, us UserService, secretKey string, allowedOrigins []string) *HTTPServer {
	return &HTTPServer{
		address:        a,
		logger:         l.With("module", "http_server"),
		users:          us,
		jwtSecret:      []byte(secretKey),
		allowedOrigins: allowedOrigins,
	}
}

// Handler builds the gin engine with all routes and middleware.
func (s *HTTPServer) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())
	if mw := s.corsMiddleware(); mw != nil {
		r.Use(mw)
	}

	r.GET("/healthz", s.healthz)

	api := r.Group("/api/auth")
	api.POST("/signup", s.signup)
	api.POST("/login", s.login)
	api.GET("/me", s.requireToken(), s.me)

	return r
}

// Run listens on the configured address and serves until ctx is cancelled,
// then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
