// Package server is the HTTP surface of minipm: the GraphQL endpoint, health
// checks and the middleware chain in front of them.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"go.uber.org/zap/zapcore"

	"minipm/internal/config"
	"minipm/internal/graph"
	"minipm/internal/logging"
	"minipm/internal/tenant"
	"minipm/internal/tracker"
)

// Backend is the storage the server runs on. *store.Store implements it.
type Backend interface {
	tracker.Store
	tenant.Resolver
}

// Server wires the gin router to the tracker.
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	schema graphql.Schema
	now    func() time.Time
}

// New builds the router and GraphQL schema over backend.
func New(cfg *config.Config, backend Backend) (*Server, error) {
	schema, err := graph.NewSchema(tracker.New(backend))
	if err != nil {
		return nil, fmt.Errorf("failed to build GraphQL schema: %w", err)
	}

	if logging.CurrentLevel() > zapcore.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		router: gin.New(),
		schema: schema,
		now:    time.Now,
	}
	s.routes(backend)
	return s, nil
}

func (s *Server) routes(resolver tenant.Resolver) {
	r := s.router
	r.Use(gin.CustomRecovery(recoverJSON))
	r.Use(requestID())
	r.Use(accessLog())
	if c, ok := corsConfig(s.cfg.Server.CORSOrigins); ok {
		r.Use(cors.New(c))
	}
	r.Use(tenant.Middleware(resolver))

	gql := gin.WrapH(handler.New(&handler.Config{
		Schema:   &s.schema,
		Pretty:   true,
		GraphiQL: s.cfg.Server.GraphiQL,

		ResultCallbackFn: graph.LogResult,
	}))
	for _, path := range []string{"/graphql", "/graphql/"} {
		r.GET(path, gql)
		r.POST(path, gql)
	}

	r.GET("/health/", s.handleHealth)
	r.GET("/ping/", s.handleHealth)
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.HTTP("GraphQL endpoint listening on http://%s/graphql/", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.GetShutdownTimeout()
	logging.HTTP("Shutting down (timeout %s)", timeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"service":   s.cfg.Server.Service,
	})
}

func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}
	c := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", tenant.Header, RequestIDHeader},
		ExposeHeaders:    []string{tenant.CurrentHeader, RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			c.AllowCredentials = false
			return c, true
		}
	}
	c.AllowOrigins = origins
	return c, true
}
