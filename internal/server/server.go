// Package server wires the router, middleware, handlers, and storage
// together and owns the HTTP server lifecycle. It is the composition root:
// main.go hands it a Config and everything else is assembled here.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mfarouk/diary-server/internal/auth"
	"github.com/mfarouk/diary-server/internal/handler"
	"github.com/mfarouk/diary-server/internal/middleware"
	"github.com/mfarouk/diary-server/internal/repository/sqldb"
	"github.com/mfarouk/diary-server/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port          int
	DBDriver      string        // "sqlite" or "mysql"
	DSN           string        // database path (sqlite) or DSN (mysql)
	SessionSecret string        // HMAC key for session tokens
	SessionTTL    time.Duration // token lifetime; zero means the default
}

// Server bundles the router and the store it owns. The store is closed
// during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	store  *sqldb.Store
}

// New builds the dependency chain: store → services → handlers → routes.
// Each layer receives only what it needs; handlers never see the store and
// services never see HTTP.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	store, err := sqldb.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	if err := s.setupRoutes(); err != nil {
		store.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and the route table.
//
// Public:      POST /api/register, POST /api/login
// Session:     POST /api/logout
// Protected:   GET /api/me, PUT /api/password,
//              GET/POST /api/entries, PUT/DELETE /api/entries/{id}
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.SessionSecret, s.config.SessionTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	accountService := service.NewAccountService(s.store, s.logger)
	entryService := service.NewEntryService(s.store, s.logger)

	accountHandler := handler.NewAccountHandler(accountService, tokens, s.logger)
	entryHandler := handler.NewEntryHandler(entryService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/register", accountHandler.HandleRegister)
		r.Post("/login", accountHandler.HandleLogin)
		r.Post("/logout", accountHandler.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/me", accountHandler.HandleMe)
			r.Put("/password", accountHandler.HandleChangePassword)
			r.Get("/entries", entryHandler.HandleList)
			r.Post("/entries", entryHandler.HandleCreate)
			r.Put("/entries/{id}", entryHandler.HandleUpdate)
			r.Delete("/entries/{id}", entryHandler.HandleDelete)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, close
// the store.
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("driver", s.config.DBDriver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
