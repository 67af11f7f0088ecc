// Package server holds the application container shared by every layer:
// config, logger, the optional New Relic service, the database handle and
// the net/http server running the router.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/students-api/internal/config"
	"github.com/deppfellow/students-api/internal/database"
	loggerPkg "github.com/deppfellow/students-api/internal/logger"
	"github.com/rs/zerolog"
)

var errHTTPServerNotSetup = errors.New("http server not set up")

type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database

	httpServer *http.Server
}

// New opens the configured store. The HTTP side is attached later with
// SetupHTTPServer, once the router exists.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// SetupHTTPServer binds handler to the configured port and timeouts.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	srv := s.Config.Server
	s.httpServer = &http.Server{
		Addr:         ":" + srv.Port,
		Handler:      handler,
		ReadTimeout:  seconds(srv.ReadTimeout),
		WriteTimeout: seconds(srv.WriteTimeout),
		IdleTimeout:  seconds(srv.IdleTimeout),
	}
}

// Start blocks serving requests. After Shutdown it returns http.ErrServerClosed.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errHTTPServerNotSetup
	}

	s.Logger.Info().
		Str("addr", s.httpServer.Addr).
		Str("env", s.Config.Primary.Env).
		Str("driver", s.Config.Database.Driver).
		Msg("students api listening")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones, then
// closes the store and flushes New Relic. The store is closed even when
// draining times out.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if err := s.DB.Close(); err != nil {
		shutdownErr = errors.Join(shutdownErr, fmt.Errorf("failed to close database connection: %w", err))
	}

	s.LoggerService.Shutdown()

	return shutdownErr
}
