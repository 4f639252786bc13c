package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
)

// Server holds the API handlers and the mux they are registered on.
type Server struct {
	app       *app
	tweetsAPI *TweetsAPI
	statsAPI  *StatsAPI
	serverAPI *ServerAPI
	apiMux    *http.ServeMux
}

// NewServer creates the API for a, and registers its routes.
func NewServer(a *app) *Server {
	server := &Server{
		app:       a,
		tweetsAPI: NewTweetsAPI(a),
		statsAPI:  NewStatsAPI(a.table, a.logger),
		serverAPI: NewServerAPI(a.config, a.logger),
		apiMux:    http.NewServeMux(),
	}

	server.tweetsAPI.RegisterRoutes(server.apiMux)
	server.statsAPI.RegisterRoutes(server.apiMux)
	server.serverAPI.RegisterRoutes(server.apiMux)
	return server
}

// Handler returns the API mux wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	})
	return c.Handler(s.apiMux)
}

// serve hosts the API until ctx is cancelled, then shuts it down gracefully.
func (a *app) serve(ctx context.Context) error {
	server := NewServer(a)
	httpServer := &http.Server{
		Addr:              a.config.Server.ApiAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting api server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Stopping api server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown failed: %w", err)
	}
	a.logger.Info("Api server stopped.")
	return nil
}
