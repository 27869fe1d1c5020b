package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - wires the game API routes.
func NewRouter(logger *slog.Logger, gamePlay gamePlayService) http.Handler {
	h := NewHandlers(logger, gamePlay)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", h.PingHandler)
	r.Post("/solve", h.Solve)
	r.Post("/games", h.StartGame)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", h.GetGame)
		r.Delete("/", h.Resign)
		r.Post("/turns", h.MakeTurn)
		r.Get("/hint", h.Hint)
	})

	return r
}

// Start - serves the API on port until ctx is canceled, then shuts the server down gracefully.
func Start(ctx context.Context, logger *slog.Logger, port string, gamePlay gamePlayService) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(logger, gamePlay),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
