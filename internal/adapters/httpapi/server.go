// Package httpapi expose un état en lecture seule des rassemblements et du
// registre des membres.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"musterbot/internal/ports/input"
)

const shutdownTimeout = 10 * time.Second

// Server est le serveur HTTP de statut.
type Server struct {
	srv *http.Server
}

// NewServer construit le routeur chi et le serveur écoutant sur addr.
func NewServer(addr string, musters input.MusterUseCase, members input.MemberUseCase) *Server {
	return &Server{srv: &http.Server{
		Addr:         addr,
		Handler:      NewRouter(musters, members),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}}
}

// NewRouter monte les routes de l'API.
func NewRouter(musters input.MusterUseCase, members input.MemberUseCase) http.Handler {
	h := &handler{musters: musters, members: members}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog)

	r.Get("/health", h.health)
	r.Route("/musters", func(r chi.Router) {
		r.Get("/", h.listMusters)
		r.Get("/{id}", h.getMuster)
	})
	r.Get("/members/{static}", h.memberByStatic)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// Run sert jusqu'à l'annulation de ctx, puis arrête le serveur proprement.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("🌐 API de statut en écoute", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	slog.Info("API de statut arrêtée")
	return nil
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.DebugContext(r.Context(), "http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}
