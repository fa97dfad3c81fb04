// ABOUTME: HTTP surface for the notebook: HTML views, a JSON API and a websocket feed.
// ABOUTME: Routes with chi; view paths resolve through the nav package.

package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/harper/nowted/internal/notebook"
	"github.com/rs/zerolog"
)

type Server struct {
	repo        *notebook.Repository
	hub         *Hub
	log         zerolog.Logger
	unsubscribe func()
}

// New wires a server to repo. Repository events are forwarded to websocket
// clients once Start or ListenAndServe runs the hub.
func New(repo *notebook.Repository, log zerolog.Logger) *Server {
	s := &Server{
		repo: repo,
		hub:  NewHub(log),
		log:  log,
	}
	s.unsubscribe = repo.Subscribe(s.hub.Broadcast)
	return s
}

// Start runs the websocket hub until ctx is done.
func (s *Server) Start(ctx context.Context) {
	go s.hub.Run(ctx)
}

// Close stops forwarding repository events.
func (s *Server) Close() {
	s.unsubscribe()
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ws", s.hub.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Route("/folders", func(r chi.Router) {
			r.Get("/", s.listFolders)
			r.Post("/", s.createFolder)
			r.Put("/{id}", s.renameFolder)
			r.Delete("/{id}", s.deleteFolder)
		})
		r.Route("/trash", func(r chi.Router) {
			r.Get("/", s.listTrash)
			r.Post("/{id}/restore", s.restoreFolder)
		})
		r.Get("/selection", s.getSelection)
		r.Put("/selection", s.putSelection)
		r.Route("/notes", func(r chi.Router) {
			r.Get("/", s.listNotes)
			r.Post("/", s.createNote)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getNote)
				r.Put("/", s.saveNote)
				r.Put("/title", s.renameNote)
				r.Post("/format", s.formatNote)
			})
		})
		r.Get("/recents", s.listRecents)
	})

	r.Get("/", s.view)
	r.Get("/*", s.view)

	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.Start(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	s.log.Info().Msg("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
