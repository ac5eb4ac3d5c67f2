package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/search"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ShutdownTimeout bounds graceful shutdown once the serve context ends.
const ShutdownTimeout = 5 * time.Second

// Server serves a build output directory for local preview, together with a
// JSON search endpoint backed by the same index assets the site ships.
type Server struct {
	router  chi.Router
	loader  *search.Loader
	options folio.SearchOptions
	logger  *slog.Logger
}

// NewServer returns a Server for the build output in dir. Search queries are
// answered from indexes obtained through loader.
func NewServer(dir string, loader *search.Loader, opts folio.SearchOptions, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		router:  chi.NewRouter(),
		loader:  loader,
		options: opts,
		logger:  logger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Get("/api/search", s.handleSearch)
	s.router.Handle("/*", http.FileServer(http.Dir(dir)))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: DefaultFetchTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// SearchResponse is the JSON body of /api/search.
type SearchResponse struct {
	Query  string      `json:"query"`
	Locale string      `json:"locale"`
	State  string      `json:"state"`
	Hits   []SearchHit `json:"hits"`
	Error  string      `json:"error,omitempty"`
}

// SearchHit is one ranked result in a SearchResponse.
type SearchHit struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Excerpt string `json:"excerpt"`
	Score   int    `json:"score"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	locale := folio.Locale(r.URL.Query().Get("locale"))
	if locale == "" {
		locale = refererLocale(r)
	}
	q := r.URL.Query().Get("q")
	resp := SearchResponse{Query: q, Locale: string(locale), Hits: []SearchHit{}}

	if !locale.Valid() {
		resp.State = folio.SearchFailed.String()
		resp.Error = "unsupported locale"
		s.writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	m, err := s.loader.Load(r.Context(), locale)
	if err != nil {
		s.logger.Error("search index unavailable", "locale", locale, "error", err)
		resp.State = folio.SearchFailed.String()
		resp.Error = folio.ErrorMessage(err)
		s.writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	out := m.Search(q, s.options)
	resp.State = out.State.String()
	for _, h := range out.Hits {
		resp.Hits = append(resp.Hits, SearchHit{
			ID:      h.Entry.ID,
			Title:   h.Entry.Title,
			Path:    h.Entry.Path,
			Kind:    h.Entry.Kind,
			Excerpt: h.Entry.Excerpt,
			Score:   h.Score,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("writing response", "error", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// refererLocale returns the locale of the page the search was issued from.
func refererLocale(r *http.Request) folio.Locale {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" {
		return folio.DefaultLocale
	}
	return folio.LocaleFromPath(ref.Path)
}
