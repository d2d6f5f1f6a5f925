// Package web provides the HTTP server and handlers for the portfolio site.
package web

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/marsadembi/portfolio/internal/chat"
	"github.com/marsadembi/portfolio/internal/comment"
	"github.com/marsadembi/portfolio/internal/config"
	"github.com/marsadembi/portfolio/internal/email"
	"github.com/marsadembi/portfolio/internal/logging"
	"github.com/marsadembi/portfolio/internal/metrics"
	"github.com/marsadembi/portfolio/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const shutdownTimeout = 10 * time.Second

// Server is the portfolio HTTP server.
type Server struct {
	comments  *comment.Service
	chat      *chat.Service
	sessions  *sessions.CookieStore
	limiter   *rateLimiter
	loc       *time.Location
	templates *template.Template
	mux       *http.ServeMux
	handler   http.Handler
}

// NewServer creates a web server with the given database and config.
func NewServer(db *sql.DB, cfg config.Config) (*Server, error) {
	funcMap := template.FuncMap{
		"starGlyphs": render.StarGlyphs,
		"seq":        tmplSeq,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	var notifier comment.Notifier
	if n := email.NewNotifier(cfg.SMTP, cfg.OwnerEmail, cfg.BaseURL); n != nil {
		notifier = n
	}

	var responder chat.Responder = chat.Echo{}
	if cfg.UpstreamEnabled() {
		up, err := chat.NewUpstream(cfg.Chat)
		if err != nil {
			return nil, fmt.Errorf("configuring chat upstream: %w", err)
		}
		responder = up
	}

	key := []byte(cfg.SessionKey)
	if len(key) == 0 {
		slog.Warn("PF_SESSION_KEY not set; theme cookies will not survive a restart")
		key = securecookie.GenerateRandomKey(32)
	}
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		HttpOnly: true,
		Secure:   strings.HasPrefix(cfg.BaseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	s := &Server{
		comments:  comment.NewService(comment.NewRepository(db), notifier),
		chat:      chat.NewService(responder, cfg.ChatTimeout),
		sessions:  store,
		limiter:   newRateLimiter(cfg.CommentsPerMinute),
		loc:       loc,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", metrics.Handler())
	s.mux.HandleFunc("/", s.handlePage)
	s.mux.HandleFunc("/contact", s.handleContactPost)
	s.mux.HandleFunc("/chat", s.handleChatPost)
	s.mux.HandleFunc("/theme", s.handleThemePost)
	s.mux.HandleFunc("/api/comments", s.handleAPIComments)
	s.mux.HandleFunc("/api/chat", s.handleAPIChat)

	s.handler = logging.RequestID(logging.RequestLogger(logging.Recover(s.mux)))

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	slog.Info("server started", "addr", ln.Addr().String())

	select {
	case <-ctx.Done():
		slog.Info("shutdown requested")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.comments.Wait()
	slog.Info("server stopped")
	return nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func tmplSeq(start, end int) []int {
	var s []int
	for i := start; i <= end; i++ {
		s = append(s, i)
	}
	return s
}
