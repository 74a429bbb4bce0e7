// Package server serves the rendered resume over HTTP.
//
// Every page request is rendered from the content tree as it is on disk, so
// edits show up on the next request. In development the server also watches
// the content root and tells connected browsers to reload over a WebSocket.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"

	"github.com/elmarvr/resume-v2/internal/config"
	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/locale"
	"github.com/elmarvr/resume-v2/internal/logging"
	"github.com/elmarvr/resume-v2/internal/resume"
	"github.com/elmarvr/resume-v2/internal/version"
	"github.com/elmarvr/resume-v2/internal/watcher"
)

// reloadScript reconnects after a server restart and reloads the page on
// every reload message.
const reloadScript = `<script>
(function () {
  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/ws");
    ws.onmessage = function (e) {
      var msg = JSON.parse(e.data);
      if (msg.type === "reload") { location.reload(); }
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>`

// Server renders resumes for the configured locales.
type Server struct {
	config     *config.Config
	client     *resume.Client
	layout     *resume.Layout
	negotiator *locale.Negotiator
	hub        *Hub
	logger     logging.Logger
	errors     *rerrors.ErrorHandler

	serverMutex  sync.RWMutex
	httpServer   *http.Server
	watcher      *watcher.FileWatcher
	shutdownOnce sync.Once
}

// New creates a server for cfg.
func New(cfg *config.Config, client *resume.Client, layout *resume.Layout, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.WithComponent("server")

	negotiator, err := locale.NewNegotiator(orderLocales(cfg.Content.Locales, cfg.Content.DefaultLocale)...)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:     cfg,
		client:     client,
		layout:     layout,
		negotiator: negotiator,
		hub:        NewHub(cfg.Server.AllowedOrigins, logger),
		logger:     logger,
		errors:     rerrors.NewErrorHandler(logger),
	}, nil
}

// orderLocales puts def first so the negotiator falls back to it.
func orderLocales(locales []string, def string) []string {
	out := make([]string, 0, len(locales)+1)
	if def != "" {
		out = append(out, def)
	}
	for _, l := range locales {
		if l != def {
			out = append(out, l)
		}
	}
	return out
}

// Hub returns the live reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{locale}", s.handleResume)
	if s.config.Development.HotReload {
		mux.Handle("GET /ws", s.hub)
	}
	return s.logRequests(mux)
}

// Start serves until ctx is cancelled or Shutdown is called. With hot
// reload enabled the content root is watched for changes.
func (s *Server) Start(ctx context.Context) error {
	if s.config.Development.HotReload {
		if err := s.startWatcher(ctx); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", s.config.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Server.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	s.logger.Info(ctx, "Serving resume", "addr", ln.Addr().String(), "locales", s.config.Content.Locales)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, err, "Shutdown failed")
		}
	}()

	if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (s *Server) startWatcher(ctx context.Context) error {
	w, err := watcher.NewFileWatcher(s.config.Content.Root, s.config.Development.Debounce, s.logger)
	if err != nil {
		return err
	}
	w.AddFilter(watcher.NoHiddenFilter)
	w.AddFilter(watcher.NoEditorTempFilter)
	w.AddFilter(watcher.ExtensionFilter(s.client.Store().Loaders().Extensions()...))
	w.AddHandler(s.handleContentChange)

	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	s.serverMutex.Lock()
	s.watcher = w
	s.serverMutex.Unlock()
	return nil
}

func (s *Server) handleContentChange(ctx context.Context, events []watcher.ChangeEvent) error {
	paths := make([]string, len(events))
	for i, e := range events {
		paths[i] = e.Path
	}
	s.logger.Info(ctx, "Content changed", "files", paths)
	s.hub.Broadcast(UpdateMessage{Type: "reload", Paths: paths})
	return nil
}

// Shutdown stops the watcher, disconnects live reload clients and drains
// the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "Shutting down server")

		s.serverMutex.RLock()
		server, w := s.httpServer, s.watcher
		s.serverMutex.RUnlock()

		if w != nil {
			if err := w.Stop(); err != nil {
				s.logger.Warn(ctx, err, "Stopping watcher failed")
			}
		}
		s.hub.Close()
		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})
	return shutdownErr
}

// handleIndex renders the resume in the locale that best fits the request.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Vary", "Accept-Language")
	s.serveResume(w, r, s.negotiator.Negotiate(r))
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("locale")
	if !s.negotiator.Supported(code) {
		http.NotFound(w, r)
		return
	}
	s.serveResume(w, r, code)
}

func (s *Server) serveResume(w http.ResponseWriter, r *http.Request, code string) {
	page, err := locale.With(r.Context(), code, s.render)
	if err != nil {
		s.writeError(w, r, code, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", code)
	if _, err := w.Write(page); err != nil {
		s.logger.Debug(r.Context(), "Writing response failed", "error", err)
	}
}

// render loads and renders the resume for the locale bound to ctx.
func (s *Server) render(ctx context.Context) ([]byte, error) {
	r, err := s.client.Load(ctx)
	if err != nil {
		return nil, err
	}

	var head []templ.Component
	if s.config.Development.HotReload {
		head = append(head, templ.Raw(reloadScript))
	}

	var buf bytes.Buffer
	if err := s.layout.Document(r, s.layout.Page(r), head...).Render(ctx, &buf); err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrCodeInternalError, "rendering resume")
	}
	return buf.Bytes(), nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code string, err error) {
	s.errors.Handle(r.Context(), err)

	status := http.StatusInternalServerError
	if rerrors.TypeOf(err) == rerrors.ErrorTypeNotFound {
		status = http.StatusNotFound
	}

	body := http.StatusText(status)
	if s.config.Development.HotReload {
		body = rerrors.FormatSuggestions(err.Error(), rerrors.ContentSuggestions(err, &rerrors.SuggestionContext{
			ContentRoot: s.config.Content.Root,
			Locale:      code,
		}))
	}
	http.Error(w, body, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := version.Get()
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   info.Short(),
		"locales":   s.config.Content.Locales,
		"clients":   s.hub.Count(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to encode health response")
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug(r.Context(), "Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
