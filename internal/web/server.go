package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"folio-cli/internal/palette"
	"folio-cli/internal/site"
	"folio-cli/internal/store"

	"go.uber.org/zap"
)

//go:embed templates/*.html static/*.js static/*.css
var assetsFS embed.FS

type ServerConfig struct {
	Addr    string
	Content site.Content
	// Inbox stores contact requests; nil accepts them without persisting.
	Inbox  *store.Inbox
	Logger *zap.Logger
	Seed   int64

	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) bool
}

type Server struct {
	mu      sync.RWMutex
	cfg     ServerConfig
	content site.Content
	tmpl    *template.Template
	logger  *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if err := cfg.Content.Validate(); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	if cfg.wait == nil {
		cfg.wait = sleepContext
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim":     strings.TrimSpace,
		"markdown": renderMarkdownHTML,
		"anchor":   palette.NormalizeAnchor,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:     cfg,
		content: cfg.Content,
		tmpl:    tmpl,
		logger:  cfg.Logger,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

// SetContent swaps the page content; the next request renders it.
func (s *Server) SetContent(c site.Content) {
	s.mu.Lock()
	s.content = c
	s.mu.Unlock()
}

func (s *Server) contentSnapshot() site.Content {
	s.mu.RLock()
	c := s.content
	s.mu.RUnlock()
	return c
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /static/app.css", s.handleStatic("static/app.css", "text/css; charset=utf-8"))
	mux.HandleFunc("GET /static/app.js", s.handleStatic("static/app.js", "application/javascript; charset=utf-8"))
	mux.HandleFunc("GET /metrics/stream", s.handleMetricsStream)
	mux.HandleFunc("POST /activity/shuffle", s.handleActivityShuffle)
	mux.HandleFunc("POST /contact", s.handleContact)
	mux.HandleFunc("GET /{$}", s.handleHome)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil || len(b) == 0 {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		s.logger.Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func metricSignal(i int) string { return fmt.Sprintf("m%d", i) }

// initialSignals seeds every Datastar signal the page binds to.
func initialSignals(c site.Content) (string, error) {
	sig := map[string]any{
		"email":        "",
		"contactError": "",
		"status":       site.StatusOnline,
		"hover":        false,
		"submitted":    false,
		"spinning":     false,
	}
	for i, m := range c.Metrics {
		sig[metricSignal(i)] = m.ValueAt(0)
	}
	b, err := json.Marshal(sig)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
