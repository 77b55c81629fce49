// Package web provides the HTTP server and handlers for importing exports
// and building invoices.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/MichaelReichel/clock2doc/internal/admin"
	"github.com/MichaelReichel/clock2doc/internal/config"
	"github.com/MichaelReichel/clock2doc/internal/core"
	mw "github.com/MichaelReichel/clock2doc/internal/web/middleware"
	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the invoicing application.
type Server struct {
	service *core.Service
	inbox   *admin.Inbox
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server

	limiters []*rateLimiter
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config, service *core.Service, inbox *admin.Inbox) *Server {
	s := &Server{
		service: service,
		inbox:   inbox,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	}

	// Security hardening
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(s.limit(s.cfg.Rate.RequestsPerMinute))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	importLimit := passThrough
	contactLimit := passThrough
	if s.cfg.Rate.Enabled {
		if s.cfg.Rate.UploadLimit > 0 {
			importLimit = s.limit(s.cfg.Rate.UploadLimit)
		}
		if s.cfg.Rate.ContactLimit > 0 {
			contactLimit = s.limit(s.cfg.Rate.ContactLimit)
		}
	}

	s.router.Get("/healthz", s.handleHealth)

	// Printable invoice
	s.router.Get("/drafts/{id}/invoice", s.handleInvoicePage)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/formats", s.handleListFormats)

		// Import operations
		r.With(importLimit).Post("/preview", s.handlePreview)
		r.With(importLimit).Post("/drafts", s.handleImport)

		// Draft operations
		r.Route("/drafts/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetDraft)
			r.Delete("/", s.handleDeleteDraft)
			r.Get("/entries", s.handleDraftEntries)
			r.Patch("/details", s.handleUpdateDetails)
			r.Post("/rate", s.handleApplyRate)
			r.Post("/summary", s.handleGenerateSummary)
		})

		// Contact form
		r.With(contactLimit).Post("/contact", s.handleContact)

		// Admin inbox
		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.AdminAuth(s.inbox.Verify))
			r.Get("/messages", s.handleListMessages)
			r.Delete("/messages", s.handleClearMessages)
			r.Delete("/messages/{id}", s.handleDeleteMessage)
			r.Post("/secret", s.handleChangeSecret)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the rate limiters and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, rl := range s.limiters {
		rl.stop()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func passThrough(next http.Handler) http.Handler { return next }

// limit returns middleware allowing perMinute requests per client.
func (s *Server) limit(perMinute int) func(http.Handler) http.Handler {
	rl := newRateLimiter(perMinute, time.Minute)
	s.limiters = append(s.limiters, rl)
	return rl.middleware
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			w.Header().Set("X-Frame-Options", "DENY")

			// Content Security Policy - invoices use inline styles and remote
			// or data: logos
			if enableCSP {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: http: data:; script-src 'none'")
			}

			// Control referrer information
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
