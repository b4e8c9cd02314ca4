// Package http exposes the tracker as a JSON API. The process serves one
// active session at a time, matching the single-user single-device model of
// the persisted data; login swaps the session.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"monedero/internal/auth"
	"monedero/internal/services"
	"monedero/internal/session"
	"monedero/internal/storage"
)

type Server struct {
	http.Server
	auth            *auth.Service
	store           storage.Store
	events          services.EventPublisher
	defaultCurrency string
	rateLimiter     *rateLimiter

	mu      sync.Mutex
	tracker *services.Tracker
}

// NewServer wires the routes and returns a ready-to-run server.
// defaultCurrency is the configured fallback for sessions without a
// persisted currency.
func NewServer(addr string, authSvc *auth.Service, store storage.Store, events services.EventPublisher, defaultCurrency string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		auth:            authSvc,
		store:           store,
		events:          events,
		defaultCurrency: defaultCurrency,
		rateLimiter:     newRateLimiter(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/login", s.withMiddleware(s.handleLogin))
	mux.HandleFunc("/api/register", s.withMiddleware(s.handleRegister))
	mux.HandleFunc("/api/logout", s.withMiddleware(s.handleLogout))
	mux.HandleFunc("/api/password", s.withMiddleware(s.handleChangePassword))

	mux.HandleFunc("/api/transactions", s.withMiddleware(s.handleTransactions))
	mux.HandleFunc("/api/transactions/delete", s.withMiddleware(s.handleDeleteTransaction))

	mux.HandleFunc("/api/loans", s.withMiddleware(s.handleLoans))
	mux.HandleFunc("/api/loans/delete", s.withMiddleware(s.handleDeleteLoan))
	mux.HandleFunc("/api/loans/payment", s.withMiddleware(s.handleLoanPayment))

	mux.HandleFunc("/api/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("/api/cards", s.withMiddleware(s.handleCards))
	mux.HandleFunc("/api/calendar", s.withMiddleware(s.handleCalendar))

	mux.HandleFunc("/api/export/csv", s.withMiddleware(s.handleExportCSV))
	mux.HandleFunc("/api/export/pdf", s.withMiddleware(s.handleExportPDF))

	mux.HandleFunc("/api/currency", s.withMiddleware(s.handleCurrency))
	mux.HandleFunc("/api/reset", s.withMiddleware(s.handleReset))

	return s
}

// ResumeSession restores the session of the last logged-in user, if any.
func (s *Server) ResumeSession() error {
	if !s.auth.Resume() {
		return nil
	}
	user, _ := s.auth.Current()
	return s.openSession(user.Name)
}

func (s *Server) openSession(user string) error {
	sess, err := session.Open(s.store, user, s.defaultCurrency)
	if err != nil {
		return fmt.Errorf("open session for %q: %w", user, err)
	}
	s.mu.Lock()
	s.tracker = services.NewTracker(sess, s.events)
	s.mu.Unlock()
	return nil
}

func (s *Server) closeSession() {
	s.mu.Lock()
	s.tracker = nil
	s.mu.Unlock()
}

// currentTracker returns the active session's tracker, or responds 401 and
// returns false when nobody is logged in.
func (s *Server) currentTracker(w http.ResponseWriter) (*services.Tracker, bool) {
	s.mu.Lock()
	t := s.tracker
	s.mu.Unlock()
	if t == nil {
		writeError(w, http.StatusUnauthorized, "no active session")
		return nil, false
	}
	return t, true
}

// Shutdown stops the rate limiter cleanup and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.stop()
	}
	return s.Server.Shutdown(ctx)
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// rateLimiter allows up to 60 POST requests per client per minute.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}
	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a request body of at most 1MB into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(v)
}
