package http

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleCurrency(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getCurrency(w, r)
	case http.MethodPost:
		s.setCurrency(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) getCurrency(w http.ResponseWriter, r *http.Request) {
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"currency": tracker.Session().Currency()})
}

func (s *Server) setCurrency(w http.ResponseWriter, r *http.Request) {
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	var req struct {
		Currency string `json:"currency"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := tracker.SetCurrency(r.Context(), req.Currency); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"currency": req.Currency})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	if err := tracker.Reset(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Reset failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reset data")
		return
	}
	slog.InfoContext(r.Context(), "User data reset", "user", tracker.Session().User())
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
