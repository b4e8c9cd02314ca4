package http

import (
	"log/slog"
	"net/http"
	"strings"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type passwordChangeRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.auth.Login(req.Name, req.Password) {
		slog.InfoContext(r.Context(), "Login rejected", "user", req.Name)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := s.openSession(req.Name); err != nil {
		slog.ErrorContext(r.Context(), "Failed opening session", "user", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to open session")
		return
	}
	slog.InfoContext(r.Context(), "User logged in", "user", req.Name)
	writeJSON(w, http.StatusOK, map[string]string{"user": req.Name})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if !s.auth.Register(req.Name, req.Password) {
		writeError(w, http.StatusConflict, "user already exists or invalid credentials")
		return
	}
	if err := s.openSession(req.Name); err != nil {
		slog.ErrorContext(r.Context(), "Failed opening session", "user", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to open session")
		return
	}
	slog.InfoContext(r.Context(), "User registered", "user", req.Name)
	writeJSON(w, http.StatusCreated, map[string]string{"user": req.Name})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.auth.Logout()
	s.closeSession()
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req passwordChangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.auth.ChangePassword(req.OldPassword, req.NewPassword) {
		writeError(w, http.StatusUnauthorized, "old password does not match")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}
