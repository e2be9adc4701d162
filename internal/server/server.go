// Package server exposes the study assistant over HTTP: JSON endpoints,
// an SSE chat stream, and a WebSocket transport.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/studydesk/studydesk/internal/chat"
	"github.com/studydesk/studydesk/internal/notes"
)

// HealthChecker reports whether a backing service is reachable. Database
// and cache wrappers both satisfy it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Config holds the server's dependencies.
type Config struct {
	Engine      *chat.Engine
	Library     *notes.Library
	Readiness   map[string]HealthChecker
	CORSOrigins []string
}

// Server is the HTTP front of the study assistant.
type Server struct {
	engine      *chat.Engine
	library     *notes.Library
	readiness   map[string]HealthChecker
	corsOrigins []string
}

// New creates a server from its dependencies.
func New(cfg Config) *Server {
	return &Server{
		engine:      cfg.Engine,
		library:     cfg.Library,
		readiness:   cfg.Readiness,
		corsOrigins: cfg.CORSOrigins,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /api/files", s.handleFiles)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/chat/clear", s.handleClear)
	mux.HandleFunc("POST /api/export/flashcards", s.handleExportFlashcards)
	mux.HandleFunc("GET /ws/chat", s.handleWebSocket)
	return s.withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	checks := map[string]string{}
	for name, hc := range s.readiness {
		if err := hc.HealthCheck(r.Context()); err != nil {
			slog.Warn("readiness check failed", "check", name, "error", err)
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks[name] = "ok"
		}
	}

	body := map[string]any{"status": "ready", "checks": checks}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	writeJSON(w, status, body)
}

// handleFiles lists the study materials available to the assistant.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.library.List()
	if err != nil {
		slog.Error("listing files failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list study materials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files, "count": len(files)})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	req, err := decodeClearRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.engine.Clear(r.Context(), req.SessionID); err != nil {
		slog.Error("clearing session failed", "session_id", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not clear conversation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// withCORS allows configured browser origins on the API routes.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("writing response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
