package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fintrack/internal/storage"
)

const maxBodyBytes = 1 << 20 // 1 MiB for JSON bodies

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// userID extracts the caller identity from the X-User-ID header. A missing
// header writes a 401 and returns false.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "missing X-User-ID header")
		return "", false
	}
	return uid, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeStoreError maps storage errors onto status codes.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, what string) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, what+" not found")
		return
	}
	s.logger.ErrorContext(r.Context(), "Storage error",
		"error", err, "url", r.URL.Path, "method", r.Method)
	writeError(w, http.StatusInternalServerError, "internal error")
}
