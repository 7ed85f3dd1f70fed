package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/settleco/accord/internal/services/casefile"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}

// serviceError maps the coordination error taxonomy onto HTTP status codes
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, casefile.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, casefile.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, casefile.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, casefile.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	default:
		s.serverError(w, r, err)
		return
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("internal error",
		"method", r.Method,
		"uri", r.URL.RequestURI(),
		"error", err)

	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
