package server

import (
	"encoding/json"
	"net/http"

	"github.com/wepredict/go-api-server/internal/apperrors"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write json response")
	}
}

func (s *Server) writeSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	s.writeJSON(w, r, status, Envelope{Success: true, Message: message, Data: data})
}

// writeError maps an error kind onto a status code and renders only the
// kind's client-facing message; the underlying error goes to the log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindAuthentication:
		status = http.StatusUnauthorized
	case apperrors.KindDependency:
		status = http.StatusBadGateway
	}

	message := apperrors.MessageOf(err, fallback)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		s.log.Debug().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	}
	s.writeJSON(w, r, status, Envelope{Success: false, Message: message})
}
