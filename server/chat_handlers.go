package server

import (
	"net/http"

	"github.com/wepredict/go-api-server/chat"
)

// ChatHandler forwards a single-message completion request to the
// upstream model. Only registered when a chat service is configured.
func (s *Server) ChatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err, "invalid request")
			return
		}

		completion, err := s.chat.Complete(r.Context(), chat.Request{
			Message:     req.Message,
			Model:       req.Model,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		})
		if err != nil {
			s.writeError(w, r, err, "chat completion failed")
			return
		}
		s.writeSuccess(w, r, http.StatusOK, "completion generated successfully", completion)
	}
}
