package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/settleco/accord/internal/services/casefile"
)

// handleStreamEvents serves a session's event stream over SSE. The stream
// starts at the moment of subscription; events published earlier are not
// replayed, so clients recover missed state through the reconnect endpoint.
func (s *Server) handleStreamEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	sub, err := s.service.StreamEvents(r.Context(), &casefile.StreamEventsInput{
		SessionID: sessionID,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub.C:
			if !ok {
				return
			}

			data, err := json.Marshal(event.Payload)
			if err != nil {
				s.logger.Error("failed to marshal event payload",
					"session_id", sessionID,
					"event", event.Type,
					"error", err)
				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			flusher.Flush()
		}
	}
}
