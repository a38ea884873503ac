package server

import (
	"encoding/json"
	"net/http"
	"time"

	"cosmossdk.io/errors"

	"github.com/oxygene76/celestial-lookup/internal/types"
)

type errorResponse struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"current_time"`
	Text        string `json:"text"`
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, text string) {
	s.sendJSON(w, status, errorResponse{
		Code:        status,
		CurrentTime: time.Now().UnixMilli(),
		Text:        text,
	})
}

// sendLookupError maps a lookup failure to a status code.
func (s *Server) sendLookupError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsOf(err, types.ErrUnknownBody, types.ErrUnknownQuantity):
		status = http.StatusNotFound
	case errors.IsOf(err, types.ErrFetchFailed):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("lookup failed", "path", r.URL.Path, "err", err)
	}
	s.sendError(w, status, err.Error())
}
