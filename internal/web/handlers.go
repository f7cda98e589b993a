package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/netwatch/posture/internal/bundle"
	"github.com/netwatch/posture/internal/pipeline"
	"github.com/netwatch/posture/pkg/types"
)

// ScoreRequest is the JSON body for POST /api/v1/score.
type ScoreRequest struct {
	Host        string                 `json:"host"`
	LiveSignals *bundle.ContentSignals `json:"live_signals,omitempty"`
}

// ErrorResponse is the standard error JSON body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// handleScore handles POST /api/v1/score. It fetches scan data for the
// requested host, scores it, and returns the full breakdown.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	req, err := decodeScoreRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	target, err := types.ParseTarget(req.Host)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid host: "+err.Error())
		return
	}

	result, err := s.pipeline.Run(r.Context(), target, req.LiveSignals)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoData) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// decodeScoreRequest reads and validates the request body.
func decodeScoreRequest(r *http.Request) (*ScoreRequest, error) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if req.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	return &req, nil
}

// writeJSON encodes data as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: status})
}
