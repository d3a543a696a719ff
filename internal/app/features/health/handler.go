package health

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"cheermate/internal/app/system/timeouts"
	"cheermate/internal/backend"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	API *backend.Client
	Log *zap.Logger
}

// NewHandler constructs a health Handler with the praise client and logger.
func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	return &Handler{API: api, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "backend":"reachable" }
//
// On backend failure: 503 and
//
//	{ "status":"error", "backend":"unreachable", "message":"Praise service unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:  "ok",
		Backend: "reachable",
	}

	if err := h.API.Ping(ctx); err != nil {
		h.Log.Error("health-check: praise service ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Backend = "unreachable"
		resp.Message = "Praise service unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
