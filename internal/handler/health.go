package handler

import (
	"net/http"

	"go.uber.org/zap"
)

type healthResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Health проверяет доступность хранилища
func (h *Handler) Health(w http.ResponseWriter, req *http.Request) {
	if h.health == nil {
		h.logger.Error("health checker not configured")
		h.writeJSON(w, http.StatusInternalServerError, healthResponse{Error: "store not configured"})
		return
	}

	if err := h.health.Ping(req.Context()); err != nil {
		h.logger.Error("store ping failed", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, healthResponse{Error: "store unavailable"})
		return
	}

	h.writeJSON(w, http.StatusOK, healthResponse{OK: true})
}
