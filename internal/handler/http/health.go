package http

import (
	"net/http"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
	"github.com/MKhiriev/go-doc-vault/models"
)

// health reports server liveness and probes the storage backend. A failed
// probe degrades the report and returns 503 so load balancers stop routing
// to this instance, but the process keeps running.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	response := models.HealthResponse{
		Status:   "ok",
		Database: "ok",
	}
	status := http.StatusOK

	if h.storage != nil {
		if err := h.storage.PingContext(r.Context()); err != nil {
			logger.FromRequest(r).Err(err).Msg("health probe: database unreachable")
			response.Status = "degraded"
			response.Database = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	utils.WriteJSON(w, response, status)
}
