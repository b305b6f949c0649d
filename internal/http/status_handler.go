package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/service"
)

type StatusHandler struct {
	probe  *service.CloudProbe
	logger *zap.Logger
}

func NewStatusHandler(probe *service.CloudProbe, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{probe: probe, logger: logger}
}

// GetCloudStatus reports the last cloud probe result; "refresh=1" re-runs
// the probe before answering.
func (h *StatusHandler) GetCloudStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "1" {
		h.probe.Check(r.Context())
	}
	status, reason := h.probe.Status()
	writeJSON(w, http.StatusOK, Ok(map[string]string{
		"status": string(status),
		"reason": reason,
	}))
}
