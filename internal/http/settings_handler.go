package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/service"
)

type SettingsHandler struct {
	app    *service.App
	logger *zap.Logger
}

func NewSettingsHandler(app *service.App, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{app: app, logger: logger}
}

func (h *SettingsHandler) GetVisibleKinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.app.VisibleKinds()))
}

// GetCatalog returns the fixed pick lists the patient edit dialog offers:
// the six queue kinds and the kinesiotherapy sub-types.
func (h *SettingsHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"kinds":       domain.AllKinds(),
		"kinezaTypes": domain.KinezaTypes,
	}))
}

// SetVisibleKinds stores which treatment columns the board shows. Unknown
// labels are dropped rather than rejected.
func (h *SettingsHandler) SetVisibleKinds(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Kinds []domain.Kind `json:"kinds"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid request body"))
		return
	}
	if err := h.app.SetVisibleKinds(r.Context(), body.Kinds); err != nil {
		h.logger.Error("save visible kinds failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not save the column selection"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.app.VisibleKinds()))
}
