package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/service"
)

type TourHandler struct {
	app    *service.App
	logger *zap.Logger
}

func NewTourHandler(app *service.App, logger *zap.Logger) *TourHandler {
	return &TourHandler{app: app, logger: logger}
}

func (h *TourHandler) GetTours(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.app.Tours()))
}

// NewDay starts the next treatment day: queued entries for the cohort are
// dropped, the day counter advances.
func (h *TourHandler) NewDay(w http.ResponseWriter, r *http.Request, cohort domain.Cohort) {
	day, err := h.app.NewDay(r.Context(), cohort)
	if err != nil {
		h.logger.Error("new day failed", zap.String("cohort", string(cohort)), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not advance the day counter"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]int{"day": day}))
}

func (h *TourHandler) ResetDay(w http.ResponseWriter, r *http.Request, cohort domain.Cohort) {
	if err := h.app.ResetDay(r.Context(), cohort); err != nil {
		h.logger.Error("reset day failed", zap.String("cohort", string(cohort)), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not reset the day counter"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]int{"day": 1}))
}

func (h *TourHandler) SetDuration(w http.ResponseWriter, r *http.Request, cohort domain.Cohort) {
	var body struct {
		Days int `json:"days"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil || body.Days < 1 {
		writeJSON(w, http.StatusOK, Fail("duration must be a positive number of days"))
		return
	}
	if err := h.app.SetDuration(r.Context(), cohort, body.Days); err != nil {
		h.logger.Error("set duration failed", zap.String("cohort", string(cohort)), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not save the tour duration"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]int{"days": body.Days}))
}

// CloseCohort archives the cohort's patients and clears its queues and
// day counter in one step.
func (h *TourHandler) CloseCohort(w http.ResponseWriter, r *http.Request, cohort domain.Cohort) {
	tour, err := h.app.CloseCohort(r.Context(), cohort)
	if err != nil {
		h.logger.Error("close cohort failed", zap.String("cohort", string(cohort)), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not close the tour"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(tour))
}

func (h *TourHandler) GetArchives(w http.ResponseWriter, r *http.Request, cohort domain.Cohort) {
	tours, err := h.app.Archives(r.Context(), cohort)
	if err != nil {
		h.logger.Error("load archives failed", zap.String("cohort", string(cohort)), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not load archived tours"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(tours))
}

func (h *TourHandler) RestorePatient(w http.ResponseWriter, r *http.Request, cohort domain.Cohort) {
	var body struct {
		TourID string `json:"tourId"`
		Card   string `json:"card"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil || body.TourID == "" || body.Card == "" {
		writeJSON(w, http.StatusOK, Fail("tour id and card number are required"))
		return
	}
	if err := h.app.RestorePatient(r.Context(), cohort, body.TourID, body.Card); err != nil {
		h.tourError(w, cohort, "restore patient", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(struct{}{}))
}

func (h *TourHandler) DeleteTour(w http.ResponseWriter, r *http.Request, cohort domain.Cohort) {
	var body struct {
		TourID string `json:"tourId"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil || body.TourID == "" {
		writeJSON(w, http.StatusOK, Fail("tour id is required"))
		return
	}
	if err := h.app.DeleteTour(r.Context(), cohort, body.TourID); err != nil {
		h.tourError(w, cohort, "delete tour", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(struct{}{}))
}

func (h *TourHandler) UpdateArchivedPatient(w http.ResponseWriter, r *http.Request, cohort domain.Cohort) {
	var body struct {
		TourID  string         `json:"tourId"`
		Card    string         `json:"card"`
		Patient domain.Patient `json:"patient"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil || body.TourID == "" || body.Card == "" {
		writeJSON(w, http.StatusOK, Fail("tour id and card number are required"))
		return
	}
	if err := h.app.UpdateArchivedPatient(r.Context(), cohort, body.TourID, body.Card, body.Patient); err != nil {
		h.tourError(w, cohort, "update archived patient", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(struct{}{}))
}

func (h *TourHandler) tourError(w http.ResponseWriter, cohort domain.Cohort, op string, err error) {
	switch {
	case errors.Is(err, service.ErrTourNotFound):
		writeJSON(w, http.StatusOK, Fail("archived tour not found"))
	case errors.Is(err, service.ErrPatientNotFound):
		writeJSON(w, http.StatusOK, Fail("patient not found in this tour"))
	default:
		h.logger.Error(op+" failed", zap.String("cohort", string(cohort)), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not update the archive"))
	}
}
