package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/service"
)

type PatientHandler struct {
	app    *service.App
	logger *zap.Logger
}

func NewPatientHandler(app *service.App, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{app: app, logger: logger}
}

func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.app.Patients()))
}

// SearchPatients matches the query against card numbers and names.
func (h *PatientHandler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusOK, Ok([]domain.Patient{}))
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.app.SearchPatients(query)))
}

func (h *PatientHandler) AddPatient(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Card   string        `json:"card"`
		Name   string        `json:"name"`
		Cohort domain.Cohort `json:"cohort"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid request body"))
		return
	}
	cohort, ok := domain.ParseCohort(string(body.Cohort))
	if !ok {
		writeJSON(w, http.StatusOK, Fail("unknown cohort"))
		return
	}
	created, err := h.app.AddPatient(r.Context(), body.Card, body.Name, cohort)
	if err != nil {
		if errors.Is(err, service.ErrCardAndNameRequired) {
			writeJSON(w, http.StatusOK, Fail("card number and name are required"))
			return
		}
		h.logger.Error("add patient failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not save the patient"))
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, Warn("patient with this card already exists", map[string]bool{"created": false}))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"created": true}))
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Card       string             `json:"card"`
		Name       string             `json:"name"`
		Treatments []domain.Treatment `json:"treatments"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil || body.Card == "" {
		writeJSON(w, http.StatusOK, Fail("card number is required"))
		return
	}
	if err := h.app.UpdatePatient(r.Context(), body.Card, body.Name, body.Treatments); err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			writeJSON(w, http.StatusOK, Fail("patient not found"))
			return
		}
		h.logger.Error("update patient failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not save the patient"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(struct{}{}))
}

// DeletePatients removes the given cards from the registry and every queue.
func (h *PatientHandler) DeletePatients(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Cards []string `json:"cards"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil || len(body.Cards) == 0 {
		writeJSON(w, http.StatusOK, Fail("at least one card number is required"))
		return
	}
	if err := h.app.DeletePatients(r.Context(), body.Cards...); err != nil {
		h.logger.Error("delete patients failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("could not delete patients"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(struct{}{}))
}
