package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/service"
)

type QueueHandler struct {
	app    *service.App
	logger *zap.Logger
}

func NewQueueHandler(app *service.App, logger *zap.Logger) *QueueHandler {
	return &QueueHandler{app: app, logger: logger}
}

// GetQueues returns every queue plus the display selection in one shot.
func (h *QueueHandler) GetQueues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"queues":       h.app.Queues(),
		"visibleKinds": h.app.VisibleKinds(),
		"tours":        h.app.Tours(),
	}))
}

// Enroll adds all of a patient's treatments to their queues.
func (h *QueueHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Card string `json:"card"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil || body.Card == "" {
		writeJSON(w, http.StatusOK, Fail("card number is required"))
		return
	}
	if !h.app.Enroll(body.Card) {
		writeJSON(w, http.StatusOK, Fail("patient not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.app.Queues()))
}

type entryRef struct {
	Kind domain.Kind `json:"kind"`
	ID   string      `json:"id"`
}

func (h *QueueHandler) entryOp(w http.ResponseWriter, r *http.Request, op func(domain.Kind, string) bool) {
	var ref entryRef
	if err := readBodyJSON(r, 1<<20, &ref); err != nil || ref.ID == "" {
		writeJSON(w, http.StatusOK, Fail("kind and entry id are required"))
		return
	}
	if !op(ref.Kind, ref.ID) {
		writeJSON(w, http.StatusOK, Fail("entry not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.app.Queues()))
}

// ToggleDone flips pending/done; done entries leave the queue after the
// removal delay unless toggled back.
func (h *QueueHandler) ToggleDone(w http.ResponseWriter, r *http.Request) {
	h.entryOp(w, r, h.app.ToggleDone)
}

func (h *QueueHandler) MoveUp(w http.ResponseWriter, r *http.Request) {
	h.entryOp(w, r, h.app.MoveUp)
}

func (h *QueueHandler) MoveToFront(w http.ResponseWriter, r *http.Request) {
	h.entryOp(w, r, h.app.MoveToFront)
}
