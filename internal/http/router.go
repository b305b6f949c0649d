package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
)

// Router wraps the standard library mux; no third-party routing dependency.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func requireMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

func (r *Router) RegisterImportRoutes(h *ImportHandler) {
	r.Handle("/import/api/v1/file", requireMethod(http.MethodPost, h.UploadFile))
}

func (r *Router) RegisterQueueRoutes(h *QueueHandler) {
	r.Handle("/queues/api/v1/queues", requireMethod(http.MethodGet, h.GetQueues))
	r.Handle("/queues/api/v1/enroll", requireMethod(http.MethodPost, h.Enroll))
	r.Handle("/queues/api/v1/toggle-done", requireMethod(http.MethodPost, h.ToggleDone))
	r.Handle("/queues/api/v1/move-up", requireMethod(http.MethodPost, h.MoveUp))
	r.Handle("/queues/api/v1/move-front", requireMethod(http.MethodPost, h.MoveToFront))
}

func (r *Router) RegisterPatientRoutes(h *PatientHandler) {
	r.Handle("/patients/api/v1/patients", requireMethod(http.MethodGet, h.ListPatients))
	r.Handle("/patients/api/v1/search", requireMethod(http.MethodGet, h.SearchPatients))
	r.Handle("/patients/api/v1/add", requireMethod(http.MethodPost, h.AddPatient))
	r.Handle("/patients/api/v1/update", requireMethod(http.MethodPost, h.UpdatePatient))
	r.Handle("/patients/api/v1/delete", requireMethod(http.MethodPost, h.DeletePatients))
}

// RegisterTourRoutes: /tours/api/v1/{cohort}/{action}, cohort parsed here so
// handler methods get a typed value.
func (r *Router) RegisterTourRoutes(h *TourHandler) {
	r.Handle("/tours/api/v1/tours", requireMethod(http.MethodGet, h.GetTours))

	type tourRoute struct {
		method string
		fn     func(http.ResponseWriter, *http.Request, domain.Cohort)
	}
	routes := map[string]tourRoute{
		"new-day":        {http.MethodPost, h.NewDay},
		"reset-day":      {http.MethodPost, h.ResetDay},
		"duration":       {http.MethodPost, h.SetDuration},
		"close":          {http.MethodPost, h.CloseCohort},
		"archives":       {http.MethodGet, h.GetArchives},
		"restore":        {http.MethodPost, h.RestorePatient},
		"delete-tour":    {http.MethodPost, h.DeleteTour},
		"update-patient": {http.MethodPost, h.UpdateArchivedPatient},
	}

	r.Handle("/tours/api/v1/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/tours/api/v1/")
		parts := strings.Split(rest, "/")
		if len(parts) != 2 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		cohort, ok := domain.ParseCohort(parts[0])
		if !ok {
			writeJSON(w, http.StatusOK, Fail("unknown cohort"))
			return
		}
		route, ok := routes[parts[1]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if req.Method != route.method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		route.fn(w, req, cohort)
	})
}

func (r *Router) RegisterSettingsRoutes(h *SettingsHandler) {
	r.Handle("/settings/api/v1/catalog", requireMethod(http.MethodGet, h.GetCatalog))
	r.Handle("/settings/api/v1/visible-kinds", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.GetVisibleKinds(w, req)
		case http.MethodPost:
			h.SetVisibleKinds(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/auth/api/v1/status", requireMethod(http.MethodGet, h.GetStatus))
	r.Handle("/auth/api/v1/register", requireMethod(http.MethodPost, h.Register))
	r.Handle("/auth/api/v1/login", requireMethod(http.MethodPost, h.Login))
	r.Handle("/auth/api/v1/logout", requireMethod(http.MethodPost, h.Logout))
	r.Handle("/auth/api/v1/session", requireMethod(http.MethodGet, h.GetSession))
}

func (r *Router) RegisterStatusRoutes(h *StatusHandler) {
	r.Handle("/cloud/api/v1/status", requireMethod(http.MethodGet, h.GetCloudStatus))
}
