package measurement

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes measurement HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts under a router already scoped to /projects/{project_id}.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/measurements", h.list)
	r.Put("/measurements", h.replace)
	r.Get("/measurements/report", h.report)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.service.List(r.Context(), chi.URLParam(r, "project_id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, recs)
}

func (h *Handler) replace(w http.ResponseWriter, r *http.Request) {
	var recs []*Record
	if err := json.NewDecoder(r.Body).Decode(&recs); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	resp, err := h.service.Replace(r.Context(), chi.URLParam(r, "project_id"), recs)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, resp)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.Report(r.Context(), chi.URLParam(r, "project_id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rep)
}

func statusFor(err error) int {
	msg := err.Error()
	if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
