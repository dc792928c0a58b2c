package location

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes location HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts under a router already scoped to /projects/{project_id}.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/locations", h.list)
	r.Post("/locations/generate", h.generate)
	r.Delete("/locations/floors/{floor}", h.deleteFloor)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	locs, err := h.service.List(r.Context(), chi.URLParam(r, "project_id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, locs)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var reqs []GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	resp, err := h.service.Generate(r.Context(), chi.URLParam(r, "project_id"), reqs)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, resp)
}

func (h *Handler) deleteFloor(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when the request carried escapes that Path
	// cannot represent (such as %2F); only then is the param still encoded.
	floor := chi.URLParam(r, "floor")
	if r.URL.RawPath != "" {
		var err error
		if floor, err = url.PathUnescape(floor); err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid floor: " + err.Error()})
			return
		}
	}
	resp, err := h.service.DeleteFloor(r.Context(), chi.URLParam(r, "project_id"), floor)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, resp)
}

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "required") || strings.Contains(msg, "invalid"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
