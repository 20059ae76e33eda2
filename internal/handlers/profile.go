package handlers

import (
	"net/http"

	"github.com/Blindworks/rhenanenmanager/httpx"
	"github.com/Blindworks/rhenanenmanager/internal/services"
)

type ProfileHandler struct {
	svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// List handles GET /api/profiles?limit=&page=&q=&status=.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), services.ProfileParams{
		Limit:  queryInt(r, "limit"),
		Page:   queryInt(r, "page"),
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

// Get handles GET /api/profiles/{id}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	out, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Create handles POST /api/profiles.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.ProfileRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := h.svc.Create(r.Context(), req, actorID(r))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, out)
}

// Update handles PUT /api/profiles/{id}.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req services.ProfileRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := h.svc.Update(r.Context(), id, req, actorID(r))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Delete handles DELETE /api/profiles/{id}.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
