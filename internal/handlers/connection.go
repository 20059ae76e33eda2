package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Blindworks/rhenanenmanager/httpx"
	"github.com/Blindworks/rhenanenmanager/internal/services"
)

type ConnectionHandler struct {
	svc *services.ConnectionService
}

func NewConnectionHandler(svc *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{svc: svc}
}

// List handles GET /api/connections?active_only=.
func (h *ConnectionHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := strings.EqualFold(r.URL.Query().Get("active_only"), "true")
	out, err := h.svc.All(r.Context(), activeOnly)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Create handles POST /api/connections.
func (h *ConnectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.ConnectionRequest
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

// Get handles GET /api/connections/{id}.
func (h *ConnectionHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// GetDetail handles GET /api/connections/{id}/detail.
func (h *ConnectionHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	out, err := h.svc.GetDetailByID(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Update handles PUT /api/connections/{id}.
func (h *ConnectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req services.ConnectionRequest
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

// Delete handles DELETE /api/connections/{id}.
func (h *ConnectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Exists handles GET /api/connections/exists.
func (h *ConnectionHandler) Exists(w http.ResponseWriter, r *http.Request) {
	from := queryUint(r, "from_profile_id")
	to := queryUint(r, "to_profile_id")
	relType := r.URL.Query().Get("relation_type")
	if from == 0 || to == 0 || relType == "" {
		httpx.JSONError(w, http.StatusBadRequest,
			"from_profile_id, to_profile_id and relation_type are required", nil)
		return
	}
	exists, err := h.svc.Exists(r.Context(), from, to, relType)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// Types handles GET /api/connections/types.
func (h *ConnectionHandler) Types(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.RelationTypes(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// ByType handles GET /api/connections/type/{relationType}.
func (h *ConnectionHandler) ByType(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ByType(r.Context(), chi.URLParam(r, "relationType"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// ForProfile handles GET /api/connections/profile/{profileID}.
func (h *ConnectionHandler) ForProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	out, err := h.svc.ForProfile(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// DetailedForProfile handles GET /api/connections/profile/{profileID}/detail.
func (h *ConnectionHandler) DetailedForProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	out, err := h.svc.DetailedForProfile(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// From handles GET /api/connections/profile/{profileID}/from.
func (h *ConnectionHandler) From(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	out, err := h.svc.From(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// To handles GET /api/connections/profile/{profileID}/to.
func (h *ConnectionHandler) To(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	out, err := h.svc.To(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// ActiveForProfile handles GET /api/connections/profile/{profileID}/active.
func (h *ConnectionHandler) ActiveForProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	out, err := h.svc.ActiveForProfile(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// ActiveByType handles GET /api/connections/profile/{profileID}/type/{relationType}/active.
func (h *ConnectionHandler) ActiveByType(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	out, err := h.svc.ActiveByType(r.Context(), id, chi.URLParam(r, "relationType"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
