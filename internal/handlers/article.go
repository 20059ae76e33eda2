package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Blindworks/rhenanenmanager/httpx"
	"github.com/Blindworks/rhenanenmanager/internal/services"
)

type ArticleHandler struct {
	svc *services.ArticleService
}

func NewArticleHandler(svc *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// List handles GET /api/articles?limit=&page=&category=&q=.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), services.ListParams{
		Limit:    queryInt(r, "limit"),
		Page:     queryInt(r, "page"),
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

// Get handles GET /api/articles/{id}.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// Create handles POST /api/articles.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.ArticleRequest
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

// Update handles PUT /api/articles/{id}.
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req services.ArticleRequest
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

// Delete handles DELETE /api/articles/{id}.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Categories handles GET /api/articles/categories.
func (h *ArticleHandler) Categories(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Categories(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Years handles GET /api/articles/years.
func (h *ArticleHandler) Years(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Years(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

// ByYear handles GET /api/articles/year/{year}.
func (h *ArticleHandler) ByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid year", nil)
		return
	}
	out, svcErr := h.svc.ByYear(r.Context(), year)
	if svcErr != nil {
		httpx.Error(w, svcErr)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
