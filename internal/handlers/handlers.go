// Package handlers contains the HTTP handlers for each API resource. They
// decode requests, call the corresponding service and render JSON via httpx.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Blindworks/rhenanenmanager/auth"
	"github.com/Blindworks/rhenanenmanager/httpx"
)

// idParam parses a uint URL parameter; writes a 400 and returns false on
// garbage input.
func idParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}

// decode unmarshals the JSON request body into dst; writes a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	return true
}

// actorID returns the authenticated user id for audit fields, nil when the
// request is unauthenticated (guards normally prevent that).
func actorID(r *http.Request) *uint {
	if id, ok := auth.UserIDFromContext(r.Context()); ok {
		return &id
	}
	return nil
}

func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}

func queryUint(r *http.Request, name string) uint {
	n, _ := strconv.ParseUint(r.URL.Query().Get(name), 10, 64)
	return uint(n)
}
