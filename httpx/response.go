// Package httpx contains small JSON response helpers shared by all handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Blindworks/rhenanenmanager/apperr"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// Error renders a service error using the apperr taxonomy mapping:
// NotFound 404, Validation 400, Conflict 409, Authentication 401, else 500.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal_error"
	var details any

	var e *apperr.Error
	if errors.As(err, &e) {
		msg = e.Message
		details = e.Details
		switch e.Kind {
		case apperr.KindNotFound:
			status = http.StatusNotFound
		case apperr.KindValidation:
			status = http.StatusBadRequest
		case apperr.KindConflict:
			status = http.StatusConflict
		case apperr.KindAuthentication:
			status = http.StatusUnauthorized
		default:
			status = http.StatusInternalServerError
			msg = "internal_error"
			details = nil
		}
	}
	JSONError(w, status, msg, details)
}
