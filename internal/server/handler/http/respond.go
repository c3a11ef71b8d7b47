// Package http provides the REST handlers and routing for the workshop
// API.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/afigueiredo/werkstatt/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeValidationErrors reports a 400 with one entry per failing field.
func writeValidationErrors(w http.ResponseWriter, message string, errs []models.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": message,
		"errors":  errs,
	})
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
