package http

import (
	"encoding/json"
	"net/http"

	"github.com/afigueiredo/werkstatt/internal/models"
	"github.com/afigueiredo/werkstatt/internal/repository"
)

// VehicleHandler serves the vehicle endpoints.
type VehicleHandler struct {
	Store repository.Storage
}

// Create handles POST /api/vehicles.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.InsertVehicle
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := models.Validate(in); errs != nil {
		writeValidationErrors(w, "invalid vehicle data", errs)
		return
	}

	// The owning client must exist; a vehicle belongs to exactly one.
	client, err := h.Store.GetClient(r.Context(), in.ClientID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create vehicle")
		return
	}
	if client == nil {
		writeValidationErrors(w, "invalid vehicle data", []models.FieldError{
			{Field: "clientId", Message: "client does not exist"},
		})
		return
	}

	vehicle, err := h.Store.CreateVehicle(r.Context(), in)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create vehicle")
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

// Update handles PATCH /api/vehicles/{id}.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	var patch models.VehiclePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := models.Validate(patch); errs != nil {
		writeValidationErrors(w, "invalid update data", errs)
		return
	}
	vehicle, err := h.Store.UpdateVehicle(r.Context(), id, patch)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update vehicle")
		return
	}
	if vehicle == nil {
		writeMessage(w, http.StatusNotFound, "vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}
