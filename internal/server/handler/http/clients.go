package http

import (
	"encoding/json"
	"net/http"

	"github.com/afigueiredo/werkstatt/internal/models"
	"github.com/afigueiredo/werkstatt/internal/repository"
)

// ClientHandler serves the client CRUD endpoints.
type ClientHandler struct {
	Store repository.Storage
}

// List handles GET /api/clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Store.GetClients(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch clients")
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

// Get handles GET /api/clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid client id")
		return
	}
	client, err := h.Store.GetClient(r.Context(), id)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch client")
		return
	}
	if client == nil {
		writeMessage(w, http.StatusNotFound, "client not found")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// Create handles POST /api/clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.InsertClient
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := models.Validate(in); errs != nil {
		writeValidationErrors(w, "invalid client data", errs)
		return
	}
	client, err := h.Store.CreateClient(r.Context(), in)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create client")
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// Update handles PATCH /api/clients/{id}. Only fields present in the
// body change.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid client id")
		return
	}
	var patch models.ClientPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := models.Validate(patch); errs != nil {
		writeValidationErrors(w, "invalid update data", errs)
		return
	}
	client, err := h.Store.UpdateClient(r.Context(), id, patch)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update client")
		return
	}
	if client == nil {
		writeMessage(w, http.StatusNotFound, "client not found")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// Delete handles DELETE /api/clients/{id}; the route is admin-only.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid client id")
		return
	}
	deleted, err := h.Store.DeleteClient(r.Context(), id)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to delete client")
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "client not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListVehicles handles GET /api/clients/{id}/vehicles.
func (h *ClientHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid client id")
		return
	}
	vehicles, err := h.Store.GetVehiclesByClient(r.Context(), id)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch vehicles")
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}
