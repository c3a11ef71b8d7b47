package http

import (
	"encoding/json"
	"net/http"

	"github.com/afigueiredo/werkstatt/internal/middleware"
	"github.com/afigueiredo/werkstatt/internal/models"
	"github.com/afigueiredo/werkstatt/internal/repository"
)

// ServiceHandler serves the work-order endpoints. Technicians only see
// and modify their own services; admins bypass all restrictions.
type ServiceHandler struct {
	Store repository.Storage
}

// canView reports whether user may read svc.
func canView(user *models.User, svc *models.Service) bool {
	if user.Role == models.RoleAdmin || user.Role == models.RoleManager {
		return true
	}
	return svc.TechnicianID == user.ID
}

// canModify reports whether user may change or delete svc. Managers can
// view everything but only admins override ownership for writes.
func canModify(user *models.User, svc *models.Service) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	return svc.TechnicianID == user.ID
}

// List handles GET /api/services, scoped by the caller's role.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var (
		services []models.Service
		err      error
	)
	switch user.Role {
	case models.RoleAdmin, models.RoleManager:
		services, err = h.Store.GetServices(r.Context())
	case models.RoleTechnician:
		services, err = h.Store.GetServicesByTechnician(r.Context(), user.ID)
	default:
		writeMessage(w, http.StatusForbidden, "forbidden")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch services")
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	writeJSON(w, http.StatusOK, services)
}

// Get handles GET /api/services/{id}.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid service id")
		return
	}
	svc, err := h.Store.GetService(r.Context(), id)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch service")
		return
	}
	if svc == nil {
		writeMessage(w, http.StatusNotFound, "service not found")
		return
	}
	if !canView(middleware.UserFromContext(r.Context()), svc) {
		writeMessage(w, http.StatusForbidden, "forbidden")
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

// Create handles POST /api/services. Non-admin callers always become
// the service's technician, whatever the payload says.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var in models.InsertService
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if user.Role != models.RoleAdmin {
		in.TechnicianID = user.ID
		in.TechnicianName = user.Name
		if user.Role != models.RoleManager {
			in.AdministrativeValue = nil
		}
	}
	if errs := models.Validate(in); errs != nil {
		writeValidationErrors(w, "invalid service data", errs)
		return
	}

	svc, err := h.Store.CreateService(r.Context(), in)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create service")
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

// Update handles PATCH /api/services/{id}. The administrativeValue
// field is stripped from non-admin patches before it reaches storage.
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid service id")
		return
	}
	svc, err := h.Store.GetService(r.Context(), id)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update service")
		return
	}
	if svc == nil {
		writeMessage(w, http.StatusNotFound, "service not found")
		return
	}

	user := middleware.UserFromContext(r.Context())
	if !canModify(user, svc) {
		writeMessage(w, http.StatusForbidden, "forbidden")
		return
	}

	var patch models.ServicePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if user.Role != models.RoleAdmin {
		patch.AdministrativeValue = nil
	}
	if errs := models.Validate(patch); errs != nil {
		writeValidationErrors(w, "invalid update data", errs)
		return
	}

	updated, err := h.Store.UpdateService(r.Context(), id, patch)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update service")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/services/{id}.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid service id")
		return
	}
	svc, err := h.Store.GetService(r.Context(), id)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to delete service")
		return
	}
	if svc == nil {
		writeMessage(w, http.StatusNotFound, "service not found")
		return
	}
	if !canModify(middleware.UserFromContext(r.Context()), svc) {
		writeMessage(w, http.StatusForbidden, "forbidden")
		return
	}

	if _, err := h.Store.DeleteService(r.Context(), id); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to delete service")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
