package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/afigueiredo/werkstatt/internal/middleware"
	"github.com/afigueiredo/werkstatt/internal/models"
	"github.com/afigueiredo/werkstatt/internal/repository"
)

// BudgetHandler serves the quote endpoints.
type BudgetHandler struct {
	Store repository.Storage
}

// List handles GET /api/budgets, optionally filtered by ?clientId=.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		budgets []models.Budget
		err     error
	)
	if raw := r.URL.Query().Get("clientId"); raw != "" {
		clientID, convErr := strconv.Atoi(raw)
		if convErr != nil || clientID <= 0 {
			writeMessage(w, http.StatusBadRequest, "invalid clientId")
			return
		}
		budgets, err = h.Store.GetBudgetsByClient(r.Context(), clientID)
	} else {
		budgets, err = h.Store.GetBudgets(r.Context())
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch budgets")
		return
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

// Get handles GET /api/budgets/{id}.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid budget id")
		return
	}
	budget, err := h.Store.GetBudget(r.Context(), id)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch budget")
		return
	}
	if budget == nil {
		writeMessage(w, http.StatusNotFound, "budget not found")
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

// Create handles POST /api/budgets. The caller becomes the author when
// the payload does not name one.
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var in models.InsertBudget
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.CreatedBy == 0 {
		in.CreatedBy = user.ID
	}
	if in.Status == "" {
		in.Status = models.BudgetPending
	}
	if errs := models.Validate(in); errs != nil {
		writeValidationErrors(w, "invalid budget data", errs)
		return
	}

	budget, err := h.Store.CreateBudget(r.Context(), in)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create budget")
		return
	}
	writeJSON(w, http.StatusCreated, budget)
}

// Update handles PATCH /api/budgets/{id}. Approving or rejecting a
// quote is reserved for admins and managers.
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid budget id")
		return
	}
	var patch models.BudgetPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := models.Validate(patch); errs != nil {
		writeValidationErrors(w, "invalid update data", errs)
		return
	}

	user := middleware.UserFromContext(r.Context())
	if patch.Status != nil && user.Role != models.RoleAdmin && user.Role != models.RoleManager {
		writeMessage(w, http.StatusForbidden, "forbidden")
		return
	}

	budget, err := h.Store.UpdateBudget(r.Context(), id, patch)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update budget")
		return
	}
	if budget == nil {
		writeMessage(w, http.StatusNotFound, "budget not found")
		return
	}
	writeJSON(w, http.StatusOK, budget)
}
