// Package repository defines the data-access contract for the workshop
// and provides its two implementations: an in-memory store for demos and
// tests, and a PostgreSQL store for production use. Both satisfy Storage
// with identical observable behavior.
package repository

import (
	"context"

	"github.com/afigueiredo/werkstatt/internal/models"
)

// Storage is the complete data-access contract, independent of the
// backing technology.
//
// Lookup methods return (nil, nil) when the id does not exist; absence
// is not an error. Update methods apply only the non-nil fields of the
// patch and return the stored record afterwards, or (nil, nil) for an
// unknown id; an empty patch is a no-op that returns the current state.
// Delete methods report whether a record was actually removed.
type Storage interface {
	// User operations
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user models.InsertUser) (*models.User, error)
	UpdateUser(ctx context.Context, id int, patch models.UserPatch) (*models.User, error)

	// Client operations
	GetClient(ctx context.Context, id int) (*models.Client, error)
	GetClients(ctx context.Context) ([]models.Client, error)
	CreateClient(ctx context.Context, client models.InsertClient) (*models.Client, error)
	UpdateClient(ctx context.Context, id int, patch models.ClientPatch) (*models.Client, error)
	DeleteClient(ctx context.Context, id int) (bool, error)

	// Vehicle operations
	GetVehicle(ctx context.Context, id int) (*models.Vehicle, error)
	GetVehiclesByClient(ctx context.Context, clientID int) ([]models.Vehicle, error)
	CreateVehicle(ctx context.Context, vehicle models.InsertVehicle) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id int, patch models.VehiclePatch) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int) (bool, error)

	// Service operations
	GetService(ctx context.Context, id int) (*models.Service, error)
	GetServices(ctx context.Context) ([]models.Service, error)
	GetServicesByClient(ctx context.Context, clientID int) ([]models.Service, error)
	GetServicesByTechnician(ctx context.Context, technicianID int) ([]models.Service, error)
	CreateService(ctx context.Context, service models.InsertService) (*models.Service, error)
	UpdateService(ctx context.Context, id int, patch models.ServicePatch) (*models.Service, error)
	DeleteService(ctx context.Context, id int) (bool, error)

	// Budget operations
	GetBudget(ctx context.Context, id int) (*models.Budget, error)
	GetBudgets(ctx context.Context) ([]models.Budget, error)
	GetBudgetsByClient(ctx context.Context, clientID int) ([]models.Budget, error)
	CreateBudget(ctx context.Context, budget models.InsertBudget) (*models.Budget, error)
	UpdateBudget(ctx context.Context, id int, patch models.BudgetPatch) (*models.Budget, error)

	// Dashboard aggregates
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	GetRecentServices(ctx context.Context, limit int) ([]models.Service, error)
}
