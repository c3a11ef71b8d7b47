package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/afigueiredo/werkstatt/internal/models"
)

func testDate(day int) time.Time {
	return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
}

func newTestService(clientID, technicianID int, value int, status models.ServiceStatus) models.InsertService {
	return models.InsertService{
		ClientID:       clientID,
		VehicleName:    "Honda Accord",
		Date:           testDate(1),
		TechnicianID:   technicianID,
		TechnicianName: "Tester",
		ServiceType:    models.Hail,
		ServiceValue:   value,
		Status:         status,
	}
}

func TestMemStorage_CreateThenGetClient(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	email := "info@acme.example"
	created, err := store.CreateClient(ctx, models.InsertClient{
		Name:     "Acme",
		Location: "Berlin",
		Email:    &email,
	})
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := store.GetClient(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestMemStorage_GetClient_Unknown(t *testing.T) {
	store := NewMemStorage()
	got, err := store.GetClient(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemStorage_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	first, err := store.CreateClient(ctx, models.InsertClient{Name: "A", Location: "X"})
	require.NoError(t, err)

	deleted, err := store.DeleteClient(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	second, err := store.CreateClient(ctx, models.InsertClient{Name: "B", Location: "Y"})
	require.NoError(t, err)
	require.Equal(t, first.ID+1, second.ID)
}

func TestMemStorage_UpdateClient_EmptyPatchIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	created, err := store.CreateClient(ctx, models.InsertClient{Name: "Acme", Location: "Berlin"})
	require.NoError(t, err)

	updated, err := store.UpdateClient(ctx, created.ID, models.ClientPatch{})
	require.NoError(t, err)
	require.Equal(t, created, updated)
}

func TestMemStorage_UpdateService_OnlyNamedFieldsChange(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	created, err := store.CreateService(ctx, newTestService(1, 1, 5000, models.ServicePending))
	require.NoError(t, err)

	status := models.ServiceCompleted
	updated, err := store.UpdateService(ctx, created.ID, models.ServicePatch{Status: &status})
	require.NoError(t, err)

	require.Equal(t, models.ServiceCompleted, updated.Status)
	require.Equal(t, created.ServiceValue, updated.ServiceValue)
	require.Equal(t, created.VehicleName, updated.VehicleName)
	require.Equal(t, created.TechnicianID, updated.TechnicianID)
	require.Equal(t, created.Date, updated.Date)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestMemStorage_UpdateService_UnknownID(t *testing.T) {
	store := NewMemStorage()
	status := models.ServiceCompleted
	updated, err := store.UpdateService(context.Background(), 99, models.ServicePatch{Status: &status})
	require.NoError(t, err)
	require.Nil(t, updated)
}

func TestMemStorage_DeleteService(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	deleted, err := store.DeleteService(ctx, 7)
	require.NoError(t, err)
	require.False(t, deleted, "deleting a nonexistent id must report false")

	created, err := store.CreateService(ctx, newTestService(1, 1, 5000, models.ServicePending))
	require.NoError(t, err)

	deleted, err = store.DeleteService(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	got, err := store.GetService(ctx, created.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemStorage_DashboardStats_RevenueCompletedOnly(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	_, err := store.CreateService(ctx, newTestService(1, 1, 12000, models.ServiceCompleted))
	require.NoError(t, err)
	_, err = store.CreateService(ctx, newTestService(1, 1, 18000, models.ServicePending))
	require.NoError(t, err)

	stats, err := store.GetDashboardStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.PendingServices)
	require.Equal(t, 0, stats.InProgressServices)
	require.Equal(t, 1, stats.CompletedServices)
	require.Equal(t, 12000, stats.TotalRevenue)
}

func TestMemStorage_GetRecentServices(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	// Control creation timestamps so ordering is unambiguous.
	ts := testDate(1)
	store.now = func() time.Time {
		ts = ts.Add(time.Minute)
		return ts
	}

	first, err := store.CreateService(ctx, newTestService(1, 1, 1000, models.ServicePending))
	require.NoError(t, err)
	second, err := store.CreateService(ctx, newTestService(1, 1, 2000, models.ServicePending))
	require.NoError(t, err)
	third, err := store.CreateService(ctx, newTestService(1, 1, 3000, models.ServicePending))
	require.NoError(t, err)

	recent, err := store.GetRecentServices(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, third.ID, recent[0].ID)
	require.Equal(t, second.ID, recent[1].ID)
	_ = first

	all, err := store.GetRecentServices(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestMemStorage_ClientVehicleServiceScenario(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	client, err := store.CreateClient(ctx, models.InsertClient{Name: "Acme", Location: "Berlin"})
	require.NoError(t, err)

	vehicle, err := store.CreateVehicle(ctx, models.InsertVehicle{
		ClientID: client.ID,
		Brand:    "VW",
		Model:    "Golf",
	})
	require.NoError(t, err)

	svc := newTestService(client.ID, 1, 5000, models.ServicePending)
	svc.VehicleID = &vehicle.ID
	created, err := store.CreateService(ctx, svc)
	require.NoError(t, err)

	byClient, err := store.GetServicesByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	require.Equal(t, created.ID, byClient[0].ID)

	vehicles, err := store.GetVehiclesByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)

	stats, err := store.GetDashboardStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.PendingServices)
}

func TestMemStorage_GetServicesByTechnician(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	_, err := store.CreateService(ctx, newTestService(1, 1, 1000, models.ServicePending))
	require.NoError(t, err)
	mine, err := store.CreateService(ctx, newTestService(1, 2, 2000, models.ServicePending))
	require.NoError(t, err)

	got, err := store.GetServicesByTechnician(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, mine.ID, got[0].ID)
}

func TestMemStorage_CreateService_DefaultsImages(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	created, err := store.CreateService(ctx, newTestService(1, 1, 1000, models.ServicePending))
	require.NoError(t, err)
	require.NotNil(t, created.Images)
	require.Empty(t, created.Images)
}

func TestMemStorage_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	created, err := store.CreateUser(ctx, models.InsertUser{
		Username: "tech1",
		Password: "hash",
		Name:     "Tech One",
		Email:    "tech1@example.com",
		Role:     models.RoleTechnician,
	})
	require.NoError(t, err)

	got, err := store.GetUserByUsername(ctx, "tech1")
	require.NoError(t, err)
	require.Equal(t, created, got)

	missing, err := store.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestMemStorage_Budgets(t *testing.T) {
	ctx := context.Background()
	store := NewMemStorage()

	created, err := store.CreateBudget(ctx, models.InsertBudget{
		ClientID:       3,
		VehicleName:    "Opel Corsa",
		Date:           testDate(10),
		EstimatedValue: 25000,
		Description:    "hail damage, roof and hood",
		Status:         models.BudgetPending,
		CreatedBy:      1,
	})
	require.NoError(t, err)

	status := models.BudgetApproved
	updated, err := store.UpdateBudget(ctx, created.ID, models.BudgetPatch{Status: &status})
	require.NoError(t, err)
	require.Equal(t, models.BudgetApproved, updated.Status)
	require.Equal(t, created.EstimatedValue, updated.EstimatedValue)

	byClient, err := store.GetBudgetsByClient(ctx, 3)
	require.NoError(t, err)
	require.Len(t, byClient, 1)
}
