package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/afigueiredo/werkstatt/internal/models"
)

// MemStorage implements Storage with process-local maps. Identifiers are
// per-entity monotonic counters starting at 1 and are never reused after
// deletion. A single RWMutex guards all collections; the HTTP server
// calls in concurrently.
type MemStorage struct {
	mu sync.RWMutex

	users    map[int]models.User
	clients  map[int]models.Client
	vehicles map[int]models.Vehicle
	services map[int]models.Service
	budgets  map[int]models.Budget

	userID    int
	clientID  int
	vehicleID int
	serviceID int
	budgetID  int

	// now is swappable in tests.
	now func() time.Time
}

// NewMemStorage returns an empty in-memory store.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:     make(map[int]models.User),
		clients:   make(map[int]models.Client),
		vehicles:  make(map[int]models.Vehicle),
		services:  make(map[int]models.Service),
		budgets:   make(map[int]models.Budget),
		userID:    1,
		clientID:  1,
		vehicleID: 1,
		serviceID: 1,
		budgetID:  1,
		now:       time.Now,
	}
}

// User operations

func (m *MemStorage) GetUser(_ context.Context, id int) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *MemStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MemStorage) CreateUser(_ context.Context, in models.InsertUser) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := models.User{
		ID:       m.userID,
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
	}
	m.userID++
	m.users[u.ID] = u
	return &u, nil
}

func (m *MemStorage) UpdateUser(_ context.Context, id int, patch models.UserPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	m.users[id] = u
	return &u, nil
}

// Client operations

func (m *MemStorage) GetClient(_ context.Context, id int) (*models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.clients[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *MemStorage) GetClients(_ context.Context) ([]models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Client, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemStorage) CreateClient(_ context.Context, in models.InsertClient) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := models.Client{
		ID:        m.clientID,
		Name:      in.Name,
		Location:  in.Location,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: m.now(),
	}
	m.clientID++
	m.clients[c.ID] = c
	return &c, nil
}

func (m *MemStorage) UpdateClient(_ context.Context, id int, patch models.ClientPatch) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Location != nil {
		c.Location = *patch.Location
	}
	if patch.Email != nil {
		c.Email = patch.Email
	}
	if patch.Phone != nil {
		c.Phone = patch.Phone
	}
	m.clients[id] = c
	return &c, nil
}

func (m *MemStorage) DeleteClient(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return false, nil
	}
	delete(m.clients, id)
	return true, nil
}

// Vehicle operations

func (m *MemStorage) GetVehicle(_ context.Context, id int) (*models.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vehicles[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *MemStorage) GetVehiclesByClient(_ context.Context, clientID int) ([]models.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Vehicle
	for _, v := range m.vehicles {
		if v.ClientID == clientID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStorage) CreateVehicle(_ context.Context, in models.InsertVehicle) (*models.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := models.Vehicle{
		ID:       m.vehicleID,
		ClientID: in.ClientID,
		Brand:    in.Brand,
		Model:    in.Model,
		Plate:    in.Plate,
		Chassis:  in.Chassis,
		Color:    in.Color,
	}
	m.vehicleID++
	m.vehicles[v.ID] = v
	return &v, nil
}

func (m *MemStorage) UpdateVehicle(_ context.Context, id int, patch models.VehiclePatch) (*models.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, nil
	}
	if patch.ClientID != nil {
		v.ClientID = *patch.ClientID
	}
	if patch.Brand != nil {
		v.Brand = *patch.Brand
	}
	if patch.Model != nil {
		v.Model = *patch.Model
	}
	if patch.Plate != nil {
		v.Plate = patch.Plate
	}
	if patch.Chassis != nil {
		v.Chassis = patch.Chassis
	}
	if patch.Color != nil {
		v.Color = patch.Color
	}
	m.vehicles[id] = v
	return &v, nil
}

func (m *MemStorage) DeleteVehicle(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[id]; !ok {
		return false, nil
	}
	delete(m.vehicles, id)
	return true, nil
}

// Service operations

func (m *MemStorage) GetService(_ context.Context, id int) (*models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.services[id]; ok {
		s.Images = cloneImages(s.Images)
		return &s, nil
	}
	return nil, nil
}

func (m *MemStorage) GetServices(_ context.Context) ([]models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.servicesLocked(func(models.Service) bool { return true }), nil
}

func (m *MemStorage) GetServicesByClient(_ context.Context, clientID int) ([]models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.servicesLocked(func(s models.Service) bool { return s.ClientID == clientID }), nil
}

func (m *MemStorage) GetServicesByTechnician(_ context.Context, technicianID int) ([]models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.servicesLocked(func(s models.Service) bool { return s.TechnicianID == technicianID }), nil
}

// servicesLocked collects matching services ordered by date descending.
// Callers must hold at least a read lock.
func (m *MemStorage) servicesLocked(match func(models.Service) bool) []models.Service {
	var out []models.Service
	for _, s := range m.services {
		if match(s) {
			s.Images = cloneImages(s.Images)
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *MemStorage) CreateService(_ context.Context, in models.InsertService) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := models.Service{
		ID:                  m.serviceID,
		ClientID:            in.ClientID,
		VehicleID:           in.VehicleID,
		VehicleName:         in.VehicleName,
		VehiclePlate:        in.VehiclePlate,
		VehicleChassis:      in.VehicleChassis,
		Date:                in.Date,
		TechnicianID:        in.TechnicianID,
		TechnicianName:      in.TechnicianName,
		ServiceType:         in.ServiceType,
		ServiceValue:        in.ServiceValue,
		AdministrativeValue: in.AdministrativeValue,
		Status:              in.Status,
		Images:              cloneImages(in.Images),
		CreatedAt:           m.now(),
	}
	if s.Images == nil {
		s.Images = []string{}
	}
	m.serviceID++
	m.services[s.ID] = s
	return &s, nil
}

func (m *MemStorage) UpdateService(_ context.Context, id int, patch models.ServicePatch) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return nil, nil
	}
	if patch.ClientID != nil {
		s.ClientID = *patch.ClientID
	}
	if patch.VehicleID != nil {
		s.VehicleID = patch.VehicleID
	}
	if patch.VehicleName != nil {
		s.VehicleName = *patch.VehicleName
	}
	if patch.VehiclePlate != nil {
		s.VehiclePlate = patch.VehiclePlate
	}
	if patch.VehicleChassis != nil {
		s.VehicleChassis = patch.VehicleChassis
	}
	if patch.Date != nil {
		s.Date = *patch.Date
	}
	if patch.TechnicianID != nil {
		s.TechnicianID = *patch.TechnicianID
	}
	if patch.TechnicianName != nil {
		s.TechnicianName = *patch.TechnicianName
	}
	if patch.ServiceType != nil {
		s.ServiceType = *patch.ServiceType
	}
	if patch.ServiceValue != nil {
		s.ServiceValue = *patch.ServiceValue
	}
	if patch.AdministrativeValue != nil {
		s.AdministrativeValue = patch.AdministrativeValue
	}
	if patch.Status != nil {
		s.Status = *patch.Status
	}
	if patch.Images != nil {
		s.Images = cloneImages(*patch.Images)
	}
	m.services[id] = s
	return &s, nil
}

func (m *MemStorage) DeleteService(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[id]; !ok {
		return false, nil
	}
	delete(m.services, id)
	return true, nil
}

// Budget operations

func (m *MemStorage) GetBudget(_ context.Context, id int) (*models.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.budgets[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (m *MemStorage) GetBudgets(_ context.Context) ([]models.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Budget, 0, len(m.budgets))
	for _, b := range m.budgets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStorage) GetBudgetsByClient(_ context.Context, clientID int) ([]models.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Budget
	for _, b := range m.budgets {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStorage) CreateBudget(_ context.Context, in models.InsertBudget) (*models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := models.Budget{
		ID:             m.budgetID,
		ClientID:       in.ClientID,
		VehicleID:      in.VehicleID,
		VehicleName:    in.VehicleName,
		Date:           in.Date,
		EstimatedValue: in.EstimatedValue,
		Description:    in.Description,
		Status:         in.Status,
		CreatedBy:      in.CreatedBy,
		CreatedAt:      m.now(),
	}
	m.budgetID++
	m.budgets[b.ID] = b
	return &b, nil
}

func (m *MemStorage) UpdateBudget(_ context.Context, id int, patch models.BudgetPatch) (*models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.budgets[id]
	if !ok {
		return nil, nil
	}
	if patch.VehicleID != nil {
		b.VehicleID = patch.VehicleID
	}
	if patch.VehicleName != nil {
		b.VehicleName = *patch.VehicleName
	}
	if patch.Date != nil {
		b.Date = *patch.Date
	}
	if patch.EstimatedValue != nil {
		b.EstimatedValue = *patch.EstimatedValue
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	m.budgets[id] = b
	return &b, nil
}

// Dashboard aggregates

func (m *MemStorage) GetDashboardStats(_ context.Context) (*models.DashboardStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &models.DashboardStats{}
	for _, s := range m.services {
		switch s.Status {
		case models.ServicePending:
			stats.PendingServices++
		case models.ServiceInProgress:
			stats.InProgressServices++
		case models.ServiceCompleted:
			stats.CompletedServices++
			stats.TotalRevenue += s.ServiceValue
		}
	}
	return stats, nil
}

func (m *MemStorage) GetRecentServices(_ context.Context, limit int) ([]models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Service, 0, len(m.services))
	for _, s := range m.services {
		s.Images = cloneImages(s.Images)
		out = append(out, s)
	}
	// Newest first; ids break ties since fast successive creates can
	// share a timestamp.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func cloneImages(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
