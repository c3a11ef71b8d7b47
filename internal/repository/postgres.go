package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/afigueiredo/werkstatt/internal/models"
)

// PostgresStorage implements Storage against a PostgreSQL database.
// Every method issues a single parameterized query; partial updates
// build their SET clause from the fields present in the patch and fall
// back to a plain read when the patch is empty.
type PostgresStorage struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresStorage creates a PostgresStorage with the given database
// connection. db must be a valid *sql.DB connected to a PostgreSQL
// instance whose schema was created by db.InitPostgres.
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{DB: db}
}

// appendSet adds a "column = $n" fragment and its bound value, keeping
// placeholder numbering in sync with the args slice.
func appendSet(set []string, args []any, column string, value any) ([]string, []any) {
	set = append(set, fmt.Sprintf("%s = $%d", column, len(args)+1))
	return set, append(args, value)
}

// User operations

const userColumns = `id, username, password, name, email, role`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Name, &u.Email, &u.Role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStorage) GetUser(ctx context.Context, id int) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (s *PostgresStorage) CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error) {
	u := models.User{
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
	}
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, password, name, email, role)
		VALUES ($1, $2, $3, $4, $5) RETURNING id
	`, in.Username, in.Password, in.Name, in.Email, in.Role).Scan(&u.ID)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStorage) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (*models.User, error) {
	var set []string
	var args []any
	if patch.Username != nil {
		set, args = appendSet(set, args, "username", *patch.Username)
	}
	if patch.Password != nil {
		set, args = appendSet(set, args, "password", *patch.Password)
	}
	if patch.Name != nil {
		set, args = appendSet(set, args, "name", *patch.Name)
	}
	if patch.Email != nil {
		set, args = appendSet(set, args, "email", *patch.Email)
	}
	if patch.Role != nil {
		set, args = appendSet(set, args, "role", *patch.Role)
	}
	if len(set) == 0 {
		return s.GetUser(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`,
		strings.Join(set, ", "), len(args))
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.GetUser(ctx, id)
}

// Client operations

const clientColumns = `id, name, location, email, phone, created_at`

func scanClient(row *sql.Row) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Location, &c.Email, &c.Phone, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan client: %w", err)
	}
	return &c, nil
}

func (s *PostgresStorage) GetClient(ctx context.Context, id int) (*models.Client, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	return scanClient(row)
}

func (s *PostgresStorage) GetClients(ctx context.Context) ([]models.Client, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("get clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Location, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *PostgresStorage) CreateClient(ctx context.Context, in models.InsertClient) (*models.Client, error) {
	c := models.Client{
		Name:     in.Name,
		Location: in.Location,
		Email:    in.Email,
		Phone:    in.Phone,
	}
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO clients (name, location, email, phone)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at
	`, in.Name, in.Location, in.Email, in.Phone).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &c, nil
}

func (s *PostgresStorage) UpdateClient(ctx context.Context, id int, patch models.ClientPatch) (*models.Client, error) {
	var set []string
	var args []any
	if patch.Name != nil {
		set, args = appendSet(set, args, "name", *patch.Name)
	}
	if patch.Location != nil {
		set, args = appendSet(set, args, "location", *patch.Location)
	}
	if patch.Email != nil {
		set, args = appendSet(set, args, "email", *patch.Email)
	}
	if patch.Phone != nil {
		set, args = appendSet(set, args, "phone", *patch.Phone)
	}
	if len(set) == 0 {
		return s.GetClient(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE clients SET %s WHERE id = $%d`,
		strings.Join(set, ", "), len(args))
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return s.GetClient(ctx, id)
}

func (s *PostgresStorage) DeleteClient(ctx context.Context, id int) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	return n > 0, nil
}

// Vehicle operations

const vehicleColumns = `id, client_id, brand, model, plate, chassis, color`

func scanVehicle(row *sql.Row) (*models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(&v.ID, &v.ClientID, &v.Brand, &v.Model, &v.Plate, &v.Chassis, &v.Color)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan vehicle: %w", err)
	}
	return &v, nil
}

func (s *PostgresStorage) GetVehicle(ctx context.Context, id int) (*models.Vehicle, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	return scanVehicle(row)
}

func (s *PostgresStorage) GetVehiclesByClient(ctx context.Context, clientID int) ([]models.Vehicle, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE client_id = $1 ORDER BY id`, clientID)
	if err != nil {
		return nil, fmt.Errorf("get vehicles by client: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.ClientID, &v.Brand, &v.Model, &v.Plate, &v.Chassis, &v.Color); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (s *PostgresStorage) CreateVehicle(ctx context.Context, in models.InsertVehicle) (*models.Vehicle, error) {
	v := models.Vehicle{
		ClientID: in.ClientID,
		Brand:    in.Brand,
		Model:    in.Model,
		Plate:    in.Plate,
		Chassis:  in.Chassis,
		Color:    in.Color,
	}
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO vehicles (client_id, brand, model, plate, chassis, color)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id
	`, in.ClientID, in.Brand, in.Model, in.Plate, in.Chassis, in.Color).Scan(&v.ID)
	if err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return &v, nil
}

func (s *PostgresStorage) UpdateVehicle(ctx context.Context, id int, patch models.VehiclePatch) (*models.Vehicle, error) {
	var set []string
	var args []any
	if patch.ClientID != nil {
		set, args = appendSet(set, args, "client_id", *patch.ClientID)
	}
	if patch.Brand != nil {
		set, args = appendSet(set, args, "brand", *patch.Brand)
	}
	if patch.Model != nil {
		set, args = appendSet(set, args, "model", *patch.Model)
	}
	if patch.Plate != nil {
		set, args = appendSet(set, args, "plate", *patch.Plate)
	}
	if patch.Chassis != nil {
		set, args = appendSet(set, args, "chassis", *patch.Chassis)
	}
	if patch.Color != nil {
		set, args = appendSet(set, args, "color", *patch.Color)
	}
	if len(set) == 0 {
		return s.GetVehicle(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE vehicles SET %s WHERE id = $%d`,
		strings.Join(set, ", "), len(args))
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	return s.GetVehicle(ctx, id)
}

func (s *PostgresStorage) DeleteVehicle(ctx context.Context, id int) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete vehicle: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete vehicle: %w", err)
	}
	return n > 0, nil
}

// Service operations

const serviceColumns = `id, client_id, vehicle_id, vehicle_name, vehicle_plate,
		vehicle_chassis, date, technician_id, technician_name, service_type,
		service_value, administrative_value, status, images, created_at`

// scanService reads a service row, decoding the JSON images column.
// A NULL images column decodes to an empty list, never nil.
func scanService(scan func(dest ...any) error) (*models.Service, error) {
	var svc models.Service
	var images []byte
	err := scan(
		&svc.ID, &svc.ClientID, &svc.VehicleID, &svc.VehicleName, &svc.VehiclePlate,
		&svc.VehicleChassis, &svc.Date, &svc.TechnicianID, &svc.TechnicianName,
		&svc.ServiceType, &svc.ServiceValue, &svc.AdministrativeValue, &svc.Status,
		&images, &svc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	svc.Images = []string{}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &svc.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	return &svc, nil
}

func (s *PostgresStorage) GetService(ctx context.Context, id int) (*models.Service, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	svc, err := scanService(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	return svc, nil
}

func (s *PostgresStorage) queryServices(ctx context.Context, query string, args ...any) ([]models.Service, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		svc, err := scanService(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}

func (s *PostgresStorage) GetServices(ctx context.Context) ([]models.Service, error) {
	return s.queryServices(ctx,
		`SELECT `+serviceColumns+` FROM services ORDER BY date DESC, id DESC`)
}

func (s *PostgresStorage) GetServicesByClient(ctx context.Context, clientID int) ([]models.Service, error) {
	return s.queryServices(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE client_id = $1 ORDER BY date DESC, id DESC`,
		clientID)
}

func (s *PostgresStorage) GetServicesByTechnician(ctx context.Context, technicianID int) ([]models.Service, error) {
	return s.queryServices(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE technician_id = $1 ORDER BY date DESC, id DESC`,
		technicianID)
}

func (s *PostgresStorage) CreateService(ctx context.Context, in models.InsertService) (*models.Service, error) {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	encoded, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}

	svc := models.Service{
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
		Images:              images,
	}
	err = s.DB.QueryRowContext(ctx, `
		INSERT INTO services (
			client_id, vehicle_id, vehicle_name, vehicle_plate, vehicle_chassis,
			date, technician_id, technician_name, service_type, service_value,
			administrative_value, status, images
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`, in.ClientID, in.VehicleID, in.VehicleName, in.VehiclePlate, in.VehicleChassis,
		in.Date, in.TechnicianID, in.TechnicianName, in.ServiceType, in.ServiceValue,
		in.AdministrativeValue, in.Status, encoded,
	).Scan(&svc.ID, &svc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return &svc, nil
}

func (s *PostgresStorage) UpdateService(ctx context.Context, id int, patch models.ServicePatch) (*models.Service, error) {
	var set []string
	var args []any
	if patch.ClientID != nil {
		set, args = appendSet(set, args, "client_id", *patch.ClientID)
	}
	if patch.VehicleID != nil {
		set, args = appendSet(set, args, "vehicle_id", *patch.VehicleID)
	}
	if patch.VehicleName != nil {
		set, args = appendSet(set, args, "vehicle_name", *patch.VehicleName)
	}
	if patch.VehiclePlate != nil {
		set, args = appendSet(set, args, "vehicle_plate", *patch.VehiclePlate)
	}
	if patch.VehicleChassis != nil {
		set, args = appendSet(set, args, "vehicle_chassis", *patch.VehicleChassis)
	}
	if patch.Date != nil {
		set, args = appendSet(set, args, "date", *patch.Date)
	}
	if patch.TechnicianID != nil {
		set, args = appendSet(set, args, "technician_id", *patch.TechnicianID)
	}
	if patch.TechnicianName != nil {
		set, args = appendSet(set, args, "technician_name", *patch.TechnicianName)
	}
	if patch.ServiceType != nil {
		set, args = appendSet(set, args, "service_type", *patch.ServiceType)
	}
	if patch.ServiceValue != nil {
		set, args = appendSet(set, args, "service_value", *patch.ServiceValue)
	}
	if patch.AdministrativeValue != nil {
		set, args = appendSet(set, args, "administrative_value", *patch.AdministrativeValue)
	}
	if patch.Status != nil {
		set, args = appendSet(set, args, "status", *patch.Status)
	}
	if patch.Images != nil {
		encoded, err := json.Marshal(*patch.Images)
		if err != nil {
			return nil, fmt.Errorf("encode images: %w", err)
		}
		set, args = appendSet(set, args, "images", encoded)
	}
	if len(set) == 0 {
		return s.GetService(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE services SET %s WHERE id = $%d`,
		strings.Join(set, ", "), len(args))
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return s.GetService(ctx, id)
}

func (s *PostgresStorage) DeleteService(ctx context.Context, id int) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete service: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete service: %w", err)
	}
	return n > 0, nil
}

// Budget operations

const budgetColumns = `id, client_id, vehicle_id, vehicle_name, date,
		estimated_value, description, status, created_by, created_at`

func scanBudget(scan func(dest ...any) error) (*models.Budget, error) {
	var b models.Budget
	err := scan(
		&b.ID, &b.ClientID, &b.VehicleID, &b.VehicleName, &b.Date,
		&b.EstimatedValue, &b.Description, &b.Status, &b.CreatedBy, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PostgresStorage) GetBudget(ctx context.Context, id int) (*models.Budget, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id)
	b, err := scanBudget(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (s *PostgresStorage) queryBudgets(ctx context.Context, query string, args ...any) ([]models.Budget, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		b, err := scanBudget(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, *b)
	}
	return budgets, rows.Err()
}

func (s *PostgresStorage) GetBudgets(ctx context.Context) ([]models.Budget, error) {
	return s.queryBudgets(ctx,
		`SELECT `+budgetColumns+` FROM budgets ORDER BY id`)
}

func (s *PostgresStorage) GetBudgetsByClient(ctx context.Context, clientID int) ([]models.Budget, error) {
	return s.queryBudgets(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE client_id = $1 ORDER BY id`, clientID)
}

func (s *PostgresStorage) CreateBudget(ctx context.Context, in models.InsertBudget) (*models.Budget, error) {
	b := models.Budget{
		ClientID:       in.ClientID,
		VehicleID:      in.VehicleID,
		VehicleName:    in.VehicleName,
		Date:           in.Date,
		EstimatedValue: in.EstimatedValue,
		Description:    in.Description,
		Status:         in.Status,
		CreatedBy:      in.CreatedBy,
	}
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO budgets (
			client_id, vehicle_id, vehicle_name, date, estimated_value,
			description, status, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, in.ClientID, in.VehicleID, in.VehicleName, in.Date, in.EstimatedValue,
		in.Description, in.Status, in.CreatedBy,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return &b, nil
}

func (s *PostgresStorage) UpdateBudget(ctx context.Context, id int, patch models.BudgetPatch) (*models.Budget, error) {
	var set []string
	var args []any
	if patch.VehicleID != nil {
		set, args = appendSet(set, args, "vehicle_id", *patch.VehicleID)
	}
	if patch.VehicleName != nil {
		set, args = appendSet(set, args, "vehicle_name", *patch.VehicleName)
	}
	if patch.Date != nil {
		set, args = appendSet(set, args, "date", *patch.Date)
	}
	if patch.EstimatedValue != nil {
		set, args = appendSet(set, args, "estimated_value", *patch.EstimatedValue)
	}
	if patch.Description != nil {
		set, args = appendSet(set, args, "description", *patch.Description)
	}
	if patch.Status != nil {
		set, args = appendSet(set, args, "status", *patch.Status)
	}
	if len(set) == 0 {
		return s.GetBudget(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE budgets SET %s WHERE id = $%d`,
		strings.Join(set, ", "), len(args))
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}
	return s.GetBudget(ctx, id)
}

// Dashboard aggregates

// GetDashboardStats counts services per status and sums the billed value
// of completed services, in cents.
func (s *PostgresStorage) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := s.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COALESCE(SUM(service_value) FILTER (WHERE status = 'completed'), 0)
		FROM services
	`).Scan(
		&stats.PendingServices, &stats.InProgressServices,
		&stats.CompletedServices, &stats.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}

// GetRecentServices returns the most recently created services, newest
// first.
func (s *PostgresStorage) GetRecentServices(ctx context.Context, limit int) ([]models.Service, error) {
	return s.queryServices(ctx,
		`SELECT `+serviceColumns+` FROM services ORDER BY created_at DESC, id DESC LIMIT $1`,
		limit)
}
