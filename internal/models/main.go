// Package models defines the core data structures for users, clients,
// vehicles, services and budgets, together with their insert and patch
// shapes and field-level validation.
package models

import "time"

// Role defines the set of user roles that gate authorization.
type Role string

const (
	// RoleAdmin bypasses all authorization restrictions.
	RoleAdmin Role = "admin"
	// RoleTechnician is restricted to services it owns.
	RoleTechnician Role = "technician"
	// RoleManager may view everything but cannot delete clients.
	RoleManager Role = "manager"
)

// ServiceType classifies the kind of repair performed.
type ServiceType string

const (
	StreetDent ServiceType = "street_dent"
	Hail       ServiceType = "hail"
	OtherWork  ServiceType = "other"
)

// ServiceStatus tracks a work order through its lifecycle.
type ServiceStatus string

const (
	ServicePending    ServiceStatus = "pending"
	ServiceInProgress ServiceStatus = "in_progress"
	ServiceCompleted  ServiceStatus = "completed"
)

// BudgetStatus tracks a quote through approval.
type BudgetStatus string

const (
	BudgetPending  BudgetStatus = "pending"
	BudgetApproved BudgetStatus = "approved"
	BudgetRejected BudgetStatus = "rejected"
)

// MaxServiceImages caps the number of photos attached to a service.
const MaxServiceImages = 6

// User represents an application user. The password hash is never
// serialized to clients.
type User struct {
	// ID is the server-assigned identifier.
	ID int `json:"id"`
	// Username is the unique login name.
	Username string `json:"username"`
	// Password holds the bcrypt hash of the user's password.
	Password string `json:"-"`
	// Name is the display name.
	Name string `json:"name"`
	// Email is the contact address.
	Email string `json:"email"`
	// Role gates authorization decisions.
	Role Role `json:"role"`
}

// Client is the root entity; it owns vehicles and services by reference.
type Client struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	// CreatedAt is stamped by the store on creation.
	CreatedAt time.Time `json:"createdAt"`
}

// Vehicle belongs to exactly one client. Plate and chassis are optional
// identifying fields copied onto services.
type Vehicle struct {
	ID       int     `json:"id"`
	ClientID int     `json:"clientId"`
	Brand    string  `json:"brand"`
	Model    string  `json:"model"`
	Plate    *string `json:"plate"`
	Chassis  *string `json:"chassis"`
	Color    *string `json:"color"`
}

// Service is a work order recording a repair job for a client's vehicle.
// Monetary values are integer cents.
type Service struct {
	ID             int     `json:"id"`
	ClientID       int     `json:"clientId"`
	VehicleID      *int    `json:"vehicleId"`
	VehicleName    string  `json:"vehicleName"`
	VehiclePlate   *string `json:"vehiclePlate"`
	VehicleChassis *string `json:"vehicleChassis"`
	// Date is the scheduled date of the work.
	Date           time.Time   `json:"date"`
	TechnicianID   int         `json:"technicianId"`
	TechnicianName string      `json:"technicianName"`
	ServiceType    ServiceType `json:"serviceType"`
	// ServiceValue is the amount billed to the client, in cents.
	ServiceValue int `json:"serviceValue"`
	// AdministrativeValue is visible to admins only, in cents.
	AdministrativeValue *int          `json:"administrativeValue,omitempty"`
	Status              ServiceStatus `json:"status"`
	// Images is an ordered list of uploaded file paths, at most
	// MaxServiceImages entries.
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
}

// Budget is a quote/estimate for prospective work.
type Budget struct {
	ID          int       `json:"id"`
	ClientID    int       `json:"clientId"`
	VehicleID   *int      `json:"vehicleId"`
	VehicleName string    `json:"vehicleName"`
	Date        time.Time `json:"date"`
	// EstimatedValue is in cents.
	EstimatedValue int          `json:"estimatedValue"`
	Description    string       `json:"description"`
	Status         BudgetStatus `json:"status"`
	// CreatedBy references the user who drafted the quote.
	CreatedBy int       `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// DashboardStats summarizes the workload and revenue across all services.
type DashboardStats struct {
	PendingServices    int `json:"pendingServices"`
	InProgressServices int `json:"inProgressServices"`
	CompletedServices  int `json:"completedServices"`
	// TotalRevenue is the sum of ServiceValue over completed services,
	// in cents.
	TotalRevenue int `json:"totalRevenue"`
}
