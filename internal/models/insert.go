package models

import "time"

// Insert types carry client-supplied fields for creation; the store
// assigns IDs and timestamps. Patch types carry partial updates: only
// non-nil fields are applied, everything else keeps its prior value.

// InsertUser is the payload for creating a user.
type InsertUser struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     Role   `json:"role" validate:"required,oneof=admin technician manager"`
}

// UserPatch is a partial update of a user.
type UserPatch struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *Role   `json:"role" validate:"omitempty,oneof=admin technician manager"`
}

// InsertClient is the payload for creating a client.
type InsertClient struct {
	Name     string  `json:"name" validate:"required"`
	Location string  `json:"location" validate:"required"`
	Email    *string `json:"email" validate:"omitempty"`
	Phone    *string `json:"phone" validate:"omitempty"`
}

// ClientPatch is a partial update of a client.
type ClientPatch struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Location *string `json:"location" validate:"omitempty,min=1"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

// InsertVehicle is the payload for creating a vehicle.
type InsertVehicle struct {
	ClientID int     `json:"clientId" validate:"required,gt=0"`
	Brand    string  `json:"brand" validate:"required"`
	Model    string  `json:"model" validate:"required"`
	Plate    *string `json:"plate"`
	Chassis  *string `json:"chassis"`
	Color    *string `json:"color"`
}

// VehiclePatch is a partial update of a vehicle.
type VehiclePatch struct {
	ClientID *int    `json:"clientId" validate:"omitempty,gt=0"`
	Brand    *string `json:"brand" validate:"omitempty,min=1"`
	Model    *string `json:"model" validate:"omitempty,min=1"`
	Plate    *string `json:"plate"`
	Chassis  *string `json:"chassis"`
	Color    *string `json:"color"`
}

// InsertService is the payload for creating a service (work order).
type InsertService struct {
	ClientID            int           `json:"clientId" validate:"required,gt=0"`
	VehicleID           *int          `json:"vehicleId" validate:"omitempty,gt=0"`
	VehicleName         string        `json:"vehicleName" validate:"required"`
	VehiclePlate        *string       `json:"vehiclePlate"`
	VehicleChassis      *string       `json:"vehicleChassis"`
	Date                time.Time     `json:"date" validate:"required"`
	TechnicianID        int           `json:"technicianId" validate:"required,gt=0"`
	TechnicianName      string        `json:"technicianName" validate:"required"`
	ServiceType         ServiceType   `json:"serviceType" validate:"required,oneof=street_dent hail other"`
	ServiceValue        int           `json:"serviceValue" validate:"gte=0"`
	AdministrativeValue *int          `json:"administrativeValue" validate:"omitempty,gte=0"`
	Status              ServiceStatus `json:"status" validate:"required,oneof=pending in_progress completed"`
	Images              []string      `json:"images" validate:"max=6"`
}

// ServicePatch is a partial update of a service.
type ServicePatch struct {
	ClientID            *int           `json:"clientId" validate:"omitempty,gt=0"`
	VehicleID           *int           `json:"vehicleId" validate:"omitempty,gt=0"`
	VehicleName         *string        `json:"vehicleName" validate:"omitempty,min=1"`
	VehiclePlate        *string        `json:"vehiclePlate"`
	VehicleChassis      *string        `json:"vehicleChassis"`
	Date                *time.Time     `json:"date"`
	TechnicianID        *int           `json:"technicianId" validate:"omitempty,gt=0"`
	TechnicianName      *string        `json:"technicianName" validate:"omitempty,min=1"`
	ServiceType         *ServiceType   `json:"serviceType" validate:"omitempty,oneof=street_dent hail other"`
	ServiceValue        *int           `json:"serviceValue" validate:"omitempty,gte=0"`
	AdministrativeValue *int           `json:"administrativeValue" validate:"omitempty,gte=0"`
	Status              *ServiceStatus `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Images              *[]string      `json:"images" validate:"omitempty,max=6"`
}

// InsertBudget is the payload for creating a budget (quote).
type InsertBudget struct {
	ClientID       int          `json:"clientId" validate:"required,gt=0"`
	VehicleID      *int         `json:"vehicleId" validate:"omitempty,gt=0"`
	VehicleName    string       `json:"vehicleName" validate:"required"`
	Date           time.Time    `json:"date" validate:"required"`
	EstimatedValue int          `json:"estimatedValue" validate:"gte=0"`
	Description    string       `json:"description" validate:"required"`
	Status         BudgetStatus `json:"status" validate:"required,oneof=pending approved rejected"`
	CreatedBy      int          `json:"createdBy" validate:"required,gt=0"`
}

// BudgetPatch is a partial update of a budget.
type BudgetPatch struct {
	VehicleID      *int          `json:"vehicleId" validate:"omitempty,gt=0"`
	VehicleName    *string       `json:"vehicleName" validate:"omitempty,min=1"`
	Date           *time.Time    `json:"date"`
	EstimatedValue *int          `json:"estimatedValue" validate:"omitempty,gte=0"`
	Description    *string       `json:"description" validate:"omitempty,min=1"`
	Status         *BudgetStatus `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}
