package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/afigueiredo/werkstatt/internal/models"
)

// Demo credentials created on first boot.
const (
	SeedAdminUsername = "admin"
	SeedAdminPassword = "admin123"
)

func strptr(s string) *string { return &s }

// Seed populates an empty store with demo data: one admin user, two
// clients, five vehicles and two services. It is idempotent: when the
// admin user already exists the store is assumed seeded and nothing is
// written.
func Seed(ctx context.Context, store Storage, log *zap.Logger) error {
	existing, err := store.GetUserByUsername(ctx, SeedAdminUsername)
	if err != nil {
		return fmt.Errorf("seed: check admin: %w", err)
	}
	if existing != nil {
		log.Info("store already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash admin password: %w", err)
	}
	admin, err := store.CreateUser(ctx, models.InsertUser{
		Username: SeedAdminUsername,
		Password: string(hash),
		Name:     "Alessandro Figueiredo",
		Email:    "admin@example.com",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("seed: create admin: %w", err)
	}

	ford, err := store.CreateClient(ctx, models.InsertClient{
		Name:     "FORD - Waldshut",
		Location: "Waldshut-Tiengen",
		Email:    strptr("contact@ford-waldshut.com"),
		Phone:    strptr("+49123456789"),
	})
	if err != nil {
		return fmt.Errorf("seed: create client: %w", err)
	}
	lack, err := store.CreateClient(ctx, models.InsertClient{
		Name:     "Lackierzentrum",
		Location: "Lörrach",
	})
	if err != nil {
		return fmt.Errorf("seed: create client: %w", err)
	}

	vehicles := []models.InsertVehicle{
		{ClientID: ford.ID, Brand: "Ford", Model: "Focus", Plate: strptr("WT-F 1024")},
		{ClientID: ford.ID, Brand: "Honda", Model: "Accord", Plate: strptr("WT-H 311")},
		{ClientID: ford.ID, Brand: "Ford", Model: "Kuga", Plate: strptr("WT-K 87")},
		{ClientID: lack.ID, Brand: "Opel", Model: "Corsa", Plate: strptr("LÖ-C 452")},
		{ClientID: lack.ID, Brand: "Kia", Model: "Ceed", Plate: strptr("LÖ-T 711")},
	}
	created := make([]*models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		veh, err := store.CreateVehicle(ctx, v)
		if err != nil {
			return fmt.Errorf("seed: create vehicle: %w", err)
		}
		created = append(created, veh)
	}

	kia := created[4]
	honda := created[1]
	adminValue1 := 9000
	adminValue2 := 15000
	services := []models.InsertService{
		{
			ClientID:            lack.ID,
			VehicleID:           &kia.ID,
			VehicleName:         "Kia Ceed",
			VehiclePlate:        kia.Plate,
			Date:                time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC),
			TechnicianID:        admin.ID,
			TechnicianName:      admin.Name,
			ServiceType:         models.StreetDent,
			ServiceValue:        12000,
			AdministrativeValue: &adminValue1,
			Status:              models.ServiceCompleted,
		},
		{
			ClientID:            ford.ID,
			VehicleID:           &honda.ID,
			VehicleName:         "Honda Accord",
			VehiclePlate:        honda.Plate,
			Date:                time.Date(2025, 5, 7, 0, 0, 0, 0, time.UTC),
			TechnicianID:        admin.ID,
			TechnicianName:      admin.Name,
			ServiceType:         models.Hail,
			ServiceValue:        18000,
			AdministrativeValue: &adminValue2,
			Status:              models.ServicePending,
		},
	}
	for _, svc := range services {
		if _, err := store.CreateService(ctx, svc); err != nil {
			return fmt.Errorf("seed: create service: %w", err)
		}
	}

	log.Info("seeded demo data",
		zap.Int("clients", 2),
		zap.Int("vehicles", len(vehicles)),
		zap.Int("services", len(services)),
	)
	return nil
}
