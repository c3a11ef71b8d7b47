package models

import (
	"testing"
	"time"
)

func validInsertService() InsertService {
	return InsertService{
		ClientID:       1,
		VehicleName:    "Honda Accord",
		Date:           time.Date(2025, 5, 7, 0, 0, 0, 0, time.UTC),
		TechnicianID:   1,
		TechnicianName: "Alessandro",
		ServiceType:    Hail,
		ServiceValue:   18000,
		Status:         ServicePending,
	}
}

func TestValidate_InsertClient(t *testing.T) {
	bad := "not-an-email"
	tests := []struct {
		name      string
		input     InsertClient
		wantField string
	}{
		{
			name:  "valid",
			input: InsertClient{Name: "Acme", Location: "Berlin"},
		},
		{
			name:      "missing name",
			input:     InsertClient{Location: "Berlin"},
			wantField: "name",
		},
		{
			name:      "missing location",
			input:     InsertClient{Name: "Acme"},
			wantField: "location",
		},
		{
			name:  "optional email present",
			input: InsertClient{Name: "Acme", Location: "Berlin", Email: &bad},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.input)
			if tt.wantField == "" {
				if errs != nil {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			found := false
			for _, fe := range errs {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidate_InsertService(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*InsertService)
		wantField string
	}{
		{
			name:   "valid",
			mutate: func(*InsertService) {},
		},
		{
			name:      "bad service type",
			mutate:    func(s *InsertService) { s.ServiceType = "polish" },
			wantField: "serviceType",
		},
		{
			name:      "bad status",
			mutate:    func(s *InsertService) { s.Status = "done" },
			wantField: "status",
		},
		{
			name:      "negative value",
			mutate:    func(s *InsertService) { s.ServiceValue = -1 },
			wantField: "serviceValue",
		},
		{
			name: "too many images",
			mutate: func(s *InsertService) {
				s.Images = []string{"1", "2", "3", "4", "5", "6", "7"}
			},
			wantField: "images",
		},
		{
			name:      "missing technician",
			mutate:    func(s *InsertService) { s.TechnicianID = 0 },
			wantField: "technicianId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInsertService()
			tt.mutate(&in)
			errs := Validate(in)
			if tt.wantField == "" {
				if errs != nil {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			found := false
			for _, fe := range errs {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidate_ServicePatch(t *testing.T) {
	badStatus := ServiceStatus("archived")
	errs := Validate(ServicePatch{Status: &badStatus})
	if len(errs) == 0 {
		t.Fatal("expected validation error for invalid status")
	}

	goodStatus := ServiceCompleted
	if errs := Validate(ServicePatch{Status: &goodStatus}); errs != nil {
		t.Fatalf("expected valid patch, got %v", errs)
	}

	// An empty patch is valid; it degenerates to a no-op update.
	if errs := Validate(ServicePatch{}); errs != nil {
		t.Fatalf("expected empty patch to be valid, got %v", errs)
	}
}
