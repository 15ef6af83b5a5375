package model

import "testing"

func TestNextStatus(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   AppointmentStatus
	}{
		{StatusScheduled, StatusInProgress},
		{StatusInProgress, StatusCompleted},
		{StatusCompleted, StatusCompleted},
		{StatusCancelled, StatusCancelled},
	}

	for _, tt := range tests {
		a := Appointment{Status: tt.status}
		if got := a.NextStatus(); got != tt.want {
			t.Errorf("NextStatus() from %s = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestVehicleLabel(t *testing.T) {
	tests := []struct {
		name    string
		vehicle *Vehicle
		want    string
	}{
		{"no vehicle", nil, ""},
		{"model only", &Vehicle{Model: "Fiat Argo"}, "Fiat Argo"},
		{"model and chassis", &Vehicle{Model: "Fiat Argo", Chassis: "9BD123"}, "Fiat Argo · 9BD123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Appointment{Vehicle: tt.vehicle}
			if got := a.VehicleLabel(); got != tt.want {
				t.Errorf("VehicleLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	if got := (Appointment{Status: StatusInProgress}).StatusLabel(); got != "In Progress" {
		t.Errorf("StatusLabel() = %q, want In Progress", got)
	}
	// Unknown statuses pass through untranslated.
	if got := (Appointment{Status: "archived"}).StatusLabel(); got != "archived" {
		t.Errorf("StatusLabel() = %q, want archived", got)
	}
}
