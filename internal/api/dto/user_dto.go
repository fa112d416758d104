package dto

import "time"

// RegisterRequest payload for new driver accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AddVehicleRequest payload for vehicle registration.
type AddVehicleRequest struct {
	LicensePlate string `json:"license_plate"`
}

// VehicleResponse describes a registered vehicle.
type VehicleResponse struct {
	LicensePlate string `json:"license_plate"`
	EntryTime    string `json:"entry_time,omitempty"`
	ExitTime     string `json:"exit_time,omitempty"`
}
