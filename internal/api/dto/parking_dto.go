package dto

// ParkResponse reports the allocated space.
type ParkResponse struct {
	SpaceID      int    `json:"space_id"`
	LicensePlate string `json:"license_plate"`
	EntryTime    string `json:"entry_time"`
}

// ReservationRequest payload; timestamps use the "YYYY-MM-DD HH:MM" form.
type ReservationRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ReservationResponse describes the granted hold.
type ReservationResponse struct {
	ReservationID string `json:"reservation_id"`
	SpaceID       int    `json:"space_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

// AvailabilityResponse answers occupancy queries.
type AvailabilityResponse struct {
	Capacity  int `json:"capacity"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

// PaymentRequest payload for settling a completed session.
type PaymentRequest struct {
	LicensePlate string `json:"license_plate"`
}

// PaymentResponse describes the settlement record.
type PaymentResponse struct {
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Timestamp string  `json:"timestamp"`
	Status    string  `json:"status"`
}
