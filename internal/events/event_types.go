package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSpaceOccupied    EventType = "space_occupied"
	EventSpaceVacated     EventType = "space_vacated"
	EventSpaceReserved    EventType = "space_reserved"
	EventPaymentProcessed EventType = "payment_processed"
)

// Event represents a domain event emitted by the allocation manager.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SpaceID   int         `json:"space_id,omitempty"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SpaceOccupiedPayload payload.
type SpaceOccupiedPayload struct {
	LicensePlate string    `json:"license_plate"`
	EntryTime    time.Time `json:"entry_time"`
}

// SpaceVacatedPayload payload.
type SpaceVacatedPayload struct {
	LicensePlate string    `json:"license_plate"`
	ExitTime     time.Time `json:"exit_time"`
}

// SpaceReservedPayload payload.
type SpaceReservedPayload struct {
	ReservationID string    `json:"reservation_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// PaymentProcessedPayload payload.
type PaymentProcessedPayload struct {
	PaymentID    string  `json:"payment_id"`
	LicensePlate string  `json:"license_plate"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
}
