package domain

import "time"

// PaymentStatus enumerates settlement outcomes. Only completed settlements
// are modeled; no partial or failed states exist.
type PaymentStatus string

const PaymentStatusCompleted PaymentStatus = "COMPLETED"

// Payment is an immutable settlement record produced on fee calculation.
// It is owned by whoever requested the settlement; neither spaces nor
// vehicles retain it.
type Payment struct {
	ID        string
	Amount    float64
	Timestamp time.Time
	Status    PaymentStatus
}
