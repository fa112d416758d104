package domain

import "time"

// Reservation is an advisory hold on a space for a future time window.
// It carries no exclusivity guarantee: plain occupancy may still take the
// space, consuming the hold. End is strictly after Start.
type Reservation struct {
	ID        string
	UserID    string
	StartTime time.Time
	EndTime   time.Time
	Payment   *Payment
	CreatedAt time.Time
}
