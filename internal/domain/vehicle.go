package domain

import "time"

// Vehicle is identified by its license plate, unique per active parking
// session. EntryTime and ExitTime bound the current (or most recent) session:
// both nil before the first occupancy, ExitTime nil while a session is open.
// A plate may be reused across separate, non-overlapping sessions.
type Vehicle struct {
	LicensePlate string
	OwnerID      string
	EntryTime    *time.Time
	ExitTime     *time.Time
}

// InOpenSession reports whether the vehicle is currently parked somewhere.
func (v *Vehicle) InOpenSession() bool {
	return v.EntryTime != nil && v.ExitTime == nil
}
