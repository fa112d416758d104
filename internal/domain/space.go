package domain

import (
	"fmt"
	"time"

	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// SpaceState enumerates the allocation states of a parking space.
type SpaceState string

const (
	SpaceStateVacant   SpaceState = "VACANT"
	SpaceStateOccupied SpaceState = "OCCUPIED"
	SpaceStateReserved SpaceState = "RESERVED"
)

// Space is one fixed, uniquely identified unit of the parking pool.
//
// Transitions: VACANT -> OCCUPIED (Occupy), OCCUPIED -> VACANT (Vacate),
// VACANT -> RESERVED (Reserve), RESERVED -> OCCUPIED (Occupy, consuming the
// hold). No transition leaves OCCUPIED except Vacate.
//
// The vehicle pointer holds the latest occupant and survives Vacate so
// windowed reports can read the most recent session. It is overwritten by the
// next Occupy; earlier sessions are not retained.
type Space struct {
	ID          int
	State       SpaceState
	Vehicle     *Vehicle
	Reservation *Reservation
}

// NewSpace builds a vacant space with a stable identifier.
func NewSpace(id int) *Space {
	return &Space{ID: id, State: SpaceStateVacant}
}

// Occupy places a vehicle in the space and stamps its entry time. A pending
// reservation is consumed: the hold is advisory and occupancy wins, and a
// space never carries both an occupant and a reservation.
func (s *Space) Occupy(vehicle *Vehicle, now time.Time) error {
	if s.State == SpaceStateOccupied {
		return apperrors.NewConflict(fmt.Sprintf("space %d is already occupied", s.ID), map[string]any{"space_id": s.ID})
	}
	entry := now
	vehicle.EntryTime = &entry
	vehicle.ExitTime = nil
	s.Vehicle = vehicle
	s.Reservation = nil
	s.State = SpaceStateOccupied
	return nil
}

// Vacate ends the current session, stamping the vehicle's exit time.
// Vacating a space that holds no vehicle is a no-op conflict.
func (s *Space) Vacate(now time.Time) error {
	if s.State != SpaceStateOccupied {
		return apperrors.NewConflict(fmt.Sprintf("space %d is already vacant", s.ID), map[string]any{"space_id": s.ID})
	}
	exit := now
	s.Vehicle.ExitTime = &exit
	s.State = SpaceStateVacant
	return nil
}

// Reserve attaches an advisory hold. Only an occupied space rejects the
// reservation; a space already holding a hold keeps the newer one.
func (s *Space) Reserve(reservation *Reservation) error {
	if s.State == SpaceStateOccupied {
		return apperrors.NewConflict(fmt.Sprintf("space %d is occupied and cannot be reserved", s.ID), map[string]any{"space_id": s.ID})
	}
	s.Reservation = reservation
	s.State = SpaceStateReserved
	return nil
}
