package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/parking-service/internal/domain"
	"github.com/spec-kit/parking-service/internal/events"
	"github.com/spec-kit/parking-service/internal/observability"
	"github.com/spec-kit/parking-service/internal/pricing"
	"github.com/spec-kit/parking-service/internal/repository"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// AllocationService owns the fixed pool of parking spaces. Every
// scan-then-mutate sequence runs under a single mutex so no two callers can
// allocate the same space. The pool is created once at construction and
// never resized.
type AllocationService struct {
	mu            sync.Mutex
	spaces        []*domain.Space
	capacity      int
	occupiedCount int

	users      repository.UserRepository
	pricing    *pricing.Engine
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// AllocationDependencies bundles collaborators for the allocation service.
type AllocationDependencies struct {
	UserRepo   repository.UserRepository
	Pricing    *pricing.Engine
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// SessionSnapshot is a point-in-time copy of a space's latest session,
// taken under the allocation lock for the report engine.
type SessionSnapshot struct {
	SpaceID      int
	LicensePlate string
	EntryTime    *time.Time
	ExitTime     *time.Time
}

// NewAllocationService builds the space pool with identifiers 1..capacity.
func NewAllocationService(capacity int, deps AllocationDependencies) *AllocationService {
	if capacity < 0 {
		capacity = 0
	}
	spaces := make([]*domain.Space, capacity)
	for i := range spaces {
		spaces[i] = domain.NewSpace(i + 1)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationService{
		spaces:     spaces,
		capacity:   capacity,
		users:      deps.UserRepo,
		pricing:    deps.Pricing,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		now:        now,
	}
}

// ParkVehicle occupies the lowest-numbered non-occupied space with the
// user's first registered vehicle. A reserved space is still selectable; its
// advisory hold is consumed. Returns the occupied space identifier.
func (s *AllocationService) ParkVehicle(ctx context.Context, userID string) (int, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.metrics.RecordOperation("park", false)
		return 0, err
	}
	vehicles, err := s.users.VehiclesByOwner(ctx, user.ID)
	if err != nil {
		s.metrics.RecordOperation("park", false)
		return 0, err
	}
	if len(vehicles) == 0 {
		s.metrics.RecordOperation("park", false)
		return 0, apperrors.NewNotFound("vehicle", map[string]any{"user_id": user.ID})
	}
	vehicle := vehicles[0]

	s.mu.Lock()
	if vehicle.InOpenSession() {
		s.mu.Unlock()
		s.metrics.RecordOperation("park", false)
		return 0, apperrors.NewConflict("vehicle is already parked", map[string]any{"license_plate": vehicle.LicensePlate})
	}

	var occupied *domain.Space
	for _, space := range s.spaces {
		if space.State != domain.SpaceStateOccupied {
			occupied = space
			break
		}
	}
	if occupied == nil {
		s.mu.Unlock()
		s.metrics.RecordOperation("park", false)
		return 0, apperrors.NewExhausted("parking lot is full", map[string]any{"capacity": s.capacity})
	}

	entry := s.now()
	if err := occupied.Occupy(vehicle, entry); err != nil {
		s.mu.Unlock()
		s.metrics.RecordOperation("park", false)
		return 0, err
	}
	s.occupiedCount++
	spaceID := occupied.ID
	s.mu.Unlock()

	s.metrics.RecordOperation("park", true)
	s.logger.Info("space occupied",
		zap.Int("space_id", spaceID),
		zap.String("license_plate", vehicle.LicensePlate))
	s.publish(ctx, events.Event{
		Type:    events.EventSpaceOccupied,
		SpaceID: spaceID,
		UserID:  user.ID,
		Payload: events.SpaceOccupiedPayload{
			LicensePlate: vehicle.LicensePlate,
			EntryTime:    entry,
		},
	})
	return spaceID, nil
}

// VacateSpace ends the session in the identified space. Vacating an already
// vacant space is a no-op conflict and never touches the occupancy counter.
func (s *AllocationService) VacateSpace(ctx context.Context, spaceID int) error {
	if spaceID < 1 || spaceID > s.capacity {
		s.metrics.RecordOperation("vacate", false)
		return apperrors.NewInvalidID("space id out of range", map[string]any{"space_id": spaceID, "capacity": s.capacity})
	}

	s.mu.Lock()
	space := s.spaces[spaceID-1]
	exit := s.now()
	if err := space.Vacate(exit); err != nil {
		s.mu.Unlock()
		s.metrics.RecordOperation("vacate", false)
		return err
	}
	s.occupiedCount--
	plate := space.Vehicle.LicensePlate
	s.mu.Unlock()

	s.metrics.RecordOperation("vacate", true)
	s.logger.Info("space vacated",
		zap.Int("space_id", spaceID),
		zap.String("license_plate", plate))
	s.publish(ctx, events.Event{
		Type:    events.EventSpaceVacated,
		SpaceID: spaceID,
		Payload: events.SpaceVacatedPayload{
			LicensePlate: plate,
			ExitTime:     exit,
		},
	})
	return nil
}

// MakeReservation places an advisory hold on the lowest-numbered vacant
// space for the given window. Overlap with other reservations is not
// checked: every hold is soft.
func (s *AllocationService) MakeReservation(ctx context.Context, userID string, start, end time.Time) (int, *domain.Reservation, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.metrics.RecordOperation("reserve", false)
		return 0, nil, err
	}
	if !end.After(start) {
		s.metrics.RecordOperation("reserve", false)
		return 0, nil, apperrors.NewInvalidRange("reservation end must be after start", map[string]any{
			"start_time": start,
			"end_time":   end,
		})
	}

	reservation := &domain.Reservation{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		StartTime: start,
		EndTime:   end,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	var reserved *domain.Space
	for _, space := range s.spaces {
		if space.State == domain.SpaceStateVacant {
			reserved = space
			break
		}
	}
	if reserved == nil {
		s.mu.Unlock()
		s.metrics.RecordOperation("reserve", false)
		return 0, nil, apperrors.NewExhausted("no available spaces for reservation", map[string]any{"capacity": s.capacity})
	}
	if err := reserved.Reserve(reservation); err != nil {
		s.mu.Unlock()
		s.metrics.RecordOperation("reserve", false)
		return 0, nil, err
	}
	spaceID := reserved.ID
	s.mu.Unlock()

	s.metrics.RecordOperation("reserve", true)
	s.logger.Info("space reserved",
		zap.Int("space_id", spaceID),
		zap.String("user_id", user.ID))
	s.publish(ctx, events.Event{
		Type:    events.EventSpaceReserved,
		SpaceID: spaceID,
		UserID:  user.ID,
		Payload: events.SpaceReservedPayload{
			ReservationID: reservation.ID,
			StartTime:     start,
			EndTime:       end,
		},
	})
	return spaceID, reservation, nil
}

// ProcessPayment settles the most recent completed session of the vehicle.
// The session timestamps are left untouched, so calling again produces
// another identical payment; callers settle at most once per session.
func (s *AllocationService) ProcessPayment(ctx context.Context, licensePlate string) (*domain.Payment, error) {
	vehicle, err := s.users.VehicleByPlate(ctx, licensePlate)
	if err != nil {
		s.metrics.RecordOperation("payment", false)
		return nil, err
	}

	s.mu.Lock()
	if vehicle.EntryTime == nil || vehicle.ExitTime == nil {
		s.mu.Unlock()
		s.metrics.RecordOperation("payment", false)
		return nil, apperrors.NewConflict("no completed session to settle", map[string]any{"license_plate": vehicle.LicensePlate})
	}
	entry := *vehicle.EntryTime
	exit := *vehicle.ExitTime
	s.mu.Unlock()

	payment := &domain.Payment{
		ID:        uuid.NewString(),
		Amount:    s.pricing.Fee(entry, exit),
		Timestamp: s.now(),
		Status:    domain.PaymentStatusCompleted,
	}

	s.metrics.RecordOperation("payment", true)
	s.logger.Info("payment processed",
		zap.String("license_plate", vehicle.LicensePlate),
		zap.Float64("amount", payment.Amount))
	s.publish(ctx, events.Event{
		Type:   events.EventPaymentProcessed,
		UserID: vehicle.OwnerID,
		Payload: events.PaymentProcessedPayload{
			PaymentID:    payment.ID,
			LicensePlate: vehicle.LicensePlate,
			Amount:       payment.Amount,
			Status:       string(payment.Status),
		},
	})
	return payment, nil
}

// AvailableSpaces reports how many spaces hold no vehicle.
func (s *AllocationService) AvailableSpaces() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity - s.occupiedCount
}

// OccupiedSpaces reports how many spaces currently hold a vehicle.
func (s *AllocationService) OccupiedSpaces() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.occupiedCount
}

// Capacity reports the fixed pool size.
func (s *AllocationService) Capacity() int {
	return s.capacity
}

// SessionSnapshots copies the latest session of every space that has ever
// held a vehicle. Only the most recent occupant per space is visible;
// earlier sessions are not retained by the pool.
func (s *AllocationService) SessionSnapshots() []SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots := make([]SessionSnapshot, 0, len(s.spaces))
	for _, space := range s.spaces {
		if space.Vehicle == nil {
			continue
		}
		snapshot := SessionSnapshot{
			SpaceID:      space.ID,
			LicensePlate: space.Vehicle.LicensePlate,
		}
		if space.Vehicle.EntryTime != nil {
			entry := *space.Vehicle.EntryTime
			snapshot.EntryTime = &entry
		}
		if space.Vehicle.ExitTime != nil {
			exit := *space.Vehicle.ExitTime
			snapshot.ExitTime = &exit
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

// PricingEngine exposes the fee engine to the report service.
func (s *AllocationService) PricingEngine() *pricing.Engine {
	return s.pricing
}

func (s *AllocationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
