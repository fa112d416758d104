package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/parking-service/internal/domain"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// UserRepository defines registry access for account holders and their
// vehicles. The allocation core treats both as opaque collaborator data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	AddVehicle(ctx context.Context, ownerID, licensePlate string) (*domain.Vehicle, error)
	VehiclesByOwner(ctx context.Context, ownerID string) ([]*domain.Vehicle, error)
	VehicleByPlate(ctx context.Context, licensePlate string) (*domain.Vehicle, error)
}

// memoryUserRepository keeps the registry in process memory; the service
// deliberately does not survive restarts. Vehicle pointers are shared with
// the allocation core so session timestamps stamped on occupancy are visible
// here as well.
type memoryUserRepository struct {
	mu       sync.RWMutex
	users    map[string]*domain.User
	byEmail  map[string]string
	vehicles map[string][]*domain.Vehicle
	byPlate  map[string]*domain.Vehicle
}

// NewUserRepository returns an in-memory implementation.
func NewUserRepository() UserRepository {
	return &memoryUserRepository{
		users:    make(map[string]*domain.User),
		byEmail:  make(map[string]string),
		vehicles: make(map[string][]*domain.Vehicle),
		byPlate:  make(map[string]*domain.Vehicle),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := normalizeEmail(user.Email)
	if _, exists := r.byEmail[email]; exists {
		return apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = user
	r.byEmail[email] = user.ID
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
	}
	return user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
	}
	return r.users[id], nil
}

func (r *memoryUserRepository) AddVehicle(_ context.Context, ownerID, licensePlate string) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[ownerID]; !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"user_id": ownerID})
	}
	plate := normalizePlate(licensePlate)
	if plate == "" {
		return nil, apperrors.NewValidationError("license plate required", nil)
	}
	if _, exists := r.byPlate[plate]; exists {
		return nil, apperrors.NewConflict("license plate already registered", map[string]any{"license_plate": licensePlate})
	}

	vehicle := &domain.Vehicle{LicensePlate: plate, OwnerID: ownerID}
	r.vehicles[ownerID] = append(r.vehicles[ownerID], vehicle)
	r.byPlate[plate] = vehicle
	return vehicle, nil
}

func (r *memoryUserRepository) VehiclesByOwner(_ context.Context, ownerID string) ([]*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[ownerID]; !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"user_id": ownerID})
	}
	owned := r.vehicles[ownerID]
	out := make([]*domain.Vehicle, len(owned))
	copy(out, owned)
	return out, nil
}

func (r *memoryUserRepository) VehicleByPlate(_ context.Context, licensePlate string) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vehicle, ok := r.byPlate[normalizePlate(licensePlate)]
	if !ok {
		return nil, apperrors.NewNotFound("vehicle", map[string]any{"license_plate": licensePlate})
	}
	return vehicle, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
