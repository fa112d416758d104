package domain

import "time"

// UserRole distinguishes drivers from lot operators.
type UserRole string

const (
	RoleDriver   UserRole = "DRIVER"
	RoleOperator UserRole = "OPERATOR"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for registered account holders. The allocation
// core references users by ID and never owns their contact data.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
