package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/parking-service/internal/auth"
	"github.com/spec-kit/parking-service/internal/config"
	"github.com/spec-kit/parking-service/internal/domain"
	"github.com/spec-kit/parking-service/internal/repository"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// AuthService coordinates registration and login flows for the registry.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// RegisterDriver creates a new driver account.
func (s *AuthService) RegisterDriver(ctx context.Context, name, email, phone, password string) (*domain.User, string, time.Time, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hash,
		Role:         domain.RoleDriver,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an account and returns a role-bearing token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// EnsureOperator bootstraps the operator account from configuration. A
// missing operator password leaves the deployment without report access,
// which is fine for development setups.
func (s *AuthService) EnsureOperator(ctx context.Context, cfg config.AuthConfig) error {
	if cfg.OperatorPassword == "" {
		s.logger.Warn("operator password not configured, skipping operator bootstrap")
		return nil
	}
	if _, err := s.users.GetByEmail(ctx, cfg.OperatorEmail); err == nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.OperatorPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	operator := &domain.User{
		Name:         "Lot Operator",
		Email:        cfg.OperatorEmail,
		PasswordHash: hash,
		Role:         domain.RoleOperator,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, operator); err != nil {
		return err
	}
	s.logger.Info("operator account bootstrapped", zap.String("email", operator.Email))
	return nil
}

// AddVehicle registers a vehicle under the given account.
func (s *AuthService) AddVehicle(ctx context.Context, userID, licensePlate string) (*domain.Vehicle, error) {
	return s.users.AddVehicle(ctx, userID, licensePlate)
}
