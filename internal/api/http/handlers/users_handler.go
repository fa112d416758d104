package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/dto"
	"github.com/spec-kit/parking-service/internal/auth"
	"github.com/spec-kit/parking-service/internal/service"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// UsersHandler exposes registration, login and vehicle endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	user, token, exp, err := h.auth.RegisterDriver(c.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// AddVehicle handles POST /vehicles.
func (h *UsersHandler) AddVehicle(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.LicensePlate) == "" {
		return apperrors.NewValidationError("license_plate required", nil)
	}

	vehicle, err := h.auth.AddVehicle(c.Context(), principal.User.ID, req.LicensePlate)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.VehicleResponse{LicensePlate: vehicle.LicensePlate},
	})
}
