package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/dto"
	"github.com/spec-kit/parking-service/internal/auth"
	"github.com/spec-kit/parking-service/internal/service"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// ParkingHandler exposes the allocation operations.
type ParkingHandler struct {
	alloc *service.AllocationService
}

// NewParkingHandler constructs handler.
func NewParkingHandler(alloc *service.AllocationService) *ParkingHandler {
	return &ParkingHandler{alloc: alloc}
}

// Park handles POST /parking/park.
func (h *ParkingHandler) Park(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	spaceID, err := h.alloc.ParkVehicle(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"space_id": spaceID},
	})
}

// Vacate handles POST /parking/spaces/:id/vacate.
func (h *ParkingHandler) Vacate(c *fiber.Ctx) error {
	spaceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewInvalidID("space id must be an integer", nil)
	}

	if err := h.alloc.VacateSpace(c.Context(), spaceID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"space_id": spaceID, "state": "VACANT"},
	})
}

// Reserve handles POST /parking/reservations.
func (h *ParkingHandler) Reserve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	start, err := dto.ParseTimestamp(req.StartTime)
	if err != nil {
		return apperrors.NewValidationError("start_time must use YYYY-MM-DD HH:MM", nil)
	}
	end, err := dto.ParseTimestamp(req.EndTime)
	if err != nil {
		return apperrors.NewValidationError("end_time must use YYYY-MM-DD HH:MM", nil)
	}

	spaceID, reservation, err := h.alloc.MakeReservation(c.Context(), principal.User.ID, start, end)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.ReservationResponse{
			ReservationID: reservation.ID,
			SpaceID:       spaceID,
			StartTime:     dto.FormatTimestamp(reservation.StartTime),
			EndTime:       dto.FormatTimestamp(reservation.EndTime),
		},
	})
}

// Availability handles GET /parking/availability.
func (h *ParkingHandler) Availability(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"data": dto.AvailabilityResponse{
			Capacity:  h.alloc.Capacity(),
			Available: h.alloc.AvailableSpaces(),
			Occupied:  h.alloc.OccupiedSpaces(),
		},
	})
}

// Pay handles POST /parking/payments.
func (h *ParkingHandler) Pay(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.LicensePlate) == "" {
		return apperrors.NewValidationError("license_plate required", nil)
	}

	payment, err := h.alloc.ProcessPayment(c.Context(), req.LicensePlate)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.PaymentResponse{
			PaymentID: payment.ID,
			Amount:    payment.Amount,
			Timestamp: dto.FormatTimestamp(payment.Timestamp),
			Status:    string(payment.Status),
		},
	})
}
