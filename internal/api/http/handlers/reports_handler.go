package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/dto"
	"github.com/spec-kit/parking-service/internal/service"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// ReportsHandler exposes the windowed occupancy and revenue reports.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Occupancy handles GET /reports/occupancy?start=...&end=...
func (h *ReportsHandler) Occupancy(c *fiber.Ctx) error {
	start, end, err := parseWindow(c)
	if err != nil {
		return err
	}

	entries := make([]dto.OccupancyEntry, 0)
	for record := range h.reports.OccupancyReport(start, end) {
		entries = append(entries, dto.OccupancyEntry{
			SpaceID:      record.SpaceID,
			LicensePlate: record.LicensePlate,
			EntryTime:    dto.FormatTimestamp(record.EntryTime),
		})
	}
	return c.JSON(fiber.Map{"data": entries})
}

// Revenue handles GET /reports/revenue?start=...&end=...
func (h *ReportsHandler) Revenue(c *fiber.Ctx) error {
	start, end, err := parseWindow(c)
	if err != nil {
		return err
	}

	total := h.reports.RevenueReport(start, end)
	return c.JSON(fiber.Map{"data": dto.RevenueResponse{
		StartTime:    dto.FormatTimestamp(start),
		EndTime:      dto.FormatTimestamp(end),
		TotalRevenue: total,
	}})
}

func parseWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := dto.ParseTimestamp(c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("start must use YYYY-MM-DD HH:MM", nil)
	}
	end, err := dto.ParseTimestamp(c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("end must use YYYY-MM-DD HH:MM", nil)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, apperrors.NewInvalidRange("end must be after start", nil)
	}
	return start, end, nil
}
