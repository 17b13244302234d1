package handlers

import (
	"errors"

	"voucherdesk/internal/models"
	"voucherdesk/internal/services/dashboard"
	"voucherdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	controller *dashboard.Controller
}

func NewDashboardHandler(controller *dashboard.Controller) *DashboardHandler {
	return &DashboardHandler{
		controller: controller,
	}
}

// GetDashboard runs a dashboard load cycle and returns the derived snapshot.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	claims, _ := c.Locals("claims").(*models.UserClaims)

	snap, err := h.controller.Load(c.Context(), claims)
	if err != nil {
		switch {
		case errors.Is(err, dashboard.ErrNotAuthenticated):
			return response.Unauthorized(c)
		case errors.Is(err, dashboard.ErrAccessDenied):
			return response.Error(c, fiber.StatusForbidden, "Access denied")
		default:
			return response.ServerError(c, "Failed to load dashboard")
		}
	}

	return c.JSON(fiber.Map{
		"state": h.controller.State().String(),
		"data":  snap,
	})
}
