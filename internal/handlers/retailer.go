package handlers

import (
	"context"
	"log"
	"strconv"

	"voucherdesk/internal/repositories"
	"voucherdesk/internal/services/retailerview"
	"voucherdesk/internal/utils"
	"voucherdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type RetailerHandler struct {
	registry *retailerview.Registry
}

func NewRetailerHandler(registry *retailerview.Registry) *RetailerHandler {
	return &RetailerHandler{
		registry: registry,
	}
}

// ListRetailers returns every retailer with its commission group resolved.
func (h *RetailerHandler) ListRetailers(c *fiber.Ctx) error {
	retailers, err := repositories.ListRetailers()
	if err != nil {
		log.Printf("failed to list retailers: %v", err)
		return response.ServerError(c, "Failed to fetch retailers")
	}
	return response.Success(c, "Retailers retrieved", retailers)
}

// GetRetailerDetail loads the detail view for one retailer. The retailer
// lookup failing is fatal to the view; terminal and sales failures degrade
// to empty collections inside the controller.
func (h *RetailerHandler) GetRetailerDetail(c *fiber.Ctx) error {
	retailerID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid retailer id")
	}

	ctrl := h.registry.Get(retailerID)
	if err := ctrl.Load(); err != nil {
		log.Printf("retailer %d detail load failed: %v", retailerID, err)
	}
	h.applyStoredSection(c, ctrl)

	view := ctrl.View()
	switch view.Status {
	case retailerview.StateNotFound.String():
		return response.NotFound(c, "Retailer not found")
	case retailerview.StateError.String():
		return response.ServerError(c, "Failed to load retailer")
	}
	return c.JSON(view)
}

// SetExpandedSection selects the expanded accordion section and persists the
// choice per admin so it survives reloads.
func (h *RetailerHandler) SetExpandedSection(c *fiber.Ctx) error {
	retailerID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid retailer id")
	}

	var input struct {
		Section string `json:"section"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	section := retailerview.Section(input.Section)
	if !retailerview.ValidSection(section) {
		return response.BadRequest(c, "Unknown section")
	}

	ctrl := h.registry.Get(retailerID)
	ctrl.ExpandSection(section)

	if claims, err := utils.GetUserClaims(c); err == nil && repositories.CacheService != nil {
		if err := repositories.CacheService.SetExpandedSection(context.Background(), claims.UserID, input.Section); err != nil {
			log.Printf("failed to persist section preference for user %d: %v", claims.UserID, err)
		}
	}

	return response.Success(c, "Section expanded", fiber.Map{"expanded": input.Section})
}

// applyStoredSection restores the admin's last expanded section, if any.
func (h *RetailerHandler) applyStoredSection(c *fiber.Ctx, ctrl *retailerview.Controller) {
	claims, err := utils.GetUserClaims(c)
	if err != nil || repositories.CacheService == nil {
		return
	}
	if section, ok := repositories.CacheService.GetExpandedSection(context.Background(), claims.UserID); ok {
		ctrl.ExpandSection(retailerview.Section(section))
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
