package handlers

import (
	"errors"

	domainerrors "voucherdesk/internal/errors"
	"voucherdesk/internal/services/retailerview"
	"voucherdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// TerminalHandler drives terminal mutations through the retailer detail
// controller, so the in-flight guard and post-mutation re-fetch hold across
// requests.
type TerminalHandler struct {
	registry *retailerview.Registry
}

func NewTerminalHandler(registry *retailerview.Registry) *TerminalHandler {
	return &TerminalHandler{
		registry: registry,
	}
}

// CreateTerminal submits the add-terminal form. An empty name never reaches
// the store and comes back as a form-level validation message.
func (h *TerminalHandler) CreateTerminal(c *fiber.Ctx) error {
	retailerID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid retailer id")
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	ctrl := h.registry.Get(retailerID)
	if err := ctrl.BeginAdd(input.Name); err != nil {
		return response.Conflict(c, err.Error())
	}

	if err := ctrl.SubmitAddTerminal(); err != nil {
		if errors.Is(err, domainerrors.ErrMutationInFlight) {
			return response.Conflict(c, err.Error())
		}
		return response.ServerError(c, "Failed to create terminal")
	}

	view := ctrl.View()
	if view.FormError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":     view.FormError,
			"terminals": view.Terminals,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Terminal created",
		"terminals": view.Terminals,
	})
}

// ToggleTerminal flips a terminal's status. A toggle failure is absorbed by
// the controller; the response carries whatever collection state remains.
func (h *TerminalHandler) ToggleTerminal(c *fiber.Ctx) error {
	retailerID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid retailer id")
	}
	terminalID, err := parseIDParam(c, "terminalId")
	if err != nil {
		return response.BadRequest(c, "Invalid terminal id")
	}

	ctrl := h.registry.Get(retailerID)
	if err := ctrl.ToggleTerminal(terminalID); err != nil {
		if errors.Is(err, domainerrors.ErrMutationInFlight) {
			return response.Conflict(c, err.Error())
		}
		return response.ServerError(c, "Failed to toggle terminal")
	}

	view := ctrl.View()
	return c.JSON(fiber.Map{
		"terminals": view.Terminals,
	})
}

// DeleteTerminal runs the confirm-delete flow: select the terminal, confirm,
// and on success the selection clears and the modal closes.
func (h *TerminalHandler) DeleteTerminal(c *fiber.Ctx) error {
	retailerID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid retailer id")
	}
	terminalID, err := parseIDParam(c, "terminalId")
	if err != nil {
		return response.BadRequest(c, "Invalid terminal id")
	}

	ctrl := h.registry.Get(retailerID)
	ctrl.RequestDelete(terminalID)
	if err := ctrl.ConfirmDelete(); err != nil {
		if errors.Is(err, domainerrors.ErrMutationInFlight) {
			return response.Conflict(c, err.Error())
		}
		return response.ServerError(c, "Failed to delete terminal")
	}

	view := ctrl.View()
	return c.JSON(fiber.Map{
		"terminals":         view.Terminals,
		"delete_modal_open": view.DeleteModalOpen,
	})
}
