package handlers

import (
	"errors"
	"log"

	domainerrors "voucherdesk/internal/errors"
	"voucherdesk/internal/services/agent"
	"voucherdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AgentHandler struct {
	agentService *agent.Service
}

func NewAgentHandler(agentService *agent.Service) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
	}
}

// ListAgents returns the roster with derived retailer counts.
func (h *AgentHandler) ListAgents(c *fiber.Ctx) error {
	agents, err := h.agentService.ListAgents(c.Context())
	if err != nil {
		log.Printf("failed to list agents: %v", err)
		return response.ServerError(c, "Failed to fetch agents")
	}
	return response.Success(c, "Agents retrieved", agents)
}

// CreateAgent creates an agent identity and profile. A failure between the
// two steps is reported distinctly: the identity already exists and must be
// reconciled by hand.
func (h *AgentHandler) CreateAgent(c *fiber.Ctx) error {
	var input agent.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	summary, err := h.agentService.CreateAgent(c.Context(), input)
	if err != nil {
		var invalid *agent.InvalidInputError
		if errors.As(err, &invalid) {
			return response.ValidationError(c, invalid.Fields)
		}

		var partial *agent.CreateError
		if errors.As(err, &partial) {
			log.Printf("agent creation failed: %v", partial)
			if errors.Is(partial.Err, domainerrors.ErrAgentExists) {
				return response.Conflict(c, domainerrors.ErrAgentExists.Message)
			}
			if partial.Phase == agent.PhaseProfile {
				return response.Error(c, fiber.StatusInternalServerError,
					"Agent identity was created but the profile failed; contact support")
			}
			return response.ServerError(c, "Failed to create agent")
		}

		log.Printf("agent creation failed: %v", err)
		return response.ServerError(c, "Failed to create agent")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Agent created",
		"data":    summary,
	})
}
