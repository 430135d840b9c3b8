package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/dto"
	"github.com/vistahomes/real_estate_crm/internal/middleware"
)

// agentHandler handles HTTP requests related to agent accounts.
type agentHandler struct {
	agentService portssvc.AgentSvcFacade
}

func newAgentHandler(as portssvc.AgentSvcFacade) *agentHandler {
	return &agentHandler{agentService: as}
}

// registerAgentRoutes registers routes related to agent accounts.
func registerAgentRoutes(rg *gin.RouterGroup, agentService portssvc.AgentSvcFacade) {
	h := newAgentHandler(agentService)

	agents := rg.Group("/agents")
	{
		agents.POST("", h.createAgent)
		agents.GET("", h.listAgents)
		agents.GET("/:id", h.getAgent)
		agents.PUT("/:id", h.updateAgent)
		agents.DELETE("/:id", h.deactivateAgent)
	}
}

// createAgent godoc
// @Summary Register a new agent account
// @Description Creates an agent account. Requires the ADMIN role.
// @Tags agents
// @Accept  json
// @Produce  json
// @Param   agent body dto.CreateAgentRequest true "Agent details"
// @Success 201 {object} dto.AgentResponse
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 409 {object} map[string]string "Email already registered"
// @Security BearerAuth
// @Router /agents [post]
func (h *agentHandler) createAgent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAgent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	agent, err := h.agentService.CreateAgent(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create agent")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAgentResponse(agent))
}

// getAgent godoc
// @Summary Get an agent by ID
// @Tags agents
// @Produce  json
// @Param   id path int true "Agent ID"
// @Success 200 {object} dto.AgentResponse
// @Failure 404 {object} map[string]string "Agent not found"
// @Security BearerAuth
// @Router /agents/{id} [get]
func (h *agentHandler) getAgent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	agent, err := h.agentService.GetAgentByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve agent")
		return
	}

	c.JSON(http.StatusOK, dto.ToAgentResponse(agent))
}

// listAgents godoc
// @Summary List agent accounts
// @Tags agents
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.AgentResponse
// @Security BearerAuth
// @Router /agents [get]
func (h *agentHandler) listAgents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAgents", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	agents, err := h.agentService.ListAgents(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list agents")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAgentResponse(agents))
}

// updateAgent godoc
// @Summary Update an agent account
// @Description Merges the provided fields over the stored agent. Requires the ADMIN role.
// @Tags agents
// @Accept  json
// @Produce  json
// @Param   id path int true "Agent ID"
// @Param   agent body dto.UpdateAgentRequest true "Fields to update"
// @Success 200 {object} dto.AgentResponse
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 404 {object} map[string]string "Agent not found"
// @Security BearerAuth
// @Router /agents/{id} [put]
func (h *agentHandler) updateAgent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAgent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	agent, err := h.agentService.UpdateAgent(c.Request.Context(), id, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update agent")
		return
	}

	c.JSON(http.StatusOK, dto.ToAgentResponse(agent))
}

// deactivateAgent godoc
// @Summary Deactivate an agent account
// @Description Marks the account inactive so it can no longer log in. Requires the ADMIN role.
// @Tags agents
// @Produce  json
// @Param   id path int true "Agent ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 404 {object} map[string]string "Agent not found"
// @Security BearerAuth
// @Router /agents/{id} [delete]
func (h *agentHandler) deactivateAgent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.agentService.DeactivateAgent(c.Request.Context(), id, actorID); err != nil {
		respondError(c, logger, err, "Failed to deactivate agent")
		return
	}

	c.Status(http.StatusNoContent)
}
