package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/dto"
	"github.com/vistahomes/real_estate_crm/internal/middleware"
)

// prospectHandler handles HTTP requests related to prospects.
type prospectHandler struct {
	prospectService  portssvc.ProspectSvcFacade
	changeLogService portssvc.ChangeLogReaderSvc
}

func newProspectHandler(ps portssvc.ProspectSvcFacade, cs portssvc.ChangeLogReaderSvc) *prospectHandler {
	return &prospectHandler{
		prospectService:  ps,
		changeLogService: cs,
	}
}

// registerProspectRoutes registers routes related to prospects.
func registerProspectRoutes(rg *gin.RouterGroup, prospectService portssvc.ProspectSvcFacade, changeLogService portssvc.ChangeLogReaderSvc) {
	h := newProspectHandler(prospectService, changeLogService)

	prospects := rg.Group("/prospects")
	{
		prospects.POST("", h.createProspect)
		prospects.GET("", h.listProspects)
		prospects.GET("/:id", h.getProspect)
		prospects.PUT("/:id", h.updateProspect)
		prospects.DELETE("/:id", h.deleteProspect)
		prospects.POST("/:id/stage", h.changeProspectStatus)
		prospects.GET("/:id/history", h.getProspectHistory)
	}
}

// createProspect godoc
// @Summary Register a prospect
// @Description Creates a new prospect in NEW status
// @Tags prospects
// @Accept  json
// @Produce  json
// @Param   prospect body dto.CreateProspectRequest true "Prospect details"
// @Success 201 {object} dto.ProspectResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /prospects [post]
func (h *prospectHandler) createProspect(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProspect", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	prospect, err := h.prospectService.CreateProspect(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create prospect")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProspectResponse(prospect))
}

// getProspect godoc
// @Summary Get a prospect by ID
// @Tags prospects
// @Produce  json
// @Param   id path int true "Prospect ID"
// @Success 200 {object} dto.ProspectResponse
// @Failure 404 {object} map[string]string "Prospect not found"
// @Security BearerAuth
// @Router /prospects/{id} [get]
func (h *prospectHandler) getProspect(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	prospect, err := h.prospectService.GetProspectByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve prospect")
		return
	}

	c.JSON(http.StatusOK, dto.ToProspectResponse(prospect))
}

// listProspects godoc
// @Summary List prospects
// @Tags prospects
// @Produce  json
// @Param   agentID query int false "Filter by assigned agent"
// @Param   status query string false "Filter by qualification status"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.ProspectResponse
// @Security BearerAuth
// @Router /prospects [get]
func (h *prospectHandler) listProspects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListProspectsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListProspects", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.ProspectFilter{
		AgentID: params.AgentID,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}
	if params.Status != nil {
		status := domain.ProspectStatus(*params.Status)
		filter.Status = &status
	}

	prospects, err := h.prospectService.ListProspects(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list prospects")
		return
	}

	c.JSON(http.StatusOK, dto.ToListProspectResponse(prospects))
}

// updateProspect godoc
// @Summary Update a prospect
// @Tags prospects
// @Accept  json
// @Produce  json
// @Param   id path int true "Prospect ID"
// @Param   prospect body dto.UpdateProspectRequest true "Fields to update"
// @Success 200 {object} dto.ProspectResponse
// @Failure 404 {object} map[string]string "Prospect not found"
// @Security BearerAuth
// @Router /prospects/{id} [put]
func (h *prospectHandler) updateProspect(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProspect", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	prospect, err := h.prospectService.UpdateProspect(c.Request.Context(), id, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update prospect")
		return
	}

	c.JSON(http.StatusOK, dto.ToProspectResponse(prospect))
}

// changeProspectStatus godoc
// @Summary Change a prospect's qualification status
// @Description Moves the prospect to the target status and appends a change record
// @Tags prospects
// @Accept  json
// @Produce  json
// @Param   id path int true "Prospect ID"
// @Param   transition body dto.ChangeStageRequest true "Target status"
// @Success 200 {object} dto.ProspectResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 404 {object} map[string]string "Prospect not found"
// @Security BearerAuth
// @Router /prospects/{id}/stage [post]
func (h *prospectHandler) changeProspectStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.ChangeStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeProspectStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	prospect, err := h.prospectService.ChangeProspectStatus(c.Request.Context(), id, domain.ProspectStatus(req.Stage), actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to change prospect status")
		return
	}

	c.JSON(http.StatusOK, dto.ToProspectResponse(prospect))
}

// getProspectHistory godoc
// @Summary Get a prospect's change history
// @Tags prospects
// @Produce  json
// @Param   id path int true "Prospect ID"
// @Success 200 {array} dto.ChangeRecordResponse
// @Security BearerAuth
// @Router /prospects/{id}/history [get]
func (h *prospectHandler) getProspectHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	records, err := h.changeLogService.AuditTrail(c.Request.Context(), domain.EntityProspect, id)
	if err != nil {
		respondError(c, logger, err, "Failed to load prospect history")
		return
	}

	c.JSON(http.StatusOK, dto.ToListChangeRecordResponse(records))
}

// deleteProspect godoc
// @Summary Delete a prospect
// @Tags prospects
// @Produce  json
// @Param   id path int true "Prospect ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Prospect not found"
// @Security BearerAuth
// @Router /prospects/{id} [delete]
func (h *prospectHandler) deleteProspect(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.prospectService.DeleteProspect(c.Request.Context(), id, actorID); err != nil {
		respondError(c, logger, err, "Failed to delete prospect")
		return
	}

	c.Status(http.StatusNoContent)
}
