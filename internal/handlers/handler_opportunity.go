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

// opportunityHandler handles HTTP requests related to the sales pipeline.
type opportunityHandler struct {
	opportunityService portssvc.OpportunitySvcFacade
	offerService       portssvc.OfferReaderSvc
	changeLogService   portssvc.ChangeLogReaderSvc
}

func newOpportunityHandler(os portssvc.OpportunitySvcFacade, ofs portssvc.OfferReaderSvc, cs portssvc.ChangeLogReaderSvc) *opportunityHandler {
	return &opportunityHandler{
		opportunityService: os,
		offerService:       ofs,
		changeLogService:   cs,
	}
}

// registerOpportunityRoutes registers routes related to opportunities.
func registerOpportunityRoutes(rg *gin.RouterGroup, opportunityService portssvc.OpportunitySvcFacade, offerService portssvc.OfferReaderSvc, changeLogService portssvc.ChangeLogReaderSvc) {
	h := newOpportunityHandler(opportunityService, offerService, changeLogService)

	opportunities := rg.Group("/opportunities")
	{
		opportunities.POST("", h.createOpportunity)
		opportunities.GET("", h.listOpportunities)
		opportunities.GET("/:id", h.getOpportunity)
		opportunities.PUT("/:id", h.updateOpportunity)
		opportunities.DELETE("/:id", h.deleteOpportunity)
		opportunities.POST("/:id/stage", h.changeOpportunityStage)
		opportunities.POST("/:id/move", h.moveOpportunity)
		opportunities.GET("/:id/history", h.getOpportunityHistory)
		opportunities.GET("/:id/offers", h.getOpportunityOffers)
	}
}

// createOpportunity godoc
// @Summary Open an opportunity
// @Description Creates a new opportunity in the NEW stage at the bottom of its board column
// @Tags opportunities
// @Accept  json
// @Produce  json
// @Param   opportunity body dto.CreateOpportunityRequest true "Opportunity details"
// @Success 201 {object} dto.OpportunityResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown prospect/property"
// @Security BearerAuth
// @Router /opportunities [post]
func (h *opportunityHandler) createOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOpportunity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	opportunity, err := h.opportunityService.CreateOpportunity(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create opportunity")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOpportunityResponse(opportunity))
}

// getOpportunity godoc
// @Summary Get an opportunity by ID
// @Tags opportunities
// @Produce  json
// @Param   id path int true "Opportunity ID"
// @Success 200 {object} dto.OpportunityResponse
// @Failure 404 {object} map[string]string "Opportunity not found"
// @Security BearerAuth
// @Router /opportunities/{id} [get]
func (h *opportunityHandler) getOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	opportunity, err := h.opportunityService.GetOpportunityByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve opportunity")
		return
	}

	c.JSON(http.StatusOK, dto.ToOpportunityResponse(opportunity))
}

// listOpportunities godoc
// @Summary List opportunities
// @Tags opportunities
// @Produce  json
// @Param   prospectID query int false "Filter by prospect"
// @Param   propertyID query int false "Filter by property"
// @Param   agentID query int false "Filter by assigned agent"
// @Param   stage query string false "Filter by pipeline stage"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.OpportunityResponse
// @Security BearerAuth
// @Router /opportunities [get]
func (h *opportunityHandler) listOpportunities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListOpportunitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListOpportunities", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.OpportunityFilter{
		ProspectID: params.ProspectID,
		PropertyID: params.PropertyID,
		AgentID:    params.AgentID,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if params.Stage != nil {
		stage := domain.OpportunityStage(*params.Stage)
		filter.Stage = &stage
	}

	opportunities, err := h.opportunityService.ListOpportunities(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list opportunities")
		return
	}

	c.JSON(http.StatusOK, dto.ToListOpportunityResponse(opportunities))
}

// updateOpportunity godoc
// @Summary Update an opportunity
// @Description Updates tracked fields; each changed field appends its own change record
// @Tags opportunities
// @Accept  json
// @Produce  json
// @Param   id path int true "Opportunity ID"
// @Param   opportunity body dto.UpdateOpportunityRequest true "Fields to update"
// @Success 200 {object} dto.OpportunityResponse
// @Failure 404 {object} map[string]string "Opportunity not found"
// @Security BearerAuth
// @Router /opportunities/{id} [put]
func (h *opportunityHandler) updateOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOpportunity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	opportunity, err := h.opportunityService.UpdateOpportunity(c.Request.Context(), id, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update opportunity")
		return
	}

	c.JSON(http.StatusOK, dto.ToOpportunityResponse(opportunity))
}

// changeOpportunityStage godoc
// @Summary Change an opportunity's pipeline stage
// @Description Moves the card to the bottom of the target column and appends a change record, even for a no-op transition
// @Tags opportunities
// @Accept  json
// @Produce  json
// @Param   id path int true "Opportunity ID"
// @Param   transition body dto.ChangeStageRequest true "Target stage"
// @Success 200 {object} dto.OpportunityResponse
// @Failure 400 {object} map[string]string "Unknown stage"
// @Failure 404 {object} map[string]string "Opportunity not found"
// @Security BearerAuth
// @Router /opportunities/{id}/stage [post]
func (h *opportunityHandler) changeOpportunityStage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.ChangeStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeOpportunityStage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	opportunity, err := h.opportunityService.ChangeOpportunityStage(c.Request.Context(), id, domain.OpportunityStage(req.Stage), actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to change opportunity stage")
		return
	}

	c.JSON(http.StatusOK, dto.ToOpportunityResponse(opportunity))
}

// moveOpportunity godoc
// @Summary Move an opportunity on the kanban board
// @Description Relocates the card to a stage column and position; crossing columns appends a change record, repositioning within a column does not
// @Tags opportunities
// @Accept  json
// @Produce  json
// @Param   id path int true "Opportunity ID"
// @Param   move body dto.MoveOpportunityRequest true "Target column and position"
// @Success 200 {object} dto.OpportunityResponse
// @Failure 400 {object} map[string]string "Unknown stage or negative position"
// @Failure 404 {object} map[string]string "Opportunity not found"
// @Security BearerAuth
// @Router /opportunities/{id}/move [post]
func (h *opportunityHandler) moveOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.MoveOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MoveOpportunity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	opportunity, err := h.opportunityService.MoveOpportunity(c.Request.Context(), id, req.Stage, req.Position, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to move opportunity")
		return
	}

	c.JSON(http.StatusOK, dto.ToOpportunityResponse(opportunity))
}

// getOpportunityHistory godoc
// @Summary Get an opportunity's change history
// @Tags opportunities
// @Produce  json
// @Param   id path int true "Opportunity ID"
// @Success 200 {array} dto.ChangeRecordResponse
// @Security BearerAuth
// @Router /opportunities/{id}/history [get]
func (h *opportunityHandler) getOpportunityHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	records, err := h.changeLogService.AuditTrail(c.Request.Context(), domain.EntityOpportunity, id)
	if err != nil {
		respondError(c, logger, err, "Failed to load opportunity history")
		return
	}

	c.JSON(http.StatusOK, dto.ToListChangeRecordResponse(records))
}

// getOpportunityOffers godoc
// @Summary List the offers made within an opportunity
// @Tags opportunities
// @Produce  json
// @Param   id path int true "Opportunity ID"
// @Success 200 {array} dto.OfferResponse
// @Security BearerAuth
// @Router /opportunities/{id}/offers [get]
func (h *opportunityHandler) getOpportunityOffers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	offers, err := h.offerService.OffersByOpportunity(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to list opportunity offers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListOfferResponse(offers))
}

// deleteOpportunity godoc
// @Summary Delete an opportunity
// @Tags opportunities
// @Produce  json
// @Param   id path int true "Opportunity ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Opportunity not found"
// @Security BearerAuth
// @Router /opportunities/{id} [delete]
func (h *opportunityHandler) deleteOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.opportunityService.DeleteOpportunity(c.Request.Context(), id, actorID); err != nil {
		respondError(c, logger, err, "Failed to delete opportunity")
		return
	}

	c.Status(http.StatusNoContent)
}
