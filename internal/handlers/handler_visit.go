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

// visitHandler handles HTTP requests related to property visits.
type visitHandler struct {
	visitService     portssvc.VisitSvcFacade
	changeLogService portssvc.ChangeLogReaderSvc
}

func newVisitHandler(vs portssvc.VisitSvcFacade, cs portssvc.ChangeLogReaderSvc) *visitHandler {
	return &visitHandler{
		visitService:     vs,
		changeLogService: cs,
	}
}

// registerVisitRoutes registers routes related to visits.
func registerVisitRoutes(rg *gin.RouterGroup, visitService portssvc.VisitSvcFacade, changeLogService portssvc.ChangeLogReaderSvc) {
	h := newVisitHandler(visitService, changeLogService)

	visits := rg.Group("/visits")
	{
		visits.POST("", h.scheduleVisit)
		visits.GET("", h.listVisits)
		visits.GET("/:id", h.getVisit)
		visits.PUT("/:id", h.updateVisit)
		visits.DELETE("/:id", h.deleteVisit)
		visits.POST("/:id/stage", h.changeVisitStatus)
		visits.GET("/:id/history", h.getVisitHistory)
	}
}

// scheduleVisit godoc
// @Summary Schedule a property visit
// @Description Creates a new visit in SCHEDULED status for an opportunity
// @Tags visits
// @Accept  json
// @Produce  json
// @Param   visit body dto.ScheduleVisitRequest true "Visit details"
// @Success 201 {object} dto.VisitResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown opportunity"
// @Security BearerAuth
// @Router /visits [post]
func (h *visitHandler) scheduleVisit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ScheduleVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ScheduleVisit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	visit, err := h.visitService.ScheduleVisit(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to schedule visit")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVisitResponse(visit))
}

// getVisit godoc
// @Summary Get a visit by ID
// @Tags visits
// @Produce  json
// @Param   id path int true "Visit ID"
// @Success 200 {object} dto.VisitResponse
// @Failure 404 {object} map[string]string "Visit not found"
// @Security BearerAuth
// @Router /visits/{id} [get]
func (h *visitHandler) getVisit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	visit, err := h.visitService.GetVisitByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve visit")
		return
	}

	c.JSON(http.StatusOK, dto.ToVisitResponse(visit))
}

// listVisits godoc
// @Summary List visits
// @Tags visits
// @Produce  json
// @Param   opportunityID query int false "Filter by opportunity"
// @Param   propertyID query int false "Filter by property"
// @Param   agentID query int false "Filter by assigned agent"
// @Param   status query string false "Filter by scheduling status"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.VisitResponse
// @Security BearerAuth
// @Router /visits [get]
func (h *visitHandler) listVisits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListVisitsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListVisits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.VisitFilter{
		OpportunityID: params.OpportunityID,
		PropertyID:    params.PropertyID,
		AgentID:       params.AgentID,
		Limit:         params.Limit,
		Offset:        params.Offset,
	}
	if params.Status != nil {
		status := domain.VisitStatus(*params.Status)
		filter.Status = &status
	}

	visits, err := h.visitService.ListVisits(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list visits")
		return
	}

	c.JSON(http.StatusOK, dto.ToListVisitResponse(visits))
}

// updateVisit godoc
// @Summary Update a visit
// @Tags visits
// @Accept  json
// @Produce  json
// @Param   id path int true "Visit ID"
// @Param   visit body dto.UpdateVisitRequest true "Fields to update"
// @Success 200 {object} dto.VisitResponse
// @Failure 404 {object} map[string]string "Visit not found"
// @Security BearerAuth
// @Router /visits/{id} [put]
func (h *visitHandler) updateVisit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVisit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	visit, err := h.visitService.UpdateVisit(c.Request.Context(), id, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update visit")
		return
	}

	c.JSON(http.StatusOK, dto.ToVisitResponse(visit))
}

// changeVisitStatus godoc
// @Summary Change a visit's scheduling status
// @Description Moves the visit to the target status and appends a change record, even for a no-op transition
// @Tags visits
// @Accept  json
// @Produce  json
// @Param   id path int true "Visit ID"
// @Param   transition body dto.ChangeStageRequest true "Target status"
// @Success 200 {object} dto.VisitResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 404 {object} map[string]string "Visit not found"
// @Security BearerAuth
// @Router /visits/{id}/stage [post]
func (h *visitHandler) changeVisitStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.ChangeStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeVisitStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	visit, err := h.visitService.ChangeVisitStatus(c.Request.Context(), id, domain.VisitStatus(req.Stage), actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to change visit status")
		return
	}

	c.JSON(http.StatusOK, dto.ToVisitResponse(visit))
}

// getVisitHistory godoc
// @Summary Get a visit's change history
// @Tags visits
// @Produce  json
// @Param   id path int true "Visit ID"
// @Success 200 {array} dto.ChangeRecordResponse
// @Security BearerAuth
// @Router /visits/{id}/history [get]
func (h *visitHandler) getVisitHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	records, err := h.changeLogService.AuditTrail(c.Request.Context(), domain.EntityVisit, id)
	if err != nil {
		respondError(c, logger, err, "Failed to load visit history")
		return
	}

	c.JSON(http.StatusOK, dto.ToListChangeRecordResponse(records))
}

// deleteVisit godoc
// @Summary Delete a visit
// @Tags visits
// @Produce  json
// @Param   id path int true "Visit ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Visit not found"
// @Security BearerAuth
// @Router /visits/{id} [delete]
func (h *visitHandler) deleteVisit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.visitService.DeleteVisit(c.Request.Context(), id, actorID); err != nil {
		respondError(c, logger, err, "Failed to delete visit")
		return
	}

	c.Status(http.StatusNoContent)
}
