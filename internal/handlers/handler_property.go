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

// propertyHandler handles HTTP requests related to property listings.
type propertyHandler struct {
	propertyService  portssvc.PropertySvcFacade
	changeLogService portssvc.ChangeLogReaderSvc
}

func newPropertyHandler(ps portssvc.PropertySvcFacade, cs portssvc.ChangeLogReaderSvc) *propertyHandler {
	return &propertyHandler{
		propertyService:  ps,
		changeLogService: cs,
	}
}

// registerPropertyRoutes registers routes related to properties.
func registerPropertyRoutes(rg *gin.RouterGroup, propertyService portssvc.PropertySvcFacade, changeLogService portssvc.ChangeLogReaderSvc) {
	h := newPropertyHandler(propertyService, changeLogService)

	properties := rg.Group("/properties")
	{
		properties.POST("", h.createProperty)
		properties.GET("", h.listProperties)
		properties.GET("/:id", h.getProperty)
		properties.PUT("/:id", h.updateProperty)
		properties.DELETE("/:id", h.deleteProperty)
		properties.POST("/:id/stage", h.changePropertyStatus)
		properties.GET("/:id/history", h.getPropertyHistory)
	}
}

// createProperty godoc
// @Summary Create a property listing
// @Description Creates a new property in AVAILABLE status
// @Tags properties
// @Accept  json
// @Produce  json
// @Param   property body dto.CreatePropertyRequest true "Property details"
// @Success 201 {object} dto.PropertyResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Duplicate reference"
// @Security BearerAuth
// @Router /properties [post]
func (h *propertyHandler) createProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProperty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create property")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPropertyResponse(property))
}

// getProperty godoc
// @Summary Get a property by ID
// @Tags properties
// @Produce  json
// @Param   id path int true "Property ID"
// @Success 200 {object} dto.PropertyResponse
// @Failure 404 {object} map[string]string "Property not found"
// @Security BearerAuth
// @Router /properties/{id} [get]
func (h *propertyHandler) getProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	property, err := h.propertyService.GetPropertyByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve property")
		return
	}

	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// listProperties godoc
// @Summary List properties
// @Tags properties
// @Produce  json
// @Param   agentID query int false "Filter by assigned agent"
// @Param   status query string false "Filter by listing status"
// @Param   city query string false "Filter by city"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.PropertyResponse
// @Security BearerAuth
// @Router /properties [get]
func (h *propertyHandler) listProperties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPropertiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListProperties", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.PropertyFilter{
		AgentID: params.AgentID,
		City:    params.City,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}
	if params.Status != nil {
		status := domain.PropertyStatus(*params.Status)
		filter.Status = &status
	}

	properties, err := h.propertyService.ListProperties(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list properties")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPropertyResponse(properties))
}

// updateProperty godoc
// @Summary Update a property
// @Tags properties
// @Accept  json
// @Produce  json
// @Param   id path int true "Property ID"
// @Param   property body dto.UpdatePropertyRequest true "Fields to update"
// @Success 200 {object} dto.PropertyResponse
// @Failure 404 {object} map[string]string "Property not found"
// @Security BearerAuth
// @Router /properties/{id} [put]
func (h *propertyHandler) updateProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProperty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), id, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update property")
		return
	}

	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// changePropertyStatus godoc
// @Summary Change a property's listing status
// @Description Moves the property to the target status and appends a change record
// @Tags properties
// @Accept  json
// @Produce  json
// @Param   id path int true "Property ID"
// @Param   transition body dto.ChangeStageRequest true "Target status"
// @Success 200 {object} dto.PropertyResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 404 {object} map[string]string "Property not found"
// @Security BearerAuth
// @Router /properties/{id}/stage [post]
func (h *propertyHandler) changePropertyStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.ChangeStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangePropertyStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	property, err := h.propertyService.ChangePropertyStatus(c.Request.Context(), id, domain.PropertyStatus(req.Stage), actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to change property status")
		return
	}

	c.JSON(http.StatusOK, dto.ToPropertyResponse(property))
}

// getPropertyHistory godoc
// @Summary Get a property's change history
// @Description Returns every change record for the property, most recent first
// @Tags properties
// @Produce  json
// @Param   id path int true "Property ID"
// @Success 200 {array} dto.ChangeRecordResponse
// @Security BearerAuth
// @Router /properties/{id}/history [get]
func (h *propertyHandler) getPropertyHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	records, err := h.changeLogService.AuditTrail(c.Request.Context(), domain.EntityProperty, id)
	if err != nil {
		respondError(c, logger, err, "Failed to load property history")
		return
	}

	c.JSON(http.StatusOK, dto.ToListChangeRecordResponse(records))
}

// deleteProperty godoc
// @Summary Delete a property
// @Tags properties
// @Produce  json
// @Param   id path int true "Property ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Property not found"
// @Security BearerAuth
// @Router /properties/{id} [delete]
func (h *propertyHandler) deleteProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), id, actorID); err != nil {
		respondError(c, logger, err, "Failed to delete property")
		return
	}

	c.Status(http.StatusNoContent)
}
