package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/dto"
	"github.com/vistahomes/real_estate_crm/internal/middleware"
)

// templateHandler handles HTTP requests related to message templates.
type templateHandler struct {
	templateService portssvc.TemplateSvcFacade
}

func newTemplateHandler(ts portssvc.TemplateSvcFacade) *templateHandler {
	return &templateHandler{templateService: ts}
}

// registerTemplateRoutes registers routes related to message templates.
func registerTemplateRoutes(rg *gin.RouterGroup, templateService portssvc.TemplateSvcFacade) {
	h := newTemplateHandler(templateService)

	templates := rg.Group("/templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("", h.listTemplates)
		templates.GET("/:id", h.getTemplate)
		templates.PUT("/:id", h.updateTemplate)
		templates.DELETE("/:id", h.deleteTemplate)
	}
}

// createTemplate godoc
// @Summary Create a message template
// @Tags templates
// @Accept  json
// @Produce  json
// @Param   template body dto.CreateTemplateRequest true "Template details"
// @Success 201 {object} dto.TemplateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /templates [post]
func (h *templateHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}

// getTemplate godoc
// @Summary Get a message template by ID
// @Tags templates
// @Produce  json
// @Param   id path int true "Template ID"
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Security BearerAuth
// @Router /templates/{id} [get]
func (h *templateHandler) getTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplateByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve template")
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

// listTemplates godoc
// @Summary List message templates
// @Tags templates
// @Produce  json
// @Param   activeOnly query bool false "Only return active templates"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.TemplateResponse
// @Security BearerAuth
// @Router /templates [get]
func (h *templateHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTemplatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTemplates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list templates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTemplateResponse(templates))
}

// updateTemplate godoc
// @Summary Update a message template
// @Tags templates
// @Accept  json
// @Produce  json
// @Param   id path int true "Template ID"
// @Param   template body dto.UpdateTemplateRequest true "Fields to update"
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Security BearerAuth
// @Router /templates/{id} [put]
func (h *templateHandler) updateTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), id, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponse(template))
}

// deleteTemplate godoc
// @Summary Delete a message template
// @Tags templates
// @Produce  json
// @Param   id path int true "Template ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Template not found"
// @Security BearerAuth
// @Router /templates/{id} [delete]
func (h *templateHandler) deleteTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), id, actorID); err != nil {
		respondError(c, logger, err, "Failed to delete template")
		return
	}

	c.Status(http.StatusNoContent)
}
