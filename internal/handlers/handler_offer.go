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

// offerHandler handles HTTP requests related to offers.
type offerHandler struct {
	offerService     portssvc.OfferSvcFacade
	changeLogService portssvc.ChangeLogReaderSvc
}

func newOfferHandler(os portssvc.OfferSvcFacade, cs portssvc.ChangeLogReaderSvc) *offerHandler {
	return &offerHandler{
		offerService:     os,
		changeLogService: cs,
	}
}

// registerOfferRoutes registers routes related to offers.
func registerOfferRoutes(rg *gin.RouterGroup, offerService portssvc.OfferSvcFacade, changeLogService portssvc.ChangeLogReaderSvc) {
	h := newOfferHandler(offerService, changeLogService)

	offers := rg.Group("/offers")
	{
		offers.POST("", h.createOffer)
		offers.GET("", h.listOffers)
		offers.GET("/:id", h.getOffer)
		offers.PUT("/:id", h.updateOffer)
		offers.DELETE("/:id", h.deleteOffer)
		offers.POST("/:id/stage", h.changeOfferStage)
		offers.GET("/:id/history", h.getOfferHistory)
	}
}

// createOffer godoc
// @Summary Register an offer
// @Description Creates a new offer in the DRAFT stage within an opportunity
// @Tags offers
// @Accept  json
// @Produce  json
// @Param   offer body dto.CreateOfferRequest true "Offer details"
// @Success 201 {object} dto.OfferResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown opportunity"
// @Security BearerAuth
// @Router /offers [post]
func (h *offerHandler) createOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOffer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	offer, err := h.offerService.CreateOffer(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create offer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOfferResponse(offer))
}

// getOffer godoc
// @Summary Get an offer by ID
// @Tags offers
// @Produce  json
// @Param   id path int true "Offer ID"
// @Success 200 {object} dto.OfferResponse
// @Failure 404 {object} map[string]string "Offer not found"
// @Security BearerAuth
// @Router /offers/{id} [get]
func (h *offerHandler) getOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	offer, err := h.offerService.GetOfferByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve offer")
		return
	}

	c.JSON(http.StatusOK, dto.ToOfferResponse(offer))
}

// listOffers godoc
// @Summary List offers
// @Tags offers
// @Produce  json
// @Param   opportunityID query int false "Filter by opportunity"
// @Param   agentID query int false "Filter by assigned agent"
// @Param   stage query string false "Filter by negotiation stage"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.OfferResponse
// @Security BearerAuth
// @Router /offers [get]
func (h *offerHandler) listOffers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListOffersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListOffers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := portsrepo.OfferFilter{
		OpportunityID: params.OpportunityID,
		AgentID:       params.AgentID,
		Limit:         params.Limit,
		Offset:        params.Offset,
	}
	if params.Stage != nil {
		stage := domain.OfferStage(*params.Stage)
		filter.Stage = &stage
	}

	offers, err := h.offerService.ListOffers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list offers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListOfferResponse(offers))
}

// updateOffer godoc
// @Summary Update an offer's tracked fields
// @Description Each changed field (amount, commission, observation, expiration date, assignment) appends its own change record
// @Tags offers
// @Accept  json
// @Produce  json
// @Param   id path int true "Offer ID"
// @Param   offer body dto.UpdateOfferRequest true "Fields to update"
// @Success 200 {object} dto.OfferResponse
// @Failure 404 {object} map[string]string "Offer not found"
// @Security BearerAuth
// @Router /offers/{id} [put]
func (h *offerHandler) updateOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOffer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	offer, err := h.offerService.UpdateOffer(c.Request.Context(), id, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update offer")
		return
	}

	c.JSON(http.StatusOK, dto.ToOfferResponse(offer))
}

// changeOfferStage godoc
// @Summary Change an offer's negotiation stage
// @Description Moves the offer to the target stage and appends a change record, even for a no-op transition
// @Tags offers
// @Accept  json
// @Produce  json
// @Param   id path int true "Offer ID"
// @Param   transition body dto.ChangeStageRequest true "Target stage"
// @Success 200 {object} dto.OfferResponse
// @Failure 400 {object} map[string]string "Unknown stage"
// @Failure 404 {object} map[string]string "Offer not found"
// @Security BearerAuth
// @Router /offers/{id}/stage [post]
func (h *offerHandler) changeOfferStage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}
	var req dto.ChangeStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeOfferStage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	offer, err := h.offerService.ChangeOfferStage(c.Request.Context(), id, domain.OfferStage(req.Stage), actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to change offer stage")
		return
	}

	c.JSON(http.StatusOK, dto.ToOfferResponse(offer))
}

// getOfferHistory godoc
// @Summary Get an offer's change history
// @Description Returns every change record for the offer, most recent first
// @Tags offers
// @Produce  json
// @Param   id path int true "Offer ID"
// @Success 200 {array} dto.ChangeRecordResponse
// @Security BearerAuth
// @Router /offers/{id}/history [get]
func (h *offerHandler) getOfferHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	records, err := h.changeLogService.AuditTrail(c.Request.Context(), domain.EntityOffer, id)
	if err != nil {
		respondError(c, logger, err, "Failed to load offer history")
		return
	}

	c.JSON(http.StatusOK, dto.ToListChangeRecordResponse(records))
}

// deleteOffer godoc
// @Summary Delete an offer
// @Description Removes the offer; its change history is retained
// @Tags offers
// @Produce  json
// @Param   id path int true "Offer ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Offer not found"
// @Security BearerAuth
// @Router /offers/{id} [delete]
func (h *offerHandler) deleteOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, logger)
	if !ok {
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.offerService.DeleteOffer(c.Request.Context(), id, actorID); err != nil {
		respondError(c, logger, err, "Failed to delete offer")
		return
	}

	c.Status(http.StatusNoContent)
}
