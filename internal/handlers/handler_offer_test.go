package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/dto"
	"github.com/vistahomes/real_estate_crm/internal/handlers"
	"github.com/vistahomes/real_estate_crm/internal/middleware"
	"github.com/vistahomes/real_estate_crm/internal/platform/config"
)

// --- Mock OfferService ---
type MockOfferService struct {
	mock.Mock
}

func (m *MockOfferService) GetOfferByID(ctx context.Context, offerID int64) (*domain.Offer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferService) ListOffers(ctx context.Context, filter portsrepo.OfferFilter) ([]domain.Offer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}

func (m *MockOfferService) OffersByOpportunity(ctx context.Context, opportunityID int64) ([]domain.Offer, error) {
	args := m.Called(ctx, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}

func (m *MockOfferService) CreateOffer(ctx context.Context, req dto.CreateOfferRequest, actorID int64) (*domain.Offer, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferService) UpdateOffer(ctx context.Context, offerID int64, req dto.UpdateOfferRequest, actorID int64) (*domain.Offer, error) {
	args := m.Called(ctx, offerID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferService) ChangeOfferStage(ctx context.Context, offerID int64, stage domain.OfferStage, actorID int64) (*domain.Offer, error) {
	args := m.Called(ctx, offerID, stage, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferService) DeleteOffer(ctx context.Context, offerID int64, actorID int64) error {
	args := m.Called(ctx, offerID, actorID)
	return args.Error(0)
}

var _ portssvc.OfferSvcFacade = (*MockOfferService)(nil)

// --- Mock ChangeLogService ---
type MockChangeLogService struct {
	mock.Mock
}

func (m *MockChangeLogService) RecordStateChange(ctx context.Context, entityType domain.EntityType, entityID int64, previous, next string, actorID int64) (*domain.ChangeRecord, error) {
	args := m.Called(ctx, entityType, entityID, previous, next, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChangeRecord), args.Error(1)
}

func (m *MockChangeLogService) RecordFieldChange(ctx context.Context, entityType domain.EntityType, entityID int64, action domain.ChangeAction, previous, next string, actorID int64) (*domain.ChangeRecord, error) {
	args := m.Called(ctx, entityType, entityID, action, previous, next, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChangeRecord), args.Error(1)
}

func (m *MockChangeLogService) RecordLifecycle(ctx context.Context, entityType domain.EntityType, entityID int64, action domain.ChangeAction, actorID int64) (*domain.ChangeRecord, error) {
	args := m.Called(ctx, entityType, entityID, action, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChangeRecord), args.Error(1)
}

func (m *MockChangeLogService) AuditTrail(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.ChangeRecord, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChangeRecord), args.Error(1)
}

var _ portssvc.ChangeLogSvcFacade = (*MockChangeLogService)(nil)

// --- Test Suite ---
type OfferHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockOfferService     *MockOfferService
	mockChangeLogService *MockChangeLogService
	jwtSecret            string
}

// generateTestToken creates a signed JWT for the given agent.
func (suite *OfferHandlerTestSuite) generateTestToken(agentID int64, role string) string {
	claims := middleware.AgentClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "crm-test",
			Subject:   fmt.Sprintf("%d", agentID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *OfferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockOfferService = new(MockOfferService)
	suite.mockChangeLogService = new(MockChangeLogService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // keeps swagger routes out of the test router
	}
	services := &portssvc.ServiceContainer{
		Offer:     suite.mockOfferService,
		ChangeLog: suite.mockChangeLogService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *OfferHandlerTestSuite) doRequest(method, url string, body interface{}, agentID int64) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(agentID, string(domain.RoleAgent)))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *OfferHandlerTestSuite) TestCreateOffer_Success() {
	agentID := int64(7)
	reqBody := dto.CreateOfferRequest{
		OpportunityID: 42,
		AgentID:       7,
		Amount:        decimal.NewFromInt(250000),
		Commission:    decimal.NewFromInt(7500),
		CurrencyCode:  "EUR",
	}
	created := &domain.Offer{
		OfferID:       1058,
		OpportunityID: 42,
		AgentID:       7,
		Stage:         domain.OfferDraft,
		Amount:        reqBody.Amount,
		Commission:    reqBody.Commission,
		CurrencyCode:  "EUR",
	}

	suite.mockOfferService.On("CreateOffer",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(r dto.CreateOfferRequest) bool {
			return r.OpportunityID == 42 && r.Amount.Equal(reqBody.Amount)
		}),
		agentID,
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/offers", reqBody, agentID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.OfferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(1058), resp.OfferID)
	suite.Equal(domain.OfferDraft, resp.Stage)
	suite.mockOfferService.AssertExpectations(suite.T())
}

func (suite *OfferHandlerTestSuite) TestCreateOffer_MissingAuth() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/offers", bytes.NewReader([]byte("{}")))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockOfferService.AssertNotCalled(suite.T(), "CreateOffer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OfferHandlerTestSuite) TestChangeOfferStage_Success() {
	agentID := int64(7)
	updated := &domain.Offer{OfferID: 1058, Stage: domain.OfferSubmitted}

	suite.mockOfferService.On("ChangeOfferStage",
		mock.AnythingOfType("*context.valueCtx"),
		int64(1058), domain.OfferSubmitted, agentID,
	).Return(updated, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/offers/1058/stage",
		dto.ChangeStageRequest{Stage: "SUBMITTED"}, agentID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.OfferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.OfferSubmitted, resp.Stage)
	suite.mockOfferService.AssertExpectations(suite.T())
}

func (suite *OfferHandlerTestSuite) TestChangeOfferStage_UnknownStageIsBadRequest() {
	agentID := int64(7)

	suite.mockOfferService.On("ChangeOfferStage",
		mock.AnythingOfType("*context.valueCtx"),
		int64(1058), domain.OfferStage("TELEPORTED"), agentID,
	).Return(nil, fmt.Errorf("unknown offer stage: %w", apperrors.ErrValidation)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/offers/1058/stage",
		dto.ChangeStageRequest{Stage: "TELEPORTED"}, agentID)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *OfferHandlerTestSuite) TestGetOffer_NotFound() {
	agentID := int64(7)

	suite.mockOfferService.On("GetOfferByID",
		mock.AnythingOfType("*context.valueCtx"), int64(404),
	).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/offers/404", nil, agentID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *OfferHandlerTestSuite) TestGetOffer_BadID() {
	agentID := int64(7)

	w := suite.doRequest(http.MethodGet, "/api/v1/offers/not-a-number", nil, agentID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockOfferService.AssertNotCalled(suite.T(), "GetOfferByID", mock.Anything, mock.Anything)
}

func (suite *OfferHandlerTestSuite) TestGetOfferHistory_Success() {
	agentID := int64(7)
	records := []domain.ChangeRecord{
		{ChangeID: 9, EntityType: domain.EntityOffer, EntityID: 1058, Action: domain.ActionStateChange, Description: "Stage changed from DRAFT to SUBMITTED"},
		{ChangeID: 4, EntityType: domain.EntityOffer, EntityID: 1058, Action: domain.ActionCreated, Description: "Offer created"},
	}

	suite.mockChangeLogService.On("AuditTrail",
		mock.AnythingOfType("*context.valueCtx"), domain.EntityOffer, int64(1058),
	).Return(records, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/offers/1058/history", nil, agentID)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ChangeRecordResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal(int64(9), resp[0].ChangeID)
	suite.Equal("Stage changed from DRAFT to SUBMITTED", resp[0].Description)
	suite.mockChangeLogService.AssertExpectations(suite.T())
}

func (suite *OfferHandlerTestSuite) TestDeleteOffer_NoContent() {
	agentID := int64(7)

	suite.mockOfferService.On("DeleteOffer",
		mock.AnythingOfType("*context.valueCtx"), int64(1058), agentID,
	).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/offers/1058", nil, agentID)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockOfferService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestOfferHandler(t *testing.T) {
	suite.Run(t, new(OfferHandlerTestSuite))
}
