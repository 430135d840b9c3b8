package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/core/services"
	"github.com/vistahomes/real_estate_crm/internal/dto"
)

// --- Mock OfferRepository ---
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) FindOfferByID(ctx context.Context, offerID int64) (*domain.Offer, error) {
	args := m.Called(ctx, offerID)
	var offer *domain.Offer
	if args.Get(0) != nil {
		offer = args.Get(0).(*domain.Offer)
	}
	return offer, args.Error(1)
}

func (m *MockOfferRepository) ListOffers(ctx context.Context, filter portsrepo.OfferFilter) ([]domain.Offer, error) {
	args := m.Called(ctx, filter)
	var offers []domain.Offer
	if args.Get(0) != nil {
		offers = args.Get(0).([]domain.Offer)
	}
	return offers, args.Error(1)
}

func (m *MockOfferRepository) SaveOffer(ctx context.Context, offer domain.Offer) (*domain.Offer, error) {
	args := m.Called(ctx, offer)
	var stored *domain.Offer
	if args.Get(0) != nil {
		stored = args.Get(0).(*domain.Offer)
	}
	return stored, args.Error(1)
}

func (m *MockOfferRepository) UpdateOffer(ctx context.Context, offer domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) DeleteOffer(ctx context.Context, offerID int64) error {
	args := m.Called(ctx, offerID)
	return args.Error(0)
}

// --- Mock OpportunityReader ---
type MockOpportunityReader struct {
	mock.Mock
}

func (m *MockOpportunityReader) FindOpportunityByID(ctx context.Context, opportunityID int64) (*domain.Opportunity, error) {
	args := m.Called(ctx, opportunityID)
	var opp *domain.Opportunity
	if args.Get(0) != nil {
		opp = args.Get(0).(*domain.Opportunity)
	}
	return opp, args.Error(1)
}

func (m *MockOpportunityReader) ListOpportunities(ctx context.Context, filter portsrepo.OpportunityFilter) ([]domain.Opportunity, error) {
	args := m.Called(ctx, filter)
	var opps []domain.Opportunity
	if args.Get(0) != nil {
		opps = args.Get(0).([]domain.Opportunity)
	}
	return opps, args.Error(1)
}

// --- Mock ChangeRecorder ---
type MockChangeRecorder struct {
	mock.Mock
}

func (m *MockChangeRecorder) RecordStateChange(ctx context.Context, entityType domain.EntityType, entityID int64, previous, next string, actorID int64) (*domain.ChangeRecord, error) {
	args := m.Called(ctx, entityType, entityID, previous, next, actorID)
	var rec *domain.ChangeRecord
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.ChangeRecord)
	}
	return rec, args.Error(1)
}

func (m *MockChangeRecorder) RecordFieldChange(ctx context.Context, entityType domain.EntityType, entityID int64, action domain.ChangeAction, previous, next string, actorID int64) (*domain.ChangeRecord, error) {
	args := m.Called(ctx, entityType, entityID, action, previous, next, actorID)
	var rec *domain.ChangeRecord
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.ChangeRecord)
	}
	return rec, args.Error(1)
}

func (m *MockChangeRecorder) RecordLifecycle(ctx context.Context, entityType domain.EntityType, entityID int64, action domain.ChangeAction, actorID int64) (*domain.ChangeRecord, error) {
	args := m.Called(ctx, entityType, entityID, action, actorID)
	var rec *domain.ChangeRecord
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.ChangeRecord)
	}
	return rec, args.Error(1)
}

// --- Test Suite ---
type OfferServiceTestSuite struct {
	suite.Suite
	mockOfferRepo       *MockOfferRepository
	mockOpportunityRepo *MockOpportunityReader
	mockRecorder        *MockChangeRecorder
	service             portssvc.OfferSvcFacade
}

func (suite *OfferServiceTestSuite) SetupTest() {
	suite.mockOfferRepo = new(MockOfferRepository)
	suite.mockOpportunityRepo = new(MockOpportunityReader)
	suite.mockRecorder = new(MockChangeRecorder)
	suite.service = services.NewOfferService(suite.mockOfferRepo, suite.mockOpportunityRepo, suite.mockRecorder)
}

// --- CreateOffer Tests ---

func (suite *OfferServiceTestSuite) TestCreateOffer_Success() {
	ctx := context.Background()
	actorID := int64(7)
	req := dto.CreateOfferRequest{
		OpportunityID: 42,
		AgentID:       7,
		Amount:        decimal.NewFromInt(250000),
		Commission:    decimal.NewFromInt(7500),
		CurrencyCode:  "EUR",
		Observation:   "first round",
	}

	suite.mockOpportunityRepo.On("FindOpportunityByID", ctx, int64(42)).
		Return(&domain.Opportunity{OpportunityID: 42}, nil).Once()
	suite.mockOfferRepo.On("SaveOffer", ctx, mock.MatchedBy(func(o domain.Offer) bool {
		return o.OpportunityID == 42 && o.Stage == domain.OfferDraft && o.Amount.Equal(req.Amount)
	})).Return(&domain.Offer{OfferID: 1058, OpportunityID: 42, Stage: domain.OfferDraft, Amount: req.Amount}, nil).Once()
	suite.mockRecorder.On("RecordLifecycle", ctx, domain.EntityOffer, int64(1058), domain.ActionCreated, actorID).
		Return(&domain.ChangeRecord{ChangeID: 1}, nil).Once()

	offer, err := suite.service.CreateOffer(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(offer)
	suite.Equal(int64(1058), offer.OfferID)
	suite.Equal(domain.OfferDraft, offer.Stage)
	suite.mockOfferRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *OfferServiceTestSuite) TestCreateOffer_UnknownOpportunity() {
	ctx := context.Background()
	req := dto.CreateOfferRequest{
		OpportunityID: 999,
		AgentID:       7,
		Amount:        decimal.NewFromInt(100),
		CurrencyCode:  "EUR",
	}

	suite.mockOpportunityRepo.On("FindOpportunityByID", ctx, int64(999)).
		Return(nil, apperrors.ErrNotFound).Once()

	offer, err := suite.service.CreateOffer(ctx, req, 7)

	suite.Require().Error(err)
	suite.Nil(offer)
	// A dangling parent is a validation failure on the request, not a 404.
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOfferRepo.AssertNotCalled(suite.T(), "SaveOffer", mock.Anything, mock.Anything)
	suite.mockRecorder.AssertNotCalled(suite.T(), "RecordLifecycle", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OfferServiceTestSuite) TestCreateOffer_NegativeAmount() {
	ctx := context.Background()
	req := dto.CreateOfferRequest{
		OpportunityID: 42,
		AgentID:       7,
		Amount:        decimal.NewFromInt(-5),
		CurrencyCode:  "EUR",
	}

	offer, err := suite.service.CreateOffer(ctx, req, 7)

	suite.Require().Error(err)
	suite.Nil(offer)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOpportunityRepo.AssertNotCalled(suite.T(), "FindOpportunityByID", mock.Anything, mock.Anything)
}

// --- UpdateOffer Tests ---

func (suite *OfferServiceTestSuite) TestUpdateOffer_AmountChangeRecordsDelta() {
	ctx := context.Background()
	actorID := int64(3)
	stored := &domain.Offer{
		OfferID:       1058,
		OpportunityID: 42,
		AgentID:       3,
		Stage:         domain.OfferDraft,
		Amount:        decimal.NewFromInt(240000000),
		Commission:    decimal.NewFromInt(1000),
	}
	newAmount := decimal.NewFromInt(250000000)
	req := dto.UpdateOfferRequest{Amount: &newAmount}

	suite.mockOfferRepo.On("FindOfferByID", ctx, int64(1058)).Return(stored, nil).Once()
	suite.mockOfferRepo.On("UpdateOffer", ctx, mock.MatchedBy(func(o domain.Offer) bool {
		return o.OfferID == 1058 && o.Amount.Equal(newAmount)
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordFieldChange", ctx, domain.EntityOffer, int64(1058),
		domain.ActionAmountChange, "240000000", "250000000", actorID).
		Return(&domain.ChangeRecord{ChangeID: 9}, nil).Once()

	offer, err := suite.service.UpdateOffer(ctx, 1058, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(offer)
	suite.True(offer.Amount.Equal(newAmount))
	suite.mockOfferRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *OfferServiceTestSuite) TestUpdateOffer_NoChangeSkipsWrite() {
	ctx := context.Background()
	sameAmount := decimal.NewFromInt(500)
	stored := &domain.Offer{OfferID: 10, Amount: sameAmount}
	req := dto.UpdateOfferRequest{Amount: &sameAmount}

	suite.mockOfferRepo.On("FindOfferByID", ctx, int64(10)).Return(stored, nil).Once()

	offer, err := suite.service.UpdateOffer(ctx, 10, req, 1)

	suite.Require().NoError(err)
	suite.Equal(stored, offer)
	suite.mockOfferRepo.AssertNotCalled(suite.T(), "UpdateOffer", mock.Anything, mock.Anything)
	suite.mockRecorder.AssertNotCalled(suite.T(), "RecordFieldChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OfferServiceTestSuite) TestUpdateOffer_MultipleFieldsOneRecordEach() {
	ctx := context.Background()
	actorID := int64(3)
	stored := &domain.Offer{
		OfferID:     10,
		AgentID:     3,
		Amount:      decimal.NewFromInt(100),
		Commission:  decimal.NewFromInt(5),
		Observation: "old",
	}
	newAmount := decimal.NewFromInt(200)
	newObservation := "new"
	newAgent := int64(4)
	req := dto.UpdateOfferRequest{Amount: &newAmount, Observation: &newObservation, AgentID: &newAgent}

	suite.mockOfferRepo.On("FindOfferByID", ctx, int64(10)).Return(stored, nil).Once()
	suite.mockOfferRepo.On("UpdateOffer", ctx, mock.AnythingOfType("domain.Offer")).Return(nil).Once()
	suite.mockRecorder.On("RecordFieldChange", ctx, domain.EntityOffer, int64(10),
		domain.ActionAmountChange, "100", "200", actorID).Return(&domain.ChangeRecord{}, nil).Once()
	suite.mockRecorder.On("RecordFieldChange", ctx, domain.EntityOffer, int64(10),
		domain.ActionObservationChange, "old", "new", actorID).Return(&domain.ChangeRecord{}, nil).Once()
	suite.mockRecorder.On("RecordFieldChange", ctx, domain.EntityOffer, int64(10),
		domain.ActionAssignmentChange, "3", "4", actorID).Return(&domain.ChangeRecord{}, nil).Once()

	_, err := suite.service.UpdateOffer(ctx, 10, req, actorID)

	suite.Require().NoError(err)
	suite.mockRecorder.AssertExpectations(suite.T())
}

// --- ChangeOfferStage Tests ---

func (suite *OfferServiceTestSuite) TestChangeOfferStage_Success() {
	ctx := context.Background()
	actorID := int64(2)
	stored := &domain.Offer{OfferID: 1058, Stage: domain.OfferDraft}

	suite.mockOfferRepo.On("FindOfferByID", ctx, int64(1058)).Return(stored, nil).Once()
	suite.mockOfferRepo.On("UpdateOffer", ctx, mock.MatchedBy(func(o domain.Offer) bool {
		return o.Stage == domain.OfferSubmitted
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordStateChange", ctx, domain.EntityOffer, int64(1058),
		"DRAFT", "SUBMITTED", actorID).Return(&domain.ChangeRecord{ChangeID: 5}, nil).Once()

	offer, err := suite.service.ChangeOfferStage(ctx, 1058, domain.OfferSubmitted, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.OfferSubmitted, offer.Stage)
	suite.mockOfferRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *OfferServiceTestSuite) TestChangeOfferStage_NoOpTransitionStillRecords() {
	ctx := context.Background()
	actorID := int64(2)
	stored := &domain.Offer{OfferID: 10, Stage: domain.OfferSubmitted}

	suite.mockOfferRepo.On("FindOfferByID", ctx, int64(10)).Return(stored, nil).Once()
	suite.mockOfferRepo.On("UpdateOffer", ctx, mock.AnythingOfType("domain.Offer")).Return(nil).Once()
	// Transition to the current stage still appends a record.
	suite.mockRecorder.On("RecordStateChange", ctx, domain.EntityOffer, int64(10),
		"SUBMITTED", "SUBMITTED", actorID).Return(&domain.ChangeRecord{}, nil).Once()

	offer, err := suite.service.ChangeOfferStage(ctx, 10, domain.OfferSubmitted, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.OfferSubmitted, offer.Stage)
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *OfferServiceTestSuite) TestChangeOfferStage_UnknownStage() {
	ctx := context.Background()

	offer, err := suite.service.ChangeOfferStage(ctx, 10, domain.OfferStage("TELEPORTED"), 2)

	suite.Require().Error(err)
	suite.Nil(offer)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOfferRepo.AssertNotCalled(suite.T(), "FindOfferByID", mock.Anything, mock.Anything)
}

func (suite *OfferServiceTestSuite) TestChangeOfferStage_NotFoundLeavesLogUntouched() {
	ctx := context.Background()

	suite.mockOfferRepo.On("FindOfferByID", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	offer, err := suite.service.ChangeOfferStage(ctx, 404, domain.OfferAccepted, 2)

	suite.Require().Error(err)
	suite.Nil(offer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockOfferRepo.AssertNotCalled(suite.T(), "UpdateOffer", mock.Anything, mock.Anything)
	suite.mockRecorder.AssertNotCalled(suite.T(), "RecordStateChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- DeleteOffer Tests ---

func (suite *OfferServiceTestSuite) TestDeleteOffer_RecordsDeletion() {
	ctx := context.Background()
	actorID := int64(5)

	suite.mockOfferRepo.On("DeleteOffer", ctx, int64(10)).Return(nil).Once()
	suite.mockRecorder.On("RecordLifecycle", ctx, domain.EntityOffer, int64(10), domain.ActionDeleted, actorID).
		Return(&domain.ChangeRecord{}, nil).Once()

	err := suite.service.DeleteOffer(ctx, 10, actorID)

	suite.Require().NoError(err)
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *OfferServiceTestSuite) TestDeleteOffer_NotFound() {
	ctx := context.Background()

	suite.mockOfferRepo.On("DeleteOffer", ctx, int64(404)).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteOffer(ctx, 404, 5)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRecorder.AssertNotCalled(suite.T(), "RecordLifecycle", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ListOffers Tests ---

func (suite *OfferServiceTestSuite) TestListOffers_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockOfferRepo.On("ListOffers", ctx, mock.AnythingOfType("repositories.OfferFilter")).
		Return(nil, expectedErr).Once()

	offers, err := suite.service.ListOffers(ctx, portsrepo.OfferFilter{})

	suite.Require().Error(err)
	suite.Nil(offers)
	suite.ErrorIs(err, expectedErr)
}

func (suite *OfferServiceTestSuite) TestOffersByOpportunity_FiltersByParent() {
	ctx := context.Background()
	opportunityID := int64(42)
	expected := []domain.Offer{{OfferID: 1, OpportunityID: 42}, {OfferID: 2, OpportunityID: 42}}

	suite.mockOfferRepo.On("ListOffers", ctx, mock.MatchedBy(func(f portsrepo.OfferFilter) bool {
		return f.OpportunityID != nil && *f.OpportunityID == opportunityID
	})).Return(expected, nil).Once()

	offers, err := suite.service.OffersByOpportunity(ctx, opportunityID)

	suite.Require().NoError(err)
	suite.Len(offers, 2)
	suite.mockOfferRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestOfferService(t *testing.T) {
	suite.Run(t, new(OfferServiceTestSuite))
}
