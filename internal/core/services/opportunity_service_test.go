package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/core/services"
	"github.com/vistahomes/real_estate_crm/internal/dto"
)

// --- Mock OpportunityRepository (full facade) ---
type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) FindOpportunityByID(ctx context.Context, opportunityID int64) (*domain.Opportunity, error) {
	args := m.Called(ctx, opportunityID)
	var opp *domain.Opportunity
	if args.Get(0) != nil {
		opp = args.Get(0).(*domain.Opportunity)
	}
	return opp, args.Error(1)
}

func (m *MockOpportunityRepository) ListOpportunities(ctx context.Context, filter portsrepo.OpportunityFilter) ([]domain.Opportunity, error) {
	args := m.Called(ctx, filter)
	var opps []domain.Opportunity
	if args.Get(0) != nil {
		opps = args.Get(0).([]domain.Opportunity)
	}
	return opps, args.Error(1)
}

func (m *MockOpportunityRepository) SaveOpportunity(ctx context.Context, opportunity domain.Opportunity) (*domain.Opportunity, error) {
	args := m.Called(ctx, opportunity)
	var stored *domain.Opportunity
	if args.Get(0) != nil {
		stored = args.Get(0).(*domain.Opportunity)
	}
	return stored, args.Error(1)
}

func (m *MockOpportunityRepository) UpdateOpportunity(ctx context.Context, opportunity domain.Opportunity) error {
	args := m.Called(ctx, opportunity)
	return args.Error(0)
}

func (m *MockOpportunityRepository) MoveOpportunity(ctx context.Context, opportunityID int64, stage domain.OpportunityStage, position int, actorID int64, now time.Time) (*domain.Opportunity, error) {
	args := m.Called(ctx, opportunityID, stage, position, actorID, now)
	var moved *domain.Opportunity
	if args.Get(0) != nil {
		moved = args.Get(0).(*domain.Opportunity)
	}
	return moved, args.Error(1)
}

func (m *MockOpportunityRepository) DeleteOpportunity(ctx context.Context, opportunityID int64) error {
	args := m.Called(ctx, opportunityID)
	return args.Error(0)
}

// --- Mock ProspectReader ---
type MockProspectReader struct {
	mock.Mock
}

func (m *MockProspectReader) FindProspectByID(ctx context.Context, prospectID int64) (*domain.Prospect, error) {
	args := m.Called(ctx, prospectID)
	var prospect *domain.Prospect
	if args.Get(0) != nil {
		prospect = args.Get(0).(*domain.Prospect)
	}
	return prospect, args.Error(1)
}

func (m *MockProspectReader) ListProspects(ctx context.Context, filter portsrepo.ProspectFilter) ([]domain.Prospect, error) {
	args := m.Called(ctx, filter)
	var prospects []domain.Prospect
	if args.Get(0) != nil {
		prospects = args.Get(0).([]domain.Prospect)
	}
	return prospects, args.Error(1)
}

// --- Mock PropertyReader ---
type MockPropertyReader struct {
	mock.Mock
}

func (m *MockPropertyReader) FindPropertyByID(ctx context.Context, propertyID int64) (*domain.Property, error) {
	args := m.Called(ctx, propertyID)
	var property *domain.Property
	if args.Get(0) != nil {
		property = args.Get(0).(*domain.Property)
	}
	return property, args.Error(1)
}

func (m *MockPropertyReader) ListProperties(ctx context.Context, filter portsrepo.PropertyFilter) ([]domain.Property, error) {
	args := m.Called(ctx, filter)
	var properties []domain.Property
	if args.Get(0) != nil {
		properties = args.Get(0).([]domain.Property)
	}
	return properties, args.Error(1)
}

// --- Test Suite ---
type OpportunityServiceTestSuite struct {
	suite.Suite
	mockOpportunityRepo *MockOpportunityRepository
	mockProspectRepo    *MockProspectReader
	mockPropertyRepo    *MockPropertyReader
	mockRecorder        *MockChangeRecorder
	service             portssvc.OpportunitySvcFacade
}

func (suite *OpportunityServiceTestSuite) SetupTest() {
	suite.mockOpportunityRepo = new(MockOpportunityRepository)
	suite.mockProspectRepo = new(MockProspectReader)
	suite.mockPropertyRepo = new(MockPropertyReader)
	suite.mockRecorder = new(MockChangeRecorder)
	suite.service = services.NewOpportunityService(suite.mockOpportunityRepo, suite.mockProspectRepo, suite.mockPropertyRepo, suite.mockRecorder)
}

// --- CreateOpportunity Tests ---

func (suite *OpportunityServiceTestSuite) TestCreateOpportunity_Success() {
	ctx := context.Background()
	actorID := int64(7)
	req := dto.CreateOpportunityRequest{
		ProspectID:      11,
		PropertyID:      22,
		AgentID:         7,
		EstimatedAmount: decimal.NewFromInt(320000),
		CurrencyCode:    "EUR",
	}

	suite.mockProspectRepo.On("FindProspectByID", ctx, int64(11)).
		Return(&domain.Prospect{ProspectID: 11}, nil).Once()
	suite.mockPropertyRepo.On("FindPropertyByID", ctx, int64(22)).
		Return(&domain.Property{PropertyID: 22}, nil).Once()
	suite.mockOpportunityRepo.On("SaveOpportunity", ctx, mock.MatchedBy(func(o domain.Opportunity) bool {
		return o.ProspectID == 11 && o.PropertyID == 22 && o.Stage == domain.OpportunityNew
	})).Return(&domain.Opportunity{OpportunityID: 42, Stage: domain.OpportunityNew}, nil).Once()
	suite.mockRecorder.On("RecordLifecycle", ctx, domain.EntityOpportunity, int64(42), domain.ActionCreated, actorID).
		Return(&domain.ChangeRecord{}, nil).Once()

	opp, err := suite.service.CreateOpportunity(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Equal(int64(42), opp.OpportunityID)
	suite.Equal(domain.OpportunityNew, opp.Stage)
	suite.mockOpportunityRepo.AssertExpectations(suite.T())
}

func (suite *OpportunityServiceTestSuite) TestCreateOpportunity_DanglingProspect() {
	ctx := context.Background()
	req := dto.CreateOpportunityRequest{
		ProspectID:   999,
		PropertyID:   22,
		AgentID:      7,
		CurrencyCode: "EUR",
	}

	suite.mockProspectRepo.On("FindProspectByID", ctx, int64(999)).
		Return(nil, apperrors.ErrNotFound).Once()

	opp, err := suite.service.CreateOpportunity(ctx, req, 7)

	suite.Require().Error(err)
	suite.Nil(opp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOpportunityRepo.AssertNotCalled(suite.T(), "SaveOpportunity", mock.Anything, mock.Anything)
}

// --- ChangeOpportunityStage Tests ---

func (suite *OpportunityServiceTestSuite) TestChangeOpportunityStage_MovesToColumnBottom() {
	ctx := context.Background()
	actorID := int64(3)
	current := &domain.Opportunity{OpportunityID: 42, Stage: domain.OpportunityNew, BoardPosition: 0}
	moved := &domain.Opportunity{OpportunityID: 42, Stage: domain.OpportunityQualified, BoardPosition: 4}

	suite.mockOpportunityRepo.On("FindOpportunityByID", ctx, int64(42)).Return(current, nil).Once()
	// The service delegates positioning to the repository; a huge sentinel
	// position gets clamped to the end of the target column.
	suite.mockOpportunityRepo.On("MoveOpportunity", ctx, int64(42), domain.OpportunityQualified,
		mock.MatchedBy(func(pos int) bool { return pos >= 1<<20 }), actorID, mock.AnythingOfType("time.Time")).
		Return(moved, nil).Once()
	suite.mockRecorder.On("RecordStateChange", ctx, domain.EntityOpportunity, int64(42),
		"NEW", "QUALIFIED", actorID).Return(&domain.ChangeRecord{}, nil).Once()

	opp, err := suite.service.ChangeOpportunityStage(ctx, 42, domain.OpportunityQualified, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.OpportunityQualified, opp.Stage)
	suite.Equal(4, opp.BoardPosition)
	suite.mockOpportunityRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *OpportunityServiceTestSuite) TestChangeOpportunityStage_NoOpStillRecords() {
	ctx := context.Background()
	actorID := int64(3)
	current := &domain.Opportunity{OpportunityID: 42, Stage: domain.OpportunityVisit}
	moved := &domain.Opportunity{OpportunityID: 42, Stage: domain.OpportunityVisit, BoardPosition: 2}

	suite.mockOpportunityRepo.On("FindOpportunityByID", ctx, int64(42)).Return(current, nil).Once()
	suite.mockOpportunityRepo.On("MoveOpportunity", ctx, int64(42), domain.OpportunityVisit,
		mock.AnythingOfType("int"), actorID, mock.AnythingOfType("time.Time")).Return(moved, nil).Once()
	suite.mockRecorder.On("RecordStateChange", ctx, domain.EntityOpportunity, int64(42),
		"VISIT", "VISIT", actorID).Return(&domain.ChangeRecord{}, nil).Once()

	_, err := suite.service.ChangeOpportunityStage(ctx, 42, domain.OpportunityVisit, actorID)

	suite.Require().NoError(err)
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *OpportunityServiceTestSuite) TestChangeOpportunityStage_UnknownStage() {
	ctx := context.Background()

	opp, err := suite.service.ChangeOpportunityStage(ctx, 42, domain.OpportunityStage("LIMBO"), 3)

	suite.Require().Error(err)
	suite.Nil(opp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOpportunityRepo.AssertNotCalled(suite.T(), "FindOpportunityByID", mock.Anything, mock.Anything)
}

// --- MoveOpportunity Tests ---

func (suite *OpportunityServiceTestSuite) TestMoveOpportunity_SameColumnSkipsLog() {
	ctx := context.Background()
	actorID := int64(3)
	current := &domain.Opportunity{OpportunityID: 42, Stage: domain.OpportunityNew, BoardPosition: 0}
	moved := &domain.Opportunity{OpportunityID: 42, Stage: domain.OpportunityNew, BoardPosition: 3}

	suite.mockOpportunityRepo.On("FindOpportunityByID", ctx, int64(42)).Return(current, nil).Once()
	suite.mockOpportunityRepo.On("MoveOpportunity", ctx, int64(42), domain.OpportunityNew, 3, actorID,
		mock.AnythingOfType("time.Time")).Return(moved, nil).Once()

	opp, err := suite.service.MoveOpportunity(ctx, 42, domain.OpportunityNew, 3, actorID)

	suite.Require().NoError(err)
	suite.Equal(3, opp.BoardPosition)
	// Repositioning within the column is not an auditable event.
	suite.mockRecorder.AssertNotCalled(suite.T(), "RecordStateChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OpportunityServiceTestSuite) TestMoveOpportunity_CrossColumnRecords() {
	ctx := context.Background()
	actorID := int64(3)
	current := &domain.Opportunity{OpportunityID: 42, Stage: domain.OpportunityNew}
	moved := &domain.Opportunity{OpportunityID: 42, Stage: domain.OpportunityNegotiation, BoardPosition: 0}

	suite.mockOpportunityRepo.On("FindOpportunityByID", ctx, int64(42)).Return(current, nil).Once()
	suite.mockOpportunityRepo.On("MoveOpportunity", ctx, int64(42), domain.OpportunityNegotiation, 0, actorID,
		mock.AnythingOfType("time.Time")).Return(moved, nil).Once()
	suite.mockRecorder.On("RecordStateChange", ctx, domain.EntityOpportunity, int64(42),
		"NEW", "NEGOTIATION", actorID).Return(&domain.ChangeRecord{}, nil).Once()

	_, err := suite.service.MoveOpportunity(ctx, 42, domain.OpportunityNegotiation, 0, actorID)

	suite.Require().NoError(err)
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *OpportunityServiceTestSuite) TestMoveOpportunity_NegativePosition() {
	ctx := context.Background()

	opp, err := suite.service.MoveOpportunity(ctx, 42, domain.OpportunityNew, -1, 3)

	suite.Require().Error(err)
	suite.Nil(opp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateOpportunity Tests ---

func (suite *OpportunityServiceTestSuite) TestUpdateOpportunity_EstimatedAmountDelta() {
	ctx := context.Background()
	actorID := int64(3)
	stored := &domain.Opportunity{OpportunityID: 42, EstimatedAmount: decimal.NewFromInt(300000)}
	newAmount := decimal.NewFromInt(310000)
	req := dto.UpdateOpportunityRequest{EstimatedAmount: &newAmount}

	suite.mockOpportunityRepo.On("FindOpportunityByID", ctx, int64(42)).Return(stored, nil).Once()
	suite.mockOpportunityRepo.On("UpdateOpportunity", ctx, mock.AnythingOfType("domain.Opportunity")).Return(nil).Once()
	suite.mockRecorder.On("RecordFieldChange", ctx, domain.EntityOpportunity, int64(42),
		domain.ActionAmountChange, "300000", "310000", actorID).Return(&domain.ChangeRecord{}, nil).Once()

	opp, err := suite.service.UpdateOpportunity(ctx, 42, req, actorID)

	suite.Require().NoError(err)
	suite.True(opp.EstimatedAmount.Equal(newAmount))
	suite.mockRecorder.AssertExpectations(suite.T())
}

// --- DeleteOpportunity Tests ---

func (suite *OpportunityServiceTestSuite) TestDeleteOpportunity_RecordsDeletion() {
	ctx := context.Background()
	actorID := int64(3)

	suite.mockOpportunityRepo.On("DeleteOpportunity", ctx, int64(42)).Return(nil).Once()
	suite.mockRecorder.On("RecordLifecycle", ctx, domain.EntityOpportunity, int64(42), domain.ActionDeleted, actorID).
		Return(&domain.ChangeRecord{}, nil).Once()

	err := suite.service.DeleteOpportunity(ctx, 42, actorID)

	suite.Require().NoError(err)
	suite.mockRecorder.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestOpportunityService(t *testing.T) {
	suite.Run(t, new(OpportunityServiceTestSuite))
}
