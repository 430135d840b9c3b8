package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/core/services"
)

// --- Mock ChangeLogRepository ---
type MockChangeLogRepository struct {
	mock.Mock
}

func (m *MockChangeLogRepository) AppendChange(ctx context.Context, record domain.ChangeRecord) (*domain.ChangeRecord, error) {
	args := m.Called(ctx, record)
	var stored *domain.ChangeRecord
	if args.Get(0) != nil {
		stored = args.Get(0).(*domain.ChangeRecord)
	}
	return stored, args.Error(1)
}

func (m *MockChangeLogRepository) ListChangesByEntity(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.ChangeRecord, error) {
	args := m.Called(ctx, entityType, entityID)
	var records []domain.ChangeRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.ChangeRecord)
	}
	return records, args.Error(1)
}

// --- Mock AgentReader ---
type MockAgentReader struct {
	mock.Mock
}

func (m *MockAgentReader) FindAgentByID(ctx context.Context, agentID int64) (*domain.Agent, error) {
	args := m.Called(ctx, agentID)
	var agent *domain.Agent
	if args.Get(0) != nil {
		agent = args.Get(0).(*domain.Agent)
	}
	return agent, args.Error(1)
}

func (m *MockAgentReader) FindAgentByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	args := m.Called(ctx, email)
	var agent *domain.Agent
	if args.Get(0) != nil {
		agent = args.Get(0).(*domain.Agent)
	}
	return agent, args.Error(1)
}

func (m *MockAgentReader) ListAgents(ctx context.Context, limit int, offset int) ([]domain.Agent, error) {
	args := m.Called(ctx, limit, offset)
	var agents []domain.Agent
	if args.Get(0) != nil {
		agents = args.Get(0).([]domain.Agent)
	}
	return agents, args.Error(1)
}

// --- Test Suite ---
type ChangeLogServiceTestSuite struct {
	suite.Suite
	mockChangeRepo *MockChangeLogRepository
	mockAgentRepo  *MockAgentReader
	service        portssvc.ChangeLogSvcFacade
}

func (suite *ChangeLogServiceTestSuite) SetupTest() {
	suite.mockChangeRepo = new(MockChangeLogRepository)
	suite.mockAgentRepo = new(MockAgentReader)
	suite.service = services.NewChangeLogService(suite.mockChangeRepo, suite.mockAgentRepo)
}

// --- RecordStateChange Tests ---

func (suite *ChangeLogServiceTestSuite) TestRecordStateChange_DescriptionAndActorName() {
	ctx := context.Background()
	actorID := int64(3)

	suite.mockAgentRepo.On("FindAgentByID", ctx, actorID).
		Return(&domain.Agent{AgentID: 3, Name: "Maria Lopes"}, nil).Once()
	suite.mockChangeRepo.On("AppendChange", ctx, mock.MatchedBy(func(r domain.ChangeRecord) bool {
		return r.EntityType == domain.EntityOffer &&
			r.EntityID == 1058 &&
			r.Action == domain.ActionStateChange &&
			r.Description == "Stage changed from DRAFT to SUBMITTED" &&
			r.PreviousValue == "DRAFT" &&
			r.NewValue == "SUBMITTED" &&
			r.UserName == "Maria Lopes"
	})).Return(&domain.ChangeRecord{ChangeID: 77, Timestamp: time.Now()}, nil).Once()

	record, err := suite.service.RecordStateChange(ctx, domain.EntityOffer, 1058, "DRAFT", "SUBMITTED", actorID)

	suite.Require().NoError(err)
	suite.Equal(int64(77), record.ChangeID)
	suite.mockChangeRepo.AssertExpectations(suite.T())
}

func (suite *ChangeLogServiceTestSuite) TestRecordStateChange_UnknownActorKeepsID() {
	ctx := context.Background()
	actorID := int64(99)

	suite.mockAgentRepo.On("FindAgentByID", ctx, actorID).
		Return(nil, apperrors.ErrNotFound).Once()
	// A missing agent never fails the append; the record falls back to the id.
	suite.mockChangeRepo.On("AppendChange", ctx, mock.MatchedBy(func(r domain.ChangeRecord) bool {
		return r.UserName == "agent #99"
	})).Return(&domain.ChangeRecord{ChangeID: 1}, nil).Once()

	_, err := suite.service.RecordStateChange(ctx, domain.EntityProperty, 5, "AVAILABLE", "RESERVED", actorID)

	suite.Require().NoError(err)
	suite.mockChangeRepo.AssertExpectations(suite.T())
}

// --- RecordFieldChange Tests ---

func (suite *ChangeLogServiceTestSuite) TestRecordFieldChange_AmountDescription() {
	ctx := context.Background()

	suite.mockAgentRepo.On("FindAgentByID", ctx, int64(3)).
		Return(&domain.Agent{AgentID: 3, Name: "Maria Lopes"}, nil).Once()
	suite.mockChangeRepo.On("AppendChange", ctx, mock.MatchedBy(func(r domain.ChangeRecord) bool {
		return r.Action == domain.ActionAmountChange &&
			r.Description == "Amount changed from 240000000 to 250000000"
	})).Return(&domain.ChangeRecord{ChangeID: 2}, nil).Once()

	_, err := suite.service.RecordFieldChange(ctx, domain.EntityOffer, 1058,
		domain.ActionAmountChange, "240000000", "250000000", 3)

	suite.Require().NoError(err)
	suite.mockChangeRepo.AssertExpectations(suite.T())
}

func (suite *ChangeLogServiceTestSuite) TestRecordFieldChange_RejectsNonTrackedAction() {
	ctx := context.Background()

	record, err := suite.service.RecordFieldChange(ctx, domain.EntityOffer, 1058,
		domain.ActionStateChange, "a", "b", 3)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockChangeRepo.AssertNotCalled(suite.T(), "AppendChange", mock.Anything, mock.Anything)
}

// --- RecordLifecycle Tests ---

func (suite *ChangeLogServiceTestSuite) TestRecordLifecycle_DeletedDescription() {
	ctx := context.Background()

	suite.mockAgentRepo.On("FindAgentByID", ctx, int64(3)).
		Return(&domain.Agent{AgentID: 3, Name: "Maria Lopes"}, nil).Once()
	suite.mockChangeRepo.On("AppendChange", ctx, mock.MatchedBy(func(r domain.ChangeRecord) bool {
		return r.Action == domain.ActionDeleted &&
			r.Description == "Offer deleted" &&
			r.PreviousValue == "" && r.NewValue == ""
	})).Return(&domain.ChangeRecord{ChangeID: 3}, nil).Once()

	_, err := suite.service.RecordLifecycle(ctx, domain.EntityOffer, 1058, domain.ActionDeleted, 3)

	suite.Require().NoError(err)
	suite.mockChangeRepo.AssertExpectations(suite.T())
}

func (suite *ChangeLogServiceTestSuite) TestRecordLifecycle_RejectsFieldAction() {
	ctx := context.Background()

	record, err := suite.service.RecordLifecycle(ctx, domain.EntityOffer, 1058, domain.ActionAmountChange, 3)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockChangeRepo.AssertNotCalled(suite.T(), "AppendChange", mock.Anything, mock.Anything)
}

// --- AuditTrail Tests ---

func (suite *ChangeLogServiceTestSuite) TestAuditTrail_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockChangeRepo.On("ListChangesByEntity", ctx, domain.EntityVisit, int64(12)).
		Return(nil, nil).Once()

	records, err := suite.service.AuditTrail(ctx, domain.EntityVisit, 12)

	suite.Require().NoError(err)
	suite.Require().NotNil(records)
	suite.Empty(records)
}

func (suite *ChangeLogServiceTestSuite) TestAuditTrail_PassesThroughOrdering() {
	ctx := context.Background()
	newest := domain.ChangeRecord{ChangeID: 9, EntityType: domain.EntityOffer, EntityID: 1058}
	older := domain.ChangeRecord{ChangeID: 4, EntityType: domain.EntityOffer, EntityID: 1058}

	suite.mockChangeRepo.On("ListChangesByEntity", ctx, domain.EntityOffer, int64(1058)).
		Return([]domain.ChangeRecord{newest, older}, nil).Once()

	records, err := suite.service.AuditTrail(ctx, domain.EntityOffer, 1058)

	suite.Require().NoError(err)
	suite.Require().Len(records, 2)
	suite.Equal(int64(9), records[0].ChangeID)
	suite.Equal(int64(4), records[1].ChangeID)
}

// --- Run Suite ---
func TestChangeLogService(t *testing.T) {
	suite.Run(t, new(ChangeLogServiceTestSuite))
}
