package services

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	"github.com/vistahomes/real_estate_crm/internal/dto"
)

// AgentReaderSvc defines read operations on agent accounts. It doubles as
// the actor-resolution dependency of the change log service.
type AgentReaderSvc interface {
	// GetAgentByID retrieves a specific agent by its identifier.
	GetAgentByID(ctx context.Context, agentID int64) (*domain.Agent, error)

	// ListAgents retrieves a paginated list of agents.
	ListAgents(ctx context.Context, limit int, offset int) ([]domain.Agent, error)
}

// AgentWriterSvc defines write operations on agent accounts. These require
// the ADMIN role.
type AgentWriterSvc interface {
	// CreateAgent persists a new agent account with a bcrypt-hashed
	// password.
	CreateAgent(ctx context.Context, req dto.CreateAgentRequest, actorID int64) (*domain.Agent, error)

	// UpdateAgent merges the provided fields over the stored agent.
	UpdateAgent(ctx context.Context, agentID int64, req dto.UpdateAgentRequest, actorID int64) (*domain.Agent, error)

	// DeactivateAgent marks an agent account as inactive.
	DeactivateAgent(ctx context.Context, agentID int64, actorID int64) error
}

// AgentSvcFacade combines all agent-related service interfaces.
type AgentSvcFacade interface {
	AgentReaderSvc
	AgentWriterSvc
}
