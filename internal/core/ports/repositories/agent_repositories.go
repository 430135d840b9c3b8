package repositories

import (
	"context"
	"time"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// AgentReader defines read operations for agent accounts.
type AgentReader interface {
	// FindAgentByID retrieves a specific agent by its identifier.
	FindAgentByID(ctx context.Context, agentID int64) (*domain.Agent, error)

	// FindAgentByEmail retrieves an agent by its unique email address.
	FindAgentByEmail(ctx context.Context, email string) (*domain.Agent, error)

	// ListAgents retrieves a paginated list of agents in insertion order.
	ListAgents(ctx context.Context, limit int, offset int) ([]domain.Agent, error)
}

// AgentWriter defines write operations for agent accounts.
type AgentWriter interface {
	// SaveAgent persists a new agent, assigning its identifier, and returns
	// the stored copy. Returns apperrors.ErrDuplicate when the email is
	// already taken.
	SaveAgent(ctx context.Context, agent domain.Agent) (*domain.Agent, error)

	// UpdateAgent replaces an existing agent record atomically.
	UpdateAgent(ctx context.Context, agent domain.Agent) error

	// DeactivateAgent marks an agent account as inactive.
	DeactivateAgent(ctx context.Context, agentID int64, actorID int64, now time.Time) error
}

// AgentRepositoryFacade combines all agent-related repository interfaces.
type AgentRepositoryFacade interface {
	AgentReader
	AgentWriter
}
