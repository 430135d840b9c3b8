package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// AgentRepository implements the agent repository ports over the shared
// in-memory store.
type AgentRepository struct {
	store *Store
}

// NewAgentRepository creates a memory-backed agent repository.
func NewAgentRepository(store *Store) *AgentRepository {
	return &AgentRepository{store: store}
}

var _ portsrepo.AgentRepositoryFacade = (*AgentRepository)(nil)

func (r *AgentRepository) FindAgentByID(_ context.Context, agentID int64) (*domain.Agent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.agents {
		if r.store.agents[i].AgentID == agentID {
			agent := r.store.agents[i]
			return &agent, nil
		}
	}
	return nil, fmt.Errorf("agent %d: %w", agentID, apperrors.ErrNotFound)
}

func (r *AgentRepository) FindAgentByEmail(_ context.Context, email string) (*domain.Agent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.agents {
		if strings.EqualFold(r.store.agents[i].Email, email) {
			agent := r.store.agents[i]
			return &agent, nil
		}
	}
	return nil, fmt.Errorf("agent %s: %w", email, apperrors.ErrNotFound)
}

func (r *AgentRepository) ListAgents(_ context.Context, limit int, offset int) ([]domain.Agent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	agents := make([]domain.Agent, len(r.store.agents))
	copy(agents, r.store.agents)
	return paginate(agents, limit, offset), nil
}

func (r *AgentRepository) SaveAgent(_ context.Context, agent domain.Agent) (*domain.Agent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var maxID int64
	for i := range r.store.agents {
		if strings.EqualFold(r.store.agents[i].Email, agent.Email) {
			return nil, fmt.Errorf("agent with email %s: %w", agent.Email, apperrors.ErrDuplicate)
		}
		if r.store.agents[i].AgentID > maxID {
			maxID = r.store.agents[i].AgentID
		}
	}
	agent.AgentID = maxID + 1
	r.store.agents = append(r.store.agents, agent)
	stored := agent
	return &stored, nil
}

func (r *AgentRepository) UpdateAgent(_ context.Context, agent domain.Agent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.agents {
		if r.store.agents[i].AgentID != agent.AgentID && strings.EqualFold(r.store.agents[i].Email, agent.Email) {
			return fmt.Errorf("agent with email %s: %w", agent.Email, apperrors.ErrDuplicate)
		}
	}
	for i := range r.store.agents {
		if r.store.agents[i].AgentID == agent.AgentID {
			r.store.agents[i] = agent
			return nil
		}
	}
	return fmt.Errorf("agent %d: %w", agent.AgentID, apperrors.ErrNotFound)
}

func (r *AgentRepository) DeactivateAgent(_ context.Context, agentID int64, actorID int64, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.agents {
		if r.store.agents[i].AgentID == agentID {
			r.store.agents[i].IsActive = false
			r.store.agents[i].Touch(actorID, now)
			return nil
		}
	}
	return fmt.Errorf("agent %d: %w", agentID, apperrors.ErrNotFound)
}
