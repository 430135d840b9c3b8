package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/dto"
	"github.com/vistahomes/real_estate_crm/internal/utils"
)

// agentService implements the AgentSvcFacade interface. Write operations are
// restricted to actors holding the ADMIN role.
type agentService struct {
	BaseService
	agentRepo portsrepo.AgentRepositoryFacade
}

// NewAgentService creates the agent service.
func NewAgentService(agentRepo portsrepo.AgentRepositoryFacade) portssvc.AgentSvcFacade {
	return &agentService{agentRepo: agentRepo}
}

var _ portssvc.AgentSvcFacade = (*agentService)(nil)

// requireAdmin verifies the acting agent holds the ADMIN role.
func (s *agentService) requireAdmin(ctx context.Context, actorID int64) error {
	actor, err := s.agentRepo.FindAgentByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("actor %d: %w", actorID, apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "Failed to resolve acting agent", slog.Int64("actor_id", actorID))
		return err
	}
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("agent %d lacks the ADMIN role: %w", actorID, apperrors.ErrForbidden)
	}
	return nil
}

func (s *agentService) CreateAgent(ctx context.Context, req dto.CreateAgentRequest, actorID int64) (*domain.Agent, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash agent password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleAgent
	}

	now := time.Now()
	agent := domain.Agent{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(actorID, now),
	}

	stored, err := s.agentRepo.SaveAgent(ctx, agent)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save agent", slog.String("email", req.Email))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Agent created successfully",
		slog.Int64("agent_id", stored.AgentID),
		slog.String("role", string(stored.Role)))
	return stored, nil
}

func (s *agentService) GetAgentByID(ctx context.Context, agentID int64) (*domain.Agent, error) {
	agent, err := s.agentRepo.FindAgentByID(ctx, agentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find agent by ID", slog.Int64("agent_id", agentID))
		}
		return nil, err
	}
	return agent, nil
}

func (s *agentService) ListAgents(ctx context.Context, limit int, offset int) ([]domain.Agent, error) {
	agents, err := s.agentRepo.ListAgents(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list agents")
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	if agents == nil {
		return []domain.Agent{}, nil
	}
	return agents, nil
}

func (s *agentService) UpdateAgent(ctx context.Context, agentID int64, req dto.UpdateAgentRequest, actorID int64) (*domain.Agent, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	agent, err := s.agentRepo.FindAgentByID(ctx, agentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find agent for update", slog.Int64("agent_id", agentID))
		}
		return nil, err
	}

	changed := false
	if req.Name != nil && *req.Name != agent.Name {
		agent.Name = *req.Name
		changed = true
	}
	if req.Email != nil && *req.Email != agent.Email {
		agent.Email = *req.Email
		changed = true
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.LogError(ctx, err, "Failed to hash agent password")
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		agent.PasswordHash = hash
		changed = true
	}
	if req.Role != nil && *req.Role != agent.Role {
		agent.Role = *req.Role
		changed = true
	}
	if req.IsActive != nil && *req.IsActive != agent.IsActive {
		agent.IsActive = *req.IsActive
		changed = true
	}

	if !changed {
		s.LogDebug(ctx, "No fields changed on agent update", slog.Int64("agent_id", agentID))
		return agent, nil
	}

	agent.Touch(actorID, time.Now())
	if err := s.agentRepo.UpdateAgent(ctx, *agent); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update agent", slog.Int64("agent_id", agentID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Agent updated successfully", slog.Int64("agent_id", agent.AgentID))
	return agent, nil
}

func (s *agentService) DeactivateAgent(ctx context.Context, agentID int64, actorID int64) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	if err := s.agentRepo.DeactivateAgent(ctx, agentID, actorID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate agent", slog.Int64("agent_id", agentID))
		}
		return err
	}

	s.LogInfo(ctx, "Agent deactivated", slog.Int64("agent_id", agentID))
	return nil
}
