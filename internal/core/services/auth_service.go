package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/dto"
	"github.com/vistahomes/real_estate_crm/internal/utils"
)

// authService implements the AuthSvcFacade interface.
type authService struct {
	BaseService
	agentRepo portsrepo.AgentReader

	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates the authentication service.
func NewAuthService(agentRepo portsrepo.AgentReader, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		agentRepo: agentRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and issues a JWT. Unknown emails, wrong
// passwords and deactivated accounts all map to the same error so the
// response does not leak which part failed.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	agent, err := s.agentRepo.FindAgentByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up agent for login")
		return nil, err
	}

	if !agent.IsActive {
		s.LogWarn(ctx, "Login attempt on deactivated account", slog.Int64("agent_id", agent.AgentID))
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(req.Password, agent.PasswordHash) {
		s.LogWarn(ctx, "Login attempt with wrong password", slog.Int64("agent_id", agent.AgentID))
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(agent.AgentID, string(agent.Role), s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign JWT", slog.Int64("agent_id", agent.AgentID))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.LogInfo(ctx, "Agent logged in", slog.Int64("agent_id", agent.AgentID))
	return &dto.LoginResponse{
		Token: token,
		Agent: dto.ToAgentResponse(agent),
	}, nil
}
