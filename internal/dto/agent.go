package dto

import (
	"time"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// CreateAgentRequest defines the data needed to register a new agent
// account.
type CreateAgentRequest struct {
	Name     string           `json:"name" binding:"required"`
	Email    string           `json:"email" binding:"required,email"`
	Password string           `json:"password" binding:"required,min=8"`
	Role     domain.AgentRole `json:"role" binding:"omitempty,oneof=AGENT ADMIN"`
}

// UpdateAgentRequest defines the data allowed for updating an agent.
type UpdateAgentRequest struct {
	Name     *string           `json:"name"`
	Email    *string           `json:"email" binding:"omitempty,email"`
	Password *string           `json:"password" binding:"omitempty,min=8"`
	Role     *domain.AgentRole `json:"role" binding:"omitempty,oneof=AGENT ADMIN"`
	IsActive *bool             `json:"isActive"`
}

// AgentResponse defines the data returned for an agent. The password hash
// is never exposed.
type AgentResponse struct {
	AgentID   int64            `json:"agentID"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      domain.AgentRole `json:"role"`
	IsActive  bool             `json:"isActive"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ToAgentResponse converts a domain.Agent to AgentResponse.
func ToAgentResponse(a *domain.Agent) AgentResponse {
	return AgentResponse{
		AgentID:   a.AgentID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToListAgentResponse converts a slice of domain.Agent to responses.
func ToListAgentResponse(agents []domain.Agent) []AgentResponse {
	res := make([]AgentResponse, len(agents))
	for i := range agents {
		res[i] = ToAgentResponse(&agents[i])
	}
	return res
}
