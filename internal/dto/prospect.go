package dto

import (
	"time"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// CreateProspectRequest defines the data needed to register a new prospect.
type CreateProspectRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Source      string `json:"source"`
	AgentID     int64  `json:"agentID" binding:"required"`
	Observation string `json:"observation"`
}

// UpdateProspectRequest defines the data allowed for updating a prospect.
type UpdateProspectRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Source      *string `json:"source"`
	AgentID     *int64  `json:"agentID"`
	Observation *string `json:"observation"`
}

// ProspectResponse defines the data returned for a prospect.
type ProspectResponse struct {
	ProspectID  int64                 `json:"prospectID"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Phone       string                `json:"phone"`
	Source      string                `json:"source"`
	Status      domain.ProspectStatus `json:"status"`
	AgentID     int64                 `json:"agentID"`
	Observation string                `json:"observation"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ToProspectResponse converts a domain.Prospect to ProspectResponse.
func ToProspectResponse(p *domain.Prospect) ProspectResponse {
	return ProspectResponse{
		ProspectID:  p.ProspectID,
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Source:      p.Source,
		Status:      p.Status,
		AgentID:     p.AgentID,
		Observation: p.Observation,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToListProspectResponse converts a slice of domain.Prospect to responses.
func ToListProspectResponse(prospects []domain.Prospect) []ProspectResponse {
	res := make([]ProspectResponse, len(prospects))
	for i := range prospects {
		res[i] = ToProspectResponse(&prospects[i])
	}
	return res
}
