package dto

import (
	"time"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// CreateTemplateRequest defines the data needed to create a message
// template.
type CreateTemplateRequest struct {
	Name    string                 `json:"name" binding:"required"`
	Subject string                 `json:"subject"`
	Body    string                 `json:"body" binding:"required"`
	Channel domain.TemplateChannel `json:"channel" binding:"required,oneof=EMAIL SMS WHATSAPP"`
}

// UpdateTemplateRequest defines the data allowed for updating a template.
type UpdateTemplateRequest struct {
	Name     *string                 `json:"name"`
	Subject  *string                 `json:"subject"`
	Body     *string                 `json:"body"`
	Channel  *domain.TemplateChannel `json:"channel" binding:"omitempty,oneof=EMAIL SMS WHATSAPP"`
	IsActive *bool                   `json:"isActive"`
}

// TemplateResponse defines the data returned for a message template.
type TemplateResponse struct {
	TemplateID int64                  `json:"templateID"`
	Name       string                 `json:"name"`
	Subject    string                 `json:"subject"`
	Body       string                 `json:"body"`
	Channel    domain.TemplateChannel `json:"channel"`
	IsActive   bool                   `json:"isActive"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

// ToTemplateResponse converts a domain.MessageTemplate to TemplateResponse.
func ToTemplateResponse(t *domain.MessageTemplate) TemplateResponse {
	return TemplateResponse{
		TemplateID: t.TemplateID,
		Name:       t.Name,
		Subject:    t.Subject,
		Body:       t.Body,
		Channel:    t.Channel,
		IsActive:   t.IsActive,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// ToListTemplateResponse converts a slice of domain.MessageTemplate to
// responses.
func ToListTemplateResponse(templates []domain.MessageTemplate) []TemplateResponse {
	res := make([]TemplateResponse, len(templates))
	for i := range templates {
		res[i] = ToTemplateResponse(&templates[i])
	}
	return res
}
