package domain

// TemplateChannel is the delivery channel a message template targets.
type TemplateChannel string

const (
	ChannelEmail    TemplateChannel = "EMAIL"
	ChannelSMS      TemplateChannel = "SMS"
	ChannelWhatsApp TemplateChannel = "WHATSAPP"
)

// MessageTemplate represents a reusable outbound message body used when
// contacting prospects.
type MessageTemplate struct {
	TemplateID int64           `json:"templateID"`
	Name       string          `json:"name"`
	Subject    string          `json:"subject"` // Ignored for SMS/WhatsApp
	Body       string          `json:"body"`
	Channel    TemplateChannel `json:"channel"`
	IsActive   bool            `json:"isActive"`
	AuditFields
}
