package domain

// AgentRole controls what an agent account may do on top of regular CRM
// operations.
type AgentRole string

const (
	RoleAgent AgentRole = "AGENT"
	RoleAdmin AgentRole = "ADMIN"
)

// Agent represents a CRM user account. PasswordHash is a bcrypt hash and is
// never serialized.
type Agent struct {
	AgentID      int64     `json:"agentID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"` // Unique within the store
	PasswordHash string    `json:"-"`
	Role         AgentRole `json:"role"`
	IsActive     bool      `json:"isActive"`
	AuditFields
}
