package dto

// LoginRequest defines the credentials for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued JWT and the authenticated agent profile.
type LoginResponse struct {
	Token string        `json:"token"`
	Agent AgentResponse `json:"agent"`
}
