package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private key type to prevent collisions in context values.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	agentIDKey   = contextKey("agentID")
	agentRoleKey = contextKey("agentRole")
)

// GetAgentIDFromContext retrieves the authenticated agent ID from the Gin
// context. It returns the agent ID and a boolean indicating if it was found.
func GetAgentIDFromContext(c *gin.Context) (int64, bool) {
	if v, exists := c.Get(string(agentIDKey)); exists {
		if id, ok := v.(int64); ok {
			return id, true
		}
		return 0, false
	}
	// Check the request context as well; the auth middleware stores it there.
	if v := c.Request.Context().Value(agentIDKey); v != nil {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	return 0, false
}

// GetAgentRoleFromContext retrieves the authenticated agent's role claim.
func GetAgentRoleFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(agentRoleKey); v != nil {
		if role, ok := v.(string); ok {
			return role, true
		}
	}
	return "", false
}

// ContextWithAgentID returns a context carrying the given agent ID. Used by
// tests that bypass the auth middleware.
func ContextWithAgentID(ctx context.Context, agentID int64) context.Context {
	return context.WithValue(ctx, agentIDKey, agentID)
}
