package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/httpapi/permission"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// ActorFrom returns the actor attached to the request, or the anonymous
// actor when no authentication middleware ran or no token was presented.
func ActorFrom(c *gin.Context) permission.Actor {
	if v, exists := c.Get(actorKey); exists {
		if actor, ok := v.(permission.Actor); ok {
			return actor
		}
	}
	return permission.Actor{Anonymous: true}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func actorFromClaims(claims *service.Claims) permission.Actor {
	return permission.Actor{
		ID:      claims.UserID,
		Role:    claims.Role,
		IsStaff: claims.IsStaff,
	}
}

// RequireAuth rejects requests without a valid bearer token and attaches
// the authenticated actor to the context.
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(actorKey, actorFromClaims(claims))
		c.Next()
	}
}

// OptionalAuth attaches the actor when a valid bearer token is present and
// lets anonymous requests through; the policy layer decides what an
// anonymous actor may do. A presented-but-invalid token is still rejected.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Set(actorKey, permission.Actor{Anonymous: true})
			c.Next()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(actorKey, actorFromClaims(claims))
		c.Next()
	}
}

// Permit runs a collection-level policy check for the request method before
// any object lookup happens.
func Permit(check func(permission.Actor, string) permission.Decision) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if d := check(actor, c.Request.Method); !d.Allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
			c.Abort()
			return
		}
		c.Next()
	}
}
