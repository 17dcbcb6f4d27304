package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// AuthorizationHeader is the header key for authorization.
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens.
	BearerPrefix = "Bearer "
	// ActorIDKey is the context key for the acting user's ID.
	ActorIDKey = "actor_id"
	// ActorRoleKey is the context key for the acting user's role.
	ActorRoleKey = "actor_role"
)

// Actor roles recognized by the platform. Role strings are used for
// notification addressing; permission checking lives at the API gateway.
const (
	RoleAdmin     = "admin"
	RolePersonnel = "personnel"
	RoleCustomer  = "customer"
)

// ActorClaims are the token claims the platform cares about.
type ActorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Actor returns a middleware that extracts the acting user from the bearer
// token. If optional is true, requests without a valid token pass through
// with no actor set.
func Actor(secret string, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			if !optional {
				abortUnauthorized(c, "Authorization header required")
				return
			}
			c.Next()
			return
		}

		claims := &ActorClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid {
			if !optional {
				abortUnauthorized(c, "Invalid or expired token")
				return
			}
			c.Next()
			return
		}

		c.Set(ActorIDKey, claims.Subject)
		c.Set(ActorRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole returns a middleware that rejects requests whose actor role is
// not one of the allowed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetActorRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "insufficient role",
			},
		})
	}
}

// GetActorID returns the acting user's ID from context, or uuid.Nil.
func GetActorID(c *gin.Context) uuid.UUID {
	v, exists := c.Get(ActorIDKey)
	if !exists {
		return uuid.Nil
	}
	id, err := uuid.Parse(v.(string))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetActorRole returns the acting user's role from context, or "".
func GetActorRole(c *gin.Context) string {
	if v, exists := c.Get(ActorRoleKey); exists {
		return v.(string)
	}
	return ""
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthorizationHeader)
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, BearerPrefix)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
