package middleware

import (
	"net/http"
	"strings"
	"time"

	"restaurant-order-api/config"
	"restaurant-order-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed JWT carrying the subject and its role set
func GenerateToken(username string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.App.JWTSecret)
}

// ParseToken validates signature and expiry, returning the claims
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return config.App.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// AuthRequired validates the bearer token and injects identity into context
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"data": nil, "message": "unauthorized"})
			c.Abort()
			return
		}
		claims, err := ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"data": nil, "message": "unauthorized"})
			c.Abort()
			return
		}
		c.Set("username", claims.Subject)
		c.Set("roles", claims.Roles)
		c.Next()
	}
}

// RoleRequired enforces that the caller's role set contains the given role.
// Deny is 403, distinct from the 401 of a missing or invalid token.
func RoleRequired(role models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, granted := range GetRoles(c) {
			if granted == string(role) {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"data": nil, "message": "forbidden"})
		c.Abort()
	}
}

// GetUsername extracts the caller's subject from context
func GetUsername(c *gin.Context) string {
	val, _ := c.Get("username")
	name, _ := val.(string)
	return name
}

// GetRoles extracts the caller's role set from context
func GetRoles(c *gin.Context) []string {
	val, _ := c.Get("roles")
	roles, _ := val.([]string)
	return roles
}
