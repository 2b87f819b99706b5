package security

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/roles"
)

// JWTMiddleware validates the bearer token and stores the actor identity
// in the request context.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return secret(), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims := token.Claims.(jwt.MapClaims)
		c.Set("userID", claims["userID"])
		c.Set("role", claims["role"])
		c.Next()
	}
}

// RoleFromContext extracts the actor role placed there by JWTMiddleware.
func RoleFromContext(c *gin.Context) (roles.Role, error) {
	value, exists := c.Get("role")
	if !exists {
		return "", fmt.Errorf("no role in request context")
	}

	raw, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("role claim is not a string")
	}

	role := roles.Role(raw)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role: %s", raw)
	}

	return role, nil
}

// Authorize restricts a route to the listed roles. Domain-level action
// checks still run in the services; this is the outer route guard.
func Authorize(allowed ...roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := RoleFromContext(c)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		c.Abort()
	}
}
