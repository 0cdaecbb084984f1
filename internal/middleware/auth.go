package middleware

import (
	"backend/pkg/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// jwtSecret backs token verification for every guarded route.
// Set once at startup via Init.
var jwtSecret []byte

// Init sets the HMAC secret used to verify bearer tokens.
func Init(secret []byte) {
	jwtSecret = secret
}

// authenticate parses the Authorization header and, on success, stores the
// token claims in the gin context. It aborts the request otherwise.
func authenticate(c *gin.Context) (jwt.MapClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("authorization header is missing"))
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("invalid authorization format, expected 'Bearer <token>'"))
		return nil, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("invalid or expired token"))
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("invalid token claims"))
		return nil, false
	}

	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	c.Set("userID", userID)
	c.Set("userRole", role)
	if departmentID, ok := claims["department_id"].(string); ok {
		c.Set("departmentID", departmentID)
	}

	return claims, true
}

// RequireAuth admits any request bearing a valid token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireRole admits a valid token whose role is in the allowed list.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok {
			return
		}

		userRole, _ := claims["role"].(string)
		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, response.Error("access denied: insufficient permissions"))
	}
}
