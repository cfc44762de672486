package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ekarpova/resumecraft/internal/common"
	"github.com/ekarpova/resumecraft/internal/server/auth"
)

const (
	userIDKey       = "userID"
	requestIDHeader = "X-Request-Id"
)

// RequestID tags every response with a request id, minting one when the
// caller did not supply its own.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

type AuthMiddleware struct {
	jwtSecret []byte
}

func NewAuthMiddleware(secretKey string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: []byte(secretKey)}
}

// RequireAuth verifies the Bearer access token and stores the user id in
// the request context. An expired token gets its own message so the client
// knows a refresh may succeed.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid token"})
			return
		}

		userID, err := auth.GetUserIDFromToken(tokenString, m.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": common.ErrTokenExpired.Error()})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader(common.AuthorizationHeaderName)
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
