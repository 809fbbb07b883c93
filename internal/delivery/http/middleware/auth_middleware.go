package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-mockinterview-backend/config"
	"go-mockinterview-backend/internal/delivery/http/response"
	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the session token and loads the caller's
// identity into the request context. Tokens arrive either as a Bearer
// header (API clients) or a "session" cookie (browser clients).
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("session")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or session cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			if cfg.JWTSecret == "" {
				return nil, fmt.Errorf("JWT_SECRET is not configured")
			}
			return []byte(cfg.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			logUnauthorized(c, err)
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Token missing subject", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)

		c.Next()
	}
}

func logUnauthorized(c *gin.Context, err error) {
	logger := security.DefaultLogger()
	if logger == nil {
		return
	}
	details := map[string]interface{}{"path": c.FullPath()}
	if err != nil {
		details["error"] = err.Error()
	}
	logger.LogEvent(security.SecurityEvent{
		Event:     security.EventUnauthorizedAccess,
		IP:        c.ClientIP(),
		RequestID: c.GetString("RequestID"),
		Details:   details,
	})
}
