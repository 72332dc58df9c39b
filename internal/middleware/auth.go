package middleware

import (
	"net/http"
	"strings"

	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts "Authorization: Bearer <access token>" and stores
// the token's user id under "userID".
func AuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Header must be present
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.APIError(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		// 2. Format is "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.APIError(c, http.StatusUnauthorized, "Malformed authorization header")
			return
		}

		// 3. Token must be a valid access token
		userID, err := tokens.ParseAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			utils.APIError(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
