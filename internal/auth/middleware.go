package auth

import (
	"net/http"
	"strings"

	"github.com/arlo/tweetsmith/internal/logger"
	"github.com/gin-gonic/gin"
)

// RequireAuth validates the bearer token and attaches the user ID to the
// request context. Requests without a valid token are rejected with 401.
// Parameters:
//   - tokens: token manager used for verification.
// Returns:
//   - gin.HandlerFunc: middleware handler.
func RequireAuth(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUser(c, tokens)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "please sign in"})
			c.Abort()
			return
		}
		attachUser(c, userID)
		c.Next()
	}
}

// OptionalAuth attaches the user ID when a valid bearer token is present and
// passes the request through otherwise. Used by the history listing, which
// returns an empty result for anonymous callers instead of failing.
// Parameters:
//   - tokens: token manager used for verification.
// Returns:
//   - gin.HandlerFunc: middleware handler.
func OptionalAuth(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := resolveUser(c, tokens); ok {
			attachUser(c, userID)
		}
		c.Next()
	}
}

// resolveUser extracts and verifies the bearer token from the request.
func resolveUser(c *gin.Context, tokens *TokenManager) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	userID, err := tokens.Verify(parts[1])
	if err != nil {
		return "", false
	}
	return userID, true
}

// attachUser stores the user ID in the request context and log fields.
func attachUser(c *gin.Context, userID string) {
	ctx := WithUserID(c.Request.Context(), userID)
	ctx = logger.WithField(ctx, logger.FieldUserID, userID)
	c.Request = c.Request.WithContext(ctx)
}
