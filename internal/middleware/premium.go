package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EntitlementChecker answers whether a user may use premium features
type EntitlementChecker interface {
	IsPremium(ctx context.Context, userID uuid.UUID) bool
}

// RequirePremium rejects requests from users without an active subscription.
// It must run after AuthMiddleware.
func RequirePremium(checker EntitlementChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !checker.IsPremium(c.Request.Context(), userID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "premium_required"})
			return
		}
		c.Next()
	}
}
