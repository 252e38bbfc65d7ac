package middleware

import (
	"errors"
	"strings"

	"github.com/Govind-619/BuyMeAChai/identity"
	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/gin-gonic/gin"
)

// UserKey is the gin context key holding the authenticated *identity.Identity
const UserKey = "user"

// MsgMissingToken is sent when no usable bearer token was presented
const MsgMissingToken = "Unauthorized: Missing or invalid token"

// AuthMiddleware requires a bearer token accepted by provider
func AuthMiddleware(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.LogDebug("AuthMiddleware called")

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogError("Missing Authorization header")
			utils.RespondError(c, utils.UnauthorizedError(MsgMissingToken, nil))
			c.Abort()
			return
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		tokenString = strings.TrimSpace(tokenString)
		if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			utils.LogError("Invalid Bearer token format")
			utils.RespondError(c, utils.UnauthorizedError(MsgMissingToken, nil))
			c.Abort()
			return
		}

		user, err := provider.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, identity.ErrProviderUnavailable) {
				utils.LogError("Authentication error: %v", err)
				utils.InternalServerError(c, "Internal server error")
				c.Abort()
				return
			}
			utils.LogError("Invalid token: %v", err)
			utils.RespondError(c, utils.UnauthorizedError("Unauthorized: Invalid token", err))
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		utils.LogDebug("User %s authenticated successfully", user.ID)
		c.Next()
	}
}

// AdminMiddleware allows only the listed user ids. It must run after AuthMiddleware.
func AdminMiddleware(adminIDs []string) gin.HandlerFunc {
	admins := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.LogError("User not found in context")
			utils.RespondError(c, utils.UnauthorizedError(MsgMissingToken, nil))
			c.Abort()
			return
		}
		if _, ok := admins[user.ID]; !ok {
			utils.LogError("Non-admin user attempted admin access: %s", user.ID)
			utils.RespondError(c, utils.ForbiddenError("Admin access required", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity set by AuthMiddleware
func CurrentUser(c *gin.Context) (*identity.Identity, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*identity.Identity)
	return user, ok && user != nil
}
