package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/storely/store-rating-service/internal/auth"
	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/repositories"
)

// AuthMiddleware verifies bearer tokens and gates routes by role.
type AuthMiddleware struct {
	tokens   *auth.TokenManager
	userRepo repositories.UserRepository
}

func NewAuthMiddleware(tokens *auth.TokenManager, userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, userRepo: userRepo}
}

// RequireAuth rejects the request unless a valid token names a user that
// still exists. On success it sets user_id, user, user_role and user_email.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failure("Authorization header missing or malformed"))
			return
		}

		claims, err := am.tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failure("Invalid or expired token"))
			return
		}

		// Tokens outlive accounts; deleted users must not keep access.
		user, err := am.userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failure("Invalid or expired token"))
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)
		c.Set("user_email", user.Email)
		c.Next()
	}
}

// OptionalAuth sets the user context when a valid token is present and
// silently continues otherwise. Used on the public store reads so the
// response can carry the caller's own rating.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := am.tokens.Verify(token)
		if err != nil {
			c.Next()
			return
		}

		user, err := am.userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err == nil {
			c.Set("user_id", user.ID)
			c.Set("user", user)
			c.Set("user_role", user.Role)
			c.Set("user_email", user.Email)
		}
		c.Next()
	}
}

// RequireRoles allows only the named roles through. Membership is exact:
// ADMIN passes an ADMIN-gated route, not a USER-gated one.
func (am *AuthMiddleware) RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("user_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, failure("You do not have permission to perform this action"))
			return
		}

		role, ok := v.(models.UserRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, failure("You do not have permission to perform this action"))
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, failure("You do not have permission to perform this action"))
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// CurrentUserIDFromContext reads the authenticated user id, when set.
func CurrentUserIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
