package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	appctx "github.com/Alejoxd70/sactpaper-stationery/internal/core/context"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/auth"
)

// TokenParser validates bearer tokens. *auth.Service satisfies it.
type TokenParser interface {
	ParseToken(tokenString string) (*auth.Claims, error)
}

// Auth validates the JWT and populates the user context. Invoices and
// stock movements downstream are stamped with this user.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := parser.ParseToken(parts[1])
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		user := &appctx.UserContext{
			UserID:  claims.UserID,
			Email:   claims.Email,
			Name:    claims.Name,
			Role:    claims.Role,
			IsAdmin: claims.IsAdmin,
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)
		c.Set("user_id", user.UserID)

		c.Next()
	}
}

// RequireAdmin blocks non-admin users.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			abortUnauthorized(c, "authentication required")
			return
		}
		if !user.IsAdmin {
			_ = c.Error(apperror.NewForbidden("admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
