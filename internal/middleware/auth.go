package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foreman-dev/foreman/internal/apperr"
	"github.com/foreman-dev/foreman/internal/auth"
	"github.com/foreman-dev/foreman/internal/types"
	"github.com/foreman-dev/foreman/internal/utils"
)

const (
	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Invalid or expired token"
	msgAdminOnly    = "Access denied. Admin privileges required."
	msgForbidden    = "Access denied"
)

// AuthMiddleware verifies the bearer token and stores the identity it
// carries. The identity is trusted for the token's lifetime; the user row is
// not reloaded.
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		scheme, tokenString, found := strings.Cut(strings.TrimSpace(authHeader), " ")
		tokenString = strings.TrimSpace(tokenString)

		if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			utils.RespondError(ctx, apperr.Unauthenticated(msgNoToken))
			return
		}

		claims, err := issuer.Verify(tokenString)

		if err != nil {
			utils.RespondError(ctx, apperr.Unauthenticated(msgInvalidToken))
			return
		}

		user := claims.Identity()
		ctx.Set(types.ContextUserKey, user)
		ctx.Set(types.ContextLoggerKey, utils.Logger(ctx).With("user_id", user.ID))
		ctx.Next()
	}
}

// RequireRole rejects identities whose role differs from role.
func RequireRole(role types.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utils.GetCurrentUser(ctx)

		if err != nil {
			utils.RespondError(ctx, err)
			return
		}

		if user.Role != role {
			utils.RespondError(ctx, apperr.Forbidden(msgAdminOnly))
			return
		}

		ctx.Next()
	}
}

// SelfOrAdmin lets an admin through for any id and everyone else only for
// their own id in the named path parameter.
func SelfOrAdmin(param string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utils.GetCurrentUser(ctx)

		if err != nil {
			utils.RespondError(ctx, err)
			return
		}

		if user.IsAdmin() {
			ctx.Next()
			return
		}

		id, err := utils.ParseID(ctx, param, "Employee")

		if err != nil {
			utils.RespondError(ctx, err)
			return
		}

		if id != user.ID {
			utils.RespondError(ctx, apperr.Forbidden(msgForbidden))
			return
		}

		ctx.Next()
	}
}
