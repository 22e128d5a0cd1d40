package utils

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foreman-dev/foreman/internal/apperr"
	"github.com/foreman-dev/foreman/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (types.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return types.AuthenticatedUser{}, apperr.Unauthenticated("User not authenticated")
	}

	authenticatedUser, ok := user.(types.AuthenticatedUser)

	if !ok {
		return types.AuthenticatedUser{}, apperr.Internal("Invalid user type in context", fmt.Errorf("context user has type %T", user))
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// ParseID reads a positive integer path parameter.
func ParseID(ctx *gin.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)

	if err != nil || id == 0 {
		return 0, apperr.Validation("Invalid " + label + " ID")
	}

	return uint(id), nil
}

// ParseOptionalID reads a positive integer query parameter. An absent or
// empty parameter yields zero.
func ParseOptionalID(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Query(name)

	if raw == "" {
		return 0, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)

	if err != nil || id == 0 {
		return 0, apperr.Validation("Invalid " + name)
	}

	return uint(id), nil
}

// Logger returns the request-scoped logger, or the default logger outside a
// request.
func Logger(ctx *gin.Context) *slog.Logger {
	if value, ok := ctx.Get(types.ContextLoggerKey); ok {
		if logger, ok := value.(*slog.Logger); ok {
			return logger
		}
	}

	return slog.Default()
}
