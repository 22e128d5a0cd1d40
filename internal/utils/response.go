package utils

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/foreman-dev/foreman/internal/apperr"
)

const internalErrorMessage = "Internal server error"

// RespondError writes err as a JSON error body. Errors outside the apperr
// taxonomy are treated as internal. Internal causes are logged and never
// sent to the client.
func RespondError(ctx *gin.Context, err error) {
	var appErr *apperr.Error

	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(internalErrorMessage, err)
	}

	status := appErr.Kind.HTTPStatus()

	if appErr.Kind == apperr.KindInternal {
		Logger(ctx).Error(appErr.Message, "error", appErr.Err)
		ctx.AbortWithStatusJSON(status, gin.H{"error": appErr.Message})
		return
	}

	body := gin.H{"error": appErr.Message}

	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}

	ctx.AbortWithStatusJSON(status, body)
}
