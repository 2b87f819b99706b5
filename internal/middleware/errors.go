package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	custom_error "github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/errors"
)

// InternalError logs the full failure detail server-side and answers with
// the user-safe message plus a correlation id. Raw driver or SQL detail
// never reaches the response body.
func InternalError(c *gin.Context, log *zap.Logger, message string, err error) {
	refID := custom_error.NewReferenceID()
	log.Error(message,
		zap.String("reference_id", refID),
		zap.Error(err))

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": custom_error.SafeMessage(custom_error.Classify(err), refID),
	})
}
