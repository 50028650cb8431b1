package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "mercury-mail.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error onto the wire. Anything that is not an
// AppError is reported as an opaque internal error; the underlying
// cause stays in the logs.
func Error(c *gin.Context, err error) {
	appErr, ok := err.(*domainerrors.AppError)
	if !ok {
		appErr = domainerrors.InternalError("", err)
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message,
	})
}
