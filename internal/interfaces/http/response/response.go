package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "charity-pay.backend/internal/domain/errors"
	"charity-pay.backend/internal/domain/gateway"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response derived from the error's type
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		return domainerrors.NewAppError(http.StatusBadGateway, "ERR_GATEWAY", "payment gateway request failed", err)
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidTaxID),
		errors.Is(err, domainerrors.ErrInvalidBankAccount),
		errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrIllegalTransition),
		errors.Is(err, domainerrors.ErrMerchantAttached):
		return domainerrors.Conflict(err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized(err.Error())
	default:
		return domainerrors.InternalError(err)
	}
}

// ErrorWithStatus sends an error response with an explicit status and code
func ErrorWithStatus(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
