package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "repair-system/pkg/errors"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Body    interface{} `json:"body,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HttpResponse{
		Status:  true,
		Message: message,
		Body:    body,
	})
}

// ErrorResponse maps an error to a JSON envelope. HttpError carries its own
// status code and user message; everything else is answered as a 500 with a
// generic message, the cause goes to the log only.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = httpErr.Message
		if httpErr.Err != nil {
			logger.Error("request failed", zap.Int("code", code), zap.String("message", message), zap.Error(httpErr.Err))
		}
	} else {
		logger.Error("unhandled error", zap.Error(err))
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Message: message,
	})
}
