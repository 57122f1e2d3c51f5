package middleware

import (
	"errors"

	basehdl "github.com/YuvrajBundele11/OutboundAPI/internal/api/base/handler"
	"github.com/YuvrajBundele11/OutboundAPI/internal/common"
	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// ErrorHandler là fiber ErrorHandler: render mọi lỗi chưa được handler xử lý theo format chuẩn
func ErrorHandler(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		if customErr.StatusCode >= common.StatusInternalServerError {
			logger.WithRequest(c).WithError(err).WithField("details", customErr.Details).Error("Request error")
		}
		return basehdl.ErrorResponse(c, err)
	}

	code := fiber.StatusInternalServerError
	message := common.MsgInternalError
	errorCode := common.ErrCodeInternalServer.Code

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
		switch code {
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			errorCode = common.ErrCodeValidationFormat.Code
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			errorCode = common.ErrCodeDatabaseQuery.Code
		case fiber.StatusTooManyRequests:
			errorCode = common.ErrCodeBusinessOperation.Code
		}
	}

	entry := logger.WithRequest(c).WithFields(map[string]interface{}{
		"code":      code,
		"errorCode": errorCode,
	}).WithError(err)
	if code >= fiber.StatusInternalServerError {
		entry.Error("Request error")
	} else {
		entry.Debug("Request error")
	}

	return basehdl.JSONResponse(c, code, fiber.Map{
		"code":    errorCode,
		"message": message,
		"status":  "error",
	})
}
