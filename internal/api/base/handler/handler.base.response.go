package basehdl

import (
	"errors"
	"fmt"

	"github.com/YuvrajBundele11/OutboundAPI/internal/common"
	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set(fiber.HeaderContentType, "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// ErrorResponse render lỗi theo format chuẩn. Lỗi không phải *common.Error được coi là lỗi hệ thống.
func ErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		body := fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"status":  "error",
		}
		// Lỗi driver chỉ được log, không trả nguyên văn cho client
		if _, isCause := customErr.Details.(error); !isCause && customErr.Details != nil {
			body["details"] = customErr.Details
		}
		return JSONResponse(c, customErr.StatusCode, body)
	}

	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": common.MsgInternalError,
		"status":  "error",
	})
}

// SafeHandlerWrapper chạy fn và chuyển panic thành lỗi 500 theo format chuẩn
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("panic", r).Error("Handler panic")
			err = ErrorResponse(c, common.NewError(
				common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError,
				fmt.Errorf("panic: %v", r),
			))
		}
	}()
	return fn()
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
//
// Parameters:
// - c: Fiber context
// - data: Dữ liệu trả về cho client (có thể là nil)
// - err: Lỗi nếu có
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return ErrorResponse(c, err)
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}
