package basehdl

import (
	"context"
	"time"

	"github.com/YuvrajBundele11/OutboundAPI/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Pinger là phần của *mongo.Client dùng cho health check
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct {
	db Pinger
}

// NewSystemHandler tạo SystemHandler; db có thể nil khi chưa kết nối
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// HandleHealth kiểm tra tình trạng API và kết nối MongoDB
// @Router /health [get]
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	if h.db == nil {
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
		return HandleResponse(c, healthData, nil)
	}

	if err := h.db.Ping(ctx, nil); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		healthData["database_error"] = err.Error()
		return JSONResponse(c, common.StatusServiceUnavailable, fiber.Map{
			"code":    common.StatusServiceUnavailable,
			"message": "Hệ thống đang gặp sự cố",
			"data":    healthData,
			"status":  "error",
		})
	}

	services["database"] = "ok"
	return HandleResponse(c, healthData, nil)
}
