package main

import (
	"strings"
	"time"

	accountrouter "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/router"
	basehdl "github.com/YuvrajBundele11/OutboundAPI/internal/api/base/handler"
	"github.com/YuvrajBundele11/OutboundAPI/internal/api/middleware"
	"github.com/YuvrajBundele11/OutboundAPI/internal/api/router"
	"github.com/YuvrajBundele11/OutboundAPI/internal/common"
	"github.com/YuvrajBundele11/OutboundAPI/internal/global"
	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() *fiber.App {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	app := fiber.New(fiber.Config{
		// =========================================
		// 1. CẤU HÌNH CƠ BẢN
		// =========================================
		AppName:       "Outbound Account API",
		ServerHeader:  "Outbound Account API",
		StrictRouting: false, // /accounts và /accounts/ là một
		CaseSensitive: true,  // /insertAccount khác /insertaccount
		UnescapePath:  true,

		// =========================================
		// 2. CẤU HÌNH PERFORMANCE & TIMEOUT
		// =========================================
		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		// =========================================
		// 3. CẤU HÌNH ERROR HANDLING
		// =========================================
		ErrorHandler: middleware.ErrorHandler,
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID - mỗi request một UUID để trace qua log
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	// 2. CORS - đặt sớm để xử lý preflight trước các middleware khác
	app.Use(cors.New(cors.Config{
		AllowOrigins:     parseOrigins(cfg.CORS_Origins),
		AllowMethods:     []string{"GET", "POST", "PUT", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security Headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Metrics Prometheus
	app.Use(middleware.Metrics())

	// 5. Rate Limiting - chỉ bật khi enable và Max > 0
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return basehdl.JSONResponse(c, common.StatusTooManyRequests, fiber.Map{
					"code":    common.ErrCodeBusinessOperation.Code,
					"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/metrics" || c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 6. Recover
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	// db để nil khi chưa kết nối để health trả về degraded thay vì panic
	var db basehdl.Pinger
	if global.MongoDB_Session != nil {
		db = global.MongoDB_Session
	}
	if err := router.SetupRoutes(app, db, accountrouter.Register); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	return app
}

// parseOrigins tách CORS_ORIGINS theo dấu phẩy; "*" cho phép tất cả
func parseOrigins(origins string) []string {
	if origins == "" || origins == "*" {
		return []string{"*"}
	}
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
