// Package router thiết lập route gốc của ứng dụng và cung cấp helper đăng ký route cho từng domain.
package router

import (
	basehdl "github.com/YuvrajBundele11/OutboundAPI/internal/api/base/handler"
	"github.com/YuvrajBundele11/OutboundAPI/internal/api/middleware"

	"github.com/gofiber/fiber/v3"
)

// ============================================================================
// LƯU Ý KHI ĐĂNG KÝ MIDDLEWARE THEO ROUTE (Fiber v3)
// ============================================================================
//
// Không truyền middleware trực tiếp vào router.Get(path, mw, handler).
// Dùng RegisterRouteWithMiddleware để middleware được gắn qua .Use() của group.
//
// ============================================================================

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// App trả về fiber app gốc
func (r *Router) App() *fiber.App {
	return r.app
}

// RegisterRouteWithMiddleware đăng ký route với middleware qua .Use() của group. Dùng từ domain router.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case fiber.MethodGet:
		routeGroup.Get(path, handler)
	case fiber.MethodPost:
		routeGroup.Post(path, handler)
	case fiber.MethodPut:
		routeGroup.Put(path, handler)
	case fiber.MethodPatch:
		routeGroup.Patch(path, handler)
	case fiber.MethodDelete:
		routeGroup.Delete(path, handler)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(root fiber.Router, r *Router) error

// SetupRoutes đăng ký /health, /metrics và route của từng domain.
// db có thể nil khi chưa có kết nối MongoDB (health trả về degraded).
func SetupRoutes(app *fiber.App, db basehdl.Pinger, regs ...RegisterFunc) error {
	systemHandler := basehdl.NewSystemHandler(db)
	app.Get("/health", systemHandler.HandleHealth)
	app.Get("/metrics", middleware.MetricsHandler())

	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(app, r); err != nil {
			return err
		}
	}
	return nil
}
