package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YuvrajBundele11/OutboundAPI/internal/database"
	"github.com/YuvrajBundele11/OutboundAPI/internal/global"
	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server cho đến khi nhận tín hiệu dừng
func main_thread() {
	app := InitFiberApp()
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	go func() {
		log.WithFields(map[string]interface{}{
			"address":  cfg.Address(),
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")

		if err := app.Listen(cfg.Address(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("Server shutdown error")
	}
}

// Hàm main
func main() {
	initLogger()
	defer logger.Shutdown()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo collection và index
	InitDefaultData()

	// Khởi tạo registry và publisher sự kiện
	cleanup := InitRegistry()

	main_thread()

	cleanup()
	if global.Redis_Client != nil {
		_ = global.Redis_Client.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.CloseInstance(ctx, global.MongoDB_Session); err != nil {
		logger.GetAppLogger().WithError(err).Warn("Đóng kết nối MongoDB lỗi")
	}
}
