package main

import (
	"context"
	"time"

	"github.com/YuvrajBundele11/OutboundAPI/config"
	"github.com/YuvrajBundele11/OutboundAPI/internal/database"
	"github.com/YuvrajBundele11/OutboundAPI/internal/global"
	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initConfig()           // Khởi tạo cấu hình server
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initRedis()            // Khởi tạo cache Redis (tùy chọn)
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize config: %v", err)
	}
	global.MongoDB_ServerConfig = cfg
	logger.GetAppLogger().Info("Initialized server config")
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Accounts = global.MongoDB_ServerConfig.MongoDB_Collection
	logger.GetAppLogger().Info("Initialized collection names")
}

// Hàm khởi tạo validator
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Initialized validator")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	log := logger.GetAppLogger()

	client, err := database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	global.MongoDB_Session = client
	log.Info("Connected to MongoDB")
}

// Hàm khởi tạo Redis; để trống REDIS_ADDR thì bỏ qua cache
func initRedis() {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig
	if cfg.Redis_Addr == "" {
		log.Info("Redis cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis_Addr,
		Password: cfg.Redis_Password,
		DB:       cfg.Redis_DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis không phản hồi, chạy không có cache")
		_ = client.Close()
		return
	}

	global.Redis_Client = client
	log.WithField("addr", cfg.Redis_Addr).Info("Connected to Redis")
}
