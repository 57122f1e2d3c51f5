package global

import (
	"github.com/YuvrajBundele11/OutboundAPI/config"
	"github.com/YuvrajBundele11/OutboundAPI/internal/registry"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Accounts string // Tên collection cho tài khoản
}

// Các biến toàn cục
var Validate *validator.Validate                 // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration   // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName      // Tên các collection
var Redis_Client *redis.Client                   // Client Redis, nil khi không cấu hình cache

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
