package main

import (
	"github.com/YuvrajBundele11/OutboundAPI/internal/api/events"
	"github.com/YuvrajBundele11/OutboundAPI/internal/global"
	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// InitRegistry đăng ký collection vào registry và gắn publisher sự kiện (nếu có cấu hình)
func InitRegistry() (cleanup func()) {
	log := logger.GetAppLogger()

	if err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig.MongoDB_DBName); err != nil {
		log.Fatalf("Failed to initialize collections: %v", err)
	}
	log.Info("Initialized collection registry")

	return initEventPublisher()
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	colNames := []string{global.MongoDB_ColNames.Accounts}

	log := logger.GetAppLogger()
	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			log.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			log.Infof("Collection %s registered successfully", name)
		} else {
			log.Warnf("Collection %s already registered", name)
		}
	}

	return nil
}

// initEventPublisher publish sự kiện thay đổi tài khoản ra RabbitMQ khi AMQP_URL được cấu hình
func initEventPublisher() (cleanup func()) {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig
	if cfg.AMQP_URL == "" {
		log.Info("AMQP publisher disabled")
		return func() {}
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQP_URL, cfg.AMQP_Exchange)
	if err != nil {
		log.WithError(err).Warn("Không kết nối được RabbitMQ, bỏ qua publish sự kiện")
		return func() {}
	}

	unsubscribe := events.OnDataChanged(publisher.Handle)
	log.WithField("exchange", cfg.AMQP_Exchange).Info("AMQP publisher enabled")

	return func() {
		unsubscribe()
		if err := publisher.Close(); err != nil {
			log.WithError(err).Warn("Đóng AMQP publisher lỗi")
		}
	}
}
