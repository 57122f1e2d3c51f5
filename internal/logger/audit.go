package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// LogAction ghi một hành động vào audit log
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	if rid := requestID(c); rid != "" {
		details["request_id"] = rid
	}

	GetAuditLogger().WithFields(logrus.Fields{
		"action":     action,
		"ip":         c.IP(),
		"user_agent": c.Get(fiber.HeaderUserAgent),
		"details":    details,
		"timestamp":  time.Now(),
	}).Info("Audit log")
}

// LogCRUD ghi các thao tác tạo/sửa tài nguyên
func LogCRUD(operation string, resourceType string, resourceID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID

	LogAction("crud_"+operation, c, details)
}
