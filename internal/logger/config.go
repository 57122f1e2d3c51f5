package logger

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	// Log Level: trace, debug, info, warn, error, fatal
	Level string `env:"LOG_LEVEL"`

	// Log Format: json, text
	Format string `env:"LOG_FORMAT"`

	// Log Output: file, stdout, both
	Output string `env:"LOG_OUTPUT" envDefault:"stdout"`

	// Log Rotation
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"`   // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"` // Số file cũ giữ lại
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"`      // Số ngày giữ lại
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`  // Nén file cũ

	// Log Paths
	LogPath   string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile   string `env:"LOG_APP_FILE" envDefault:"app.log"`
	AuditFile string `env:"LOG_AUDIT_FILE" envDefault:"audit.log"`

	// Log Filters: danh sách phân cách bởi dấu phẩy, rỗng hoặc "*" = tất cả
	FilterModules     string `env:"LOG_FILTER_MODULES" envDefault:"*"`
	FilterCollections string `env:"LOG_FILTER_COLLECTIONS" envDefault:"*"`
	FilterMethods     string `env:"LOG_FILTER_METHODS" envDefault:"*"`
	FilterLogTypes    string `env:"LOG_FILTER_LOG_TYPES" envDefault:"*"`
}

// DefaultConfig trả về cấu hình đọc từ biến môi trường.
// Level và Format để trống sẽ được chọn theo GO_ENV (development: debug/text, còn lại: info/json).
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{}
	if err := env.Parse(cfg); err != nil {
		// Giá trị sai kiểu (ví dụ LOG_MAX_SIZE=abc) thì quay về mặc định thay vì chặn khởi động
		cfg = &LogConfig{
			Output:            "stdout",
			MaxSize:           100,
			MaxBackups:        7,
			MaxAge:            7,
			Compress:          true,
			LogPath:           "./logs",
			AppFile:           "app.log",
			AuditFile:         "audit.log",
			FilterModules:     "*",
			FilterCollections: "*",
			FilterMethods:     "*",
			FilterLogTypes:    "*",
		}
	}

	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}
	if cfg.Level == "" {
		cfg.Level = "info"
		if goEnv == "development" {
			cfg.Level = "debug"
		}
	}
	if cfg.Format == "" {
		cfg.Format = "json"
		if goEnv == "development" {
			cfg.Format = "text"
		}
	}

	cfg.Level = strings.ToLower(cfg.Level)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Output = strings.ToLower(cfg.Output)
	return cfg
}
