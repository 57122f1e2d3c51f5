package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy dịch vụ danh bạ tài khoản
// Nó chứa thông tin cơ sở dữ liệu, HTTP, cache và hàng đợi sự kiện
type Configuration struct {
	Port                  int    `env:"PORT" envDefault:"3000"`                       // Cổng HTTP
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`             // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"accountDB"`        // Tên cơ sở dữ liệu
	MongoDB_Collection    string `env:"MONGODB_COLLECTION" envDefault:"account"`      // Tên collection lưu tài khoản
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`                  // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`    // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`              // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`            // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`         // Bật/tắt rate limiting
	// Redis Configuration (optional - để trống REDIS_ADDR thì không bật cache)
	Redis_Addr     string `env:"REDIS_ADDR"`                        // host:port của Redis
	Redis_Password string `env:"REDIS_PASSWORD"`                    // Mật khẩu Redis
	Redis_DB       int    `env:"REDIS_DB" envDefault:"0"`           // Số database Redis
	Redis_CacheTTL int    `env:"REDIS_CACHE_TTL" envDefault:"300"` // Thời gian sống của cache (giây)
	// AMQP Configuration (optional - để trống AMQP_URL thì không publish sự kiện)
	AMQP_URL      string `env:"AMQP_URL"`                                 // URL RabbitMQ
	AMQP_Exchange string `env:"AMQP_EXCHANGE" envDefault:"accounts.events"` // Exchange nhận sự kiện thay đổi tài khoản
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env, đi dần lên thư mục cha
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// loadEnvFiles nạp các file env nếu tồn tại. Thiếu file không phải lỗi,
// biến môi trường của process là đủ để chạy (ví dụ trong container).
func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = []string{envPath}
		}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("không thể load file env tại %s: %w", f, err)
		}
	}
	return nil
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp (hoặc config/env/<GO_ENV>.env)
// rồi parse từ biến môi trường
func NewConfig(files ...string) (*Configuration, error) {
	if err := loadEnvFiles(files...); err != nil {
		return nil, err
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("lỗi khi parse config: %w", err)
	}

	return &cfg, nil
}

// Address trả về địa chỉ lắng nghe dạng ":<port>"
func (c *Configuration) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
