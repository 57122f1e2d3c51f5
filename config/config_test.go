package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "test-không-tồn-tại")
	t.Setenv("MONGODB_CONNECTION_URI", "mongodb://localhost:27017")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Address())
	assert.Equal(t, "accountDB", cfg.MongoDB_DBName)
	assert.Equal(t, "account", cfg.MongoDB_Collection)
	assert.Equal(t, "accounts.events", cfg.AMQP_Exchange)
	assert.Empty(t, cfg.Redis_Addr)
	assert.True(t, cfg.RateLimit_Enabled)
}

func TestNewConfig_MissingMongoURI(t *testing.T) {
	t.Setenv("GO_ENV", "test-không-tồn-tại")
	t.Setenv("MONGODB_CONNECTION_URI", "")
	os.Unsetenv("MONGODB_CONNECTION_URI")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfig_LoadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("MONGODB_CONNECTION_URI=mongodb://file:27017\nPORT=4100\n"), 0o600))

	// godotenv không ghi đè biến đã có, nên đảm bảo hai biến này chưa được đặt
	t.Setenv("MONGODB_CONNECTION_URI", "")
	os.Unsetenv("MONGODB_CONNECTION_URI")
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	t.Cleanup(func() {
		os.Unsetenv("MONGODB_CONNECTION_URI")
		os.Unsetenv("PORT")
	})

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://file:27017", cfg.MongoDB_ConnectionURI)
	assert.Equal(t, 4100, cfg.Port)
}

func TestNewConfig_MissingFileIsNotFatal(t *testing.T) {
	t.Setenv("MONGODB_CONNECTION_URI", "mongodb://env:27017")

	cfg, err := NewConfig(filepath.Join(t.TempDir(), "khong-co.env"))
	require.NoError(t, err)
	assert.Equal(t, "mongodb://env:27017", cfg.MongoDB_ConnectionURI)
}
