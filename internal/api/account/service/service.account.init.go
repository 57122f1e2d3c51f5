package accountsvc

import (
	"fmt"
	"time"

	accountmodels "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/models"
	basesvc "github.com/YuvrajBundele11/OutboundAPI/internal/api/base/service"
	"github.com/YuvrajBundele11/OutboundAPI/internal/common"
	"github.com/YuvrajBundele11/OutboundAPI/internal/global"
)

// NewAccountDirectoryFromRegistry tạo AccountDirectory trên collection tài khoản đã đăng ký.
// Khi global.Redis_Client có giá trị, kho được bọc bởi cache Redis.
func NewAccountDirectoryFromRegistry() (*AccountDirectory, error) {
	name := global.MongoDB_ColNames.Accounts
	if name == "" {
		name = CollectionName
	}

	col, err := global.RegistryCollections.MustGet(name)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", name, common.ErrStoreUnavailable)
	}

	var store basesvc.DocumentStore[accountmodels.Account] = basesvc.NewBaseServiceMongo[accountmodels.Account](col)
	if global.Redis_Client != nil {
		ttl := 5 * time.Minute
		if cfg := global.MongoDB_ServerConfig; cfg != nil && cfg.Redis_CacheTTL > 0 {
			ttl = time.Duration(cfg.Redis_CacheTTL) * time.Second
		}
		store = basesvc.NewCachedStore(store, global.Redis_Client, name, ttl)
	}

	return NewAccountDirectory(store, WithCollectionName(name)), nil
}
