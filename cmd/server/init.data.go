package main

import (
	"context"
	"time"

	accountmodels "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/models"
	"github.com/YuvrajBundele11/OutboundAPI/internal/database"
	"github.com/YuvrajBundele11/OutboundAPI/internal/global"
	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"
)

// InitDefaultData đảm bảo collection tài khoản tồn tại và có đủ index theo struct tag của model
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("[INIT] Ensuring account collection and indexes...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)
	col, err := database.EnsureCollection(ctx, db, global.MongoDB_ColNames.Accounts)
	if err != nil {
		log.Fatalf("Failed to ensure collection %s: %v", global.MongoDB_ColNames.Accounts, err)
	}

	// sfAccountId: unique + sparse
	if err := database.CreateIndexes(ctx, col, accountmodels.Account{}); err != nil {
		log.Fatalf("Failed to create indexes for %s: %v", global.MongoDB_ColNames.Accounts, err)
	}
	log.Info("[INIT] Account collection ready")
}
