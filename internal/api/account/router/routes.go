// Package router đăng ký các route thuộc domain danh bạ tài khoản.
package router

import (
	"fmt"

	accounthdl "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/handler"
	accountsvc "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/service"
	apirouter "github.com/YuvrajBundele11/OutboundAPI/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register tạo AccountHandler trên collection đã đăng ký và gắn route lên root.
func Register(root fiber.Router, r *apirouter.Router) error {
	directory, err := accountsvc.NewAccountDirectoryFromRegistry()
	if err != nil {
		return fmt.Errorf("tạo AccountDirectory: %w", err)
	}
	handler, err := accounthdl.NewAccountHandler(directory)
	if err != nil {
		return fmt.Errorf("tạo AccountHandler: %w", err)
	}

	Mount(root, handler)
	return nil
}

// Mount gắn các route tài khoản của handler lên root.
func Mount(root fiber.Router, h *accounthdl.AccountHandler) {
	var none []fiber.Handler

	// GET /accounts
	apirouter.RegisterRouteWithMiddleware(root, "/accounts", fiber.MethodGet, "/", none, h.HandleList)
	// GET /accounts/:id
	apirouter.RegisterRouteWithMiddleware(root, "/accounts", fiber.MethodGet, "/:id", none, h.HandleGetByID)
	// POST /accounts (JSON body, sfAccountId tùy chọn)
	apirouter.RegisterRouteWithMiddleware(root, "/accounts", fiber.MethodPost, "/", none, h.HandleCreate)
	// PUT /accounts/:id (JSON body, merge nông)
	apirouter.RegisterRouteWithMiddleware(root, "/accounts", fiber.MethodPut, "/:id", none, h.HandleUpdateByID)

	// GET /insertAccount?accountName=&accountEmail=&phone=&sfAccountId= (field thiếu lấy từ body)
	apirouter.RegisterRouteWithMiddleware(root, "", fiber.MethodGet, "/insertAccount", none, h.HandleInsertByQuery)
	// PUT /updateAccount?sfId=&accountName=&accountEmail=&phone=
	apirouter.RegisterRouteWithMiddleware(root, "", fiber.MethodPut, "/updateAccount", none, h.HandleUpdateByExternalID)
}
