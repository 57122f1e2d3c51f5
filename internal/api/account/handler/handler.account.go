// Package accounthdl - Handler HTTP cho danh bạ tài khoản.
package accounthdl

import (
	"errors"

	accountdto "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/dto"
	accountsvc "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/service"
	basehdl "github.com/YuvrajBundele11/OutboundAPI/internal/api/base/handler"
	"github.com/YuvrajBundele11/OutboundAPI/internal/api/middleware"
	"github.com/YuvrajBundele11/OutboundAPI/internal/common"
	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"

	"github.com/gofiber/fiber/v3"
)

const resourceType = "account"

// AccountHandler xử lý các route của danh bạ tài khoản.
type AccountHandler struct {
	Directory *accountsvc.AccountDirectory
}

// NewAccountHandler tạo AccountHandler mới.
func NewAccountHandler(directory *accountsvc.AccountDirectory) (*AccountHandler, error) {
	if directory == nil {
		return nil, errors.New("account directory chưa được khởi tạo")
	}
	return &AccountHandler{Directory: directory}, nil
}

// HandleList xử lý GET /accounts.
func (h *AccountHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		accounts, err := h.Directory.ListAll(logger.RequestContext(c))
		return h.respond(c, "list", accounts, err)
	})
}

// HandleGetByID xử lý GET /accounts/:id. Không tìm thấy trả data null.
func (h *AccountHandler) HandleGetByID(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		account, err := h.Directory.GetByPrimaryID(logger.RequestContext(c), c.Params("id"))
		if err == nil && account == nil {
			middleware.RecordAccountOperation("get", "not_found")
			return basehdl.HandleResponse(c, nil, nil)
		}
		return h.respond(c, "get", account, err)
	})
}

// HandleCreate xử lý POST /accounts với JSON body.
func (h *AccountHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input accountdto.AccountCreateInput
		if err := decodeBody(c, &input); err != nil {
			return h.respond(c, "create", nil, err)
		}

		id, err := h.Directory.CreateAccount(logger.RequestContext(c), input.Fields())
		if err != nil {
			return h.respond(c, "create", nil, err)
		}

		logger.LogCRUD("create", resourceType, id.Hex(), c, nil)
		return h.respond(c, "create", accountdto.InsertedResponse{InsertedID: id.Hex()}, nil)
	})
}

// HandleInsertByQuery xử lý GET /insertAccount.
// Field lấy từ query string, field nào thiếu thì lấy từ body (nếu có).
func (h *AccountHandler) HandleInsertByQuery(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var fromQuery accountdto.AccountCreateInput
		if err := c.Bind().Query(&fromQuery); err != nil {
			return h.respond(c, "create_by_query", nil, common.WithDetails(common.ErrInvalidFormat, err.Error()))
		}

		var fromBody accountdto.AccountCreateInput
		if err := decodeBody(c, &fromBody); err != nil {
			return h.respond(c, "create_by_query", nil, err)
		}
		input := fromQuery.MergeMissing(fromBody)

		id, err := h.Directory.CreateAccountIdempotentByQuery(logger.RequestContext(c), input.Fields())
		if err != nil {
			return h.respond(c, "create_by_query", nil, err)
		}

		logger.LogCRUD("create", resourceType, id.Hex(), c, map[string]interface{}{
			"sfAccountId": input.ExternalID,
		})
		return h.respond(c, "create_by_query", accountdto.InsertedResponse{InsertedID: id.Hex()}, nil)
	})
}

// HandleUpdateByID xử lý PUT /accounts/:id: merge body vào bản ghi.
func (h *AccountHandler) HandleUpdateByID(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id := c.Params("id")
		payload := map[string]interface{}{}
		if err := decodeBody(c, &payload); err != nil {
			return h.respond(c, "update", nil, err)
		}

		modified, err := h.Directory.UpdateByPrimaryID(logger.RequestContext(c), id, payload)
		if err != nil {
			return h.respond(c, "update", nil, err)
		}

		logger.LogCRUD("update", resourceType, id, c, map[string]interface{}{"modifiedCount": modified})
		return h.respond(c, "update", accountdto.ModifiedResponse{ModifiedCount: modified}, nil)
	})
}

// HandleUpdateByExternalID xử lý PUT /updateAccount?sfId=...
func (h *AccountHandler) HandleUpdateByExternalID(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var params accountdto.AccountExternalUpdateParams
		if err := c.Bind().Query(&params); err != nil {
			return h.respond(c, "update_by_external_id", nil, common.WithDetails(common.ErrInvalidFormat, err.Error()))
		}

		modified, err := h.Directory.UpdateByExternalID(logger.RequestContext(c), params.ExternalID, params.Payload())
		if err != nil {
			return h.respond(c, "update_by_external_id", nil, err)
		}

		logger.LogCRUD("update", resourceType, params.ExternalID, c, map[string]interface{}{"modifiedCount": modified})
		return h.respond(c, "update_by_external_id", accountdto.ModifiedResponse{ModifiedCount: modified}, nil)
	})
}

// respond ghi metric, log lỗi phía server rồi render response
func (h *AccountHandler) respond(c fiber.Ctx, operation string, data interface{}, err error) error {
	switch {
	case err == nil:
		middleware.RecordAccountOperation(operation, "success")
	case errors.Is(err, common.ErrAccountNotFound):
		middleware.RecordAccountOperation(operation, "not_found")
	default:
		middleware.RecordAccountOperation(operation, "error")
		if common.IsStoreError(err) {
			var appErr *common.Error
			entry := logger.WithRequestInfo(c, "account", "").WithField("operation", operation).WithError(err)
			if errors.As(err, &appErr) {
				entry = entry.WithField("details", appErr.Details)
			}
			entry.Error("Lỗi kho dữ liệu tài khoản")
		}
	}
	return basehdl.HandleResponse(c, data, err)
}

// decodeBody parse JSON body vào out. Body rỗng được coi là không có dữ liệu.
func decodeBody(c fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		return common.WithDetails(common.ErrInvalidFormat, "Dữ liệu gửi lên không đúng định dạng JSON")
	}
	return nil
}
