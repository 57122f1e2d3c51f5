// Package accountsvc - Danh bạ tài khoản: tạo, đọc, cập nhật tài khoản theo _id
// hoặc theo Salesforce Id (sfAccountId).
package accountsvc

import (
	"context"

	accountmodels "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/models"
	basesvc "github.com/YuvrajBundele11/OutboundAPI/internal/api/base/service"
	"github.com/YuvrajBundele11/OutboundAPI/internal/api/events"
	"github.com/YuvrajBundele11/OutboundAPI/internal/common"
	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionName là tên collection mặc định khi không truyền qua option
const CollectionName = "account"

// AccountDirectory không giữ trạng thái; mỗi thao tác là một lần làm việc độc lập với kho.
type AccountDirectory struct {
	store      basesvc.DocumentStore[accountmodels.Account]
	collection string
}

// Option tùy chỉnh AccountDirectory
type Option func(*AccountDirectory)

// WithCollectionName đặt tên collection gắn vào event thay đổi dữ liệu
func WithCollectionName(name string) Option {
	return func(d *AccountDirectory) {
		if name != "" {
			d.collection = name
		}
	}
}

// NewAccountDirectory tạo AccountDirectory với kho được truyền vào
func NewAccountDirectory(store basesvc.DocumentStore[accountmodels.Account], opts ...Option) *AccountDirectory {
	d := &AccountDirectory{store: store, collection: CollectionName}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ListAll trả về tất cả tài khoản theo thứ tự duyệt của kho, không phân trang
func (d *AccountDirectory) ListAll(ctx context.Context) ([]accountmodels.Account, error) {
	accounts, err := d.store.FindAll(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return accounts, nil
}

// GetByPrimaryID đọc tài khoản theo _id.
// id sai định dạng trả ErrMalformedIdentifier; không tìm thấy trả nil, nil.
func (d *AccountDirectory) GetByPrimaryID(ctx context.Context, id string) (*accountmodels.Account, error) {
	oid, err := parsePrimaryID(id)
	if err != nil {
		return nil, err
	}

	account, err := d.store.FindOne(ctx, bson.M{accountmodels.FieldID: oid})
	if err != nil {
		return nil, storeError(err)
	}
	return account, nil
}

// CreateAccount kiểm tra rồi chèn một tài khoản, kèm sfAccountId nếu có.
// Không idempotent: cùng payload gọi hai lần tạo hai bản ghi.
func (d *AccountDirectory) CreateAccount(ctx context.Context, input accountmodels.CreateFields) (primitive.ObjectID, error) {
	doc, err := accountmodels.ValidateForCreate(input)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, err := d.store.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, storeError(err)
	}

	doc.ID = id
	d.emit(ctx, events.OpInsert, doc)
	return id, nil
}

// CreateAccountIdempotentByQuery tạo tài khoản theo hai bước riêng biệt:
// chèn ba field bắt buộc, sau đó (nếu có) gắn sfAccountId bằng một lệnh $set thứ hai.
// Hai bước không atomic: bước hai lỗi thì bản ghi đã tạo vẫn còn, không có sfAccountId.
// Lỗi trả về giữ phân loại của lỗi kho (ví dụ trùng sfAccountId là ErrMongoDuplicate)
// và mang insertedId trong Details.
func (d *AccountDirectory) CreateAccountIdempotentByQuery(ctx context.Context, input accountmodels.CreateFields) (primitive.ObjectID, error) {
	externalID := input.ExternalID
	input.ExternalID = ""

	doc, err := accountmodels.ValidateForCreate(input)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, err := d.store.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, storeError(err)
	}
	doc.ID = id
	d.emit(ctx, events.OpInsert, doc)

	if externalID == "" {
		return id, nil
	}

	patch := bson.M{accountmodels.FieldExternalID: externalID}
	if _, err := d.store.UpdateOne(ctx, bson.M{accountmodels.FieldID: id}, patch); err != nil {
		logger.WithContext(ctx).
			WithFields(map[string]interface{}{"module": "account", "collection": d.collection}).
			WithError(err).
			WithField("insertedId", id.Hex()).
			Error("Đã tạo tài khoản nhưng không gắn được sfAccountId")
		return id, common.WithDetails(storeError(err), errDetails{
			"insertedId": id.Hex(),
			"step":       "attach_external_id",
		})
	}

	d.emit(ctx, events.OpUpdate, updateEventDocument(accountmodels.FieldID, id, patch))
	return id, nil
}

// UpdateByPrimaryID merge nông payload vào tài khoản có _id tương ứng.
// Payload không giới hạn field (trừ _id/id và toán tử $). Không khớp bản ghi nào
// không phải lỗi: trả về 0.
func (d *AccountDirectory) UpdateByPrimaryID(ctx context.Context, id string, payload map[string]interface{}) (int64, error) {
	oid, err := parsePrimaryID(id)
	if err != nil {
		return 0, err
	}

	patch, err := accountmodels.SanitizeUpdatePayload(payload)
	if err != nil {
		return 0, err
	}

	result, err := d.store.UpdateOne(ctx, bson.M{accountmodels.FieldID: oid}, patch)
	if err != nil {
		return 0, storeError(err)
	}

	if result.MatchedCount > 0 {
		d.emit(ctx, events.OpUpdate, updateEventDocument(accountmodels.FieldID, oid, patch))
	}
	return result.ModifiedCount, nil
}

// UpdateByExternalID cập nhật accountName/accountEmail/phone của tài khoản có sfAccountId tương ứng.
// Giá trị rỗng bị bỏ qua; lệnh cập nhật vẫn được gửi kể cả khi patch rỗng
// để phân biệt "không tìm thấy" (ErrAccountNotFound) với "không có gì thay đổi" (0).
func (d *AccountDirectory) UpdateByExternalID(ctx context.Context, externalID string, payload map[string]interface{}) (int64, error) {
	if externalID == "" {
		return 0, common.ErrMissingIdentifier
	}

	patch := accountmodels.BuildMergePatch(payload, accountmodels.UpdatableFields)
	if err := accountmodels.CheckFieldTypes(patch); err != nil {
		return 0, err
	}

	result, err := d.store.UpdateOne(ctx, bson.M{accountmodels.FieldExternalID: externalID}, patch)
	if err != nil {
		return 0, storeError(err)
	}
	if result.MatchedCount == 0 {
		return 0, common.WithDetails(common.ErrAccountNotFound, errDetails{
			accountmodels.FieldExternalID: externalID,
		})
	}

	d.emit(ctx, events.OpUpdate, updateEventDocument(accountmodels.FieldExternalID, externalID, patch))
	return result.ModifiedCount, nil
}

func (d *AccountDirectory) emit(ctx context.Context, op string, doc interface{}) {
	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: d.collection,
		Operation:      op,
		Document:       doc,
	})
}

// errDetails là Details dạng map cho lỗi trả về client
type errDetails map[string]interface{}

// updateEventDocument gộp khóa định danh và patch thành document của event update
func updateEventDocument(key string, value interface{}, patch bson.M) bson.M {
	doc := bson.M{key: value, "$set": patch}
	return doc
}

// parsePrimaryID chuyển chuỗi 24 ký tự hex thành ObjectID
func parsePrimaryID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.WithDetails(common.ErrMalformedIdentifier, errDetails{
			accountmodels.FieldID: id,
		})
	}
	return oid, nil
}

// storeError phân loại lỗi từ kho thành lỗi hệ thống
func storeError(err error) error {
	return common.ConvertMongoError(err)
}
