// Package basesvc cung cấp các kho document dùng chung: MongoDB, bộ nhớ trong và cache Redis.
package basesvc

import (
	"context"

	basemodels "github.com/YuvrajBundele11/OutboundAPI/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentStore là kho document tối thiểu mà các service nghiệp vụ cần.
// Filter là so khớp chính xác trên field top-level (ví dụ "_id" hoặc "sfAccountId").
type DocumentStore[T any] interface {
	// FindAll trả về tất cả document theo thứ tự duyệt của kho
	FindAll(ctx context.Context) ([]T, error)
	// FindOne trả về nil, nil khi không có document khớp
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	// InsertOne chèn document và trả về _id do kho cấp
	InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error)
	// UpdateOne áp dụng $set (merge nông) lên document đầu tiên khớp filter
	UpdateOne(ctx context.Context, filter bson.M, patch bson.M) (basemodels.UpdateResult, error)
}

// idFromFilter trả về _id nếu filter chỉ định danh theo _id
func idFromFilter(filter bson.M) (primitive.ObjectID, bool) {
	id, ok := filter["_id"].(primitive.ObjectID)
	return id, ok && !id.IsZero()
}

// idOfDocument lấy _id của một document bất kỳ bằng cách marshal qua BSON
func idOfDocument(doc interface{}) (primitive.ObjectID, bool) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return primitive.NilObjectID, false
	}
	id, ok := bson.Raw(raw).Lookup("_id").ObjectIDOK()
	return id, ok
}
