package basesvc

import (
	"context"
	"errors"
	"fmt"

	basemodels "github.com/YuvrajBundele11/OutboundAPI/internal/api/base/models"
	"github.com/YuvrajBundele11/OutboundAPI/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseServiceMongoImpl triển khai DocumentStore trên một collection MongoDB
// Type Parameters:
//   - T: Kiểu dữ liệu của model
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection // Collection MongoDB
}

// NewBaseServiceMongo tạo mới một BaseServiceMongoImpl
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// Collection trả về collection MongoDB
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// FindAll tìm tất cả bản ghi trong collection
func (s *BaseServiceMongoImpl[T]) FindAll(ctx context.Context) ([]T, error) {
	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find())
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []T
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	// Đảm bảo luôn trả về mảng, không phải nil
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// FindOne tìm một bản ghi theo filter, trả về nil khi không tìm thấy
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	if filter == nil {
		filter = bson.M{}
	}

	var result T
	if err := s.collection.FindOne(ctx, filter).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, common.ConvertMongoError(err)
	}
	return &result, nil
}

// InsertOne chèn một document và trả về _id được cấp
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error) {
	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, common.ConvertMongoError(err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, common.WithDetails(common.ErrStoreUnavailable,
			fmt.Errorf("insertedId có kiểu %T, cần ObjectID", result.InsertedID))
	}
	return id, nil
}

// UpdateOne cập nhật document đầu tiên khớp filter bằng $set.
// Patch rỗng vẫn được "thực thi": chỉ đếm số document khớp, ModifiedCount = 0.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter bson.M, patch bson.M) (basemodels.UpdateResult, error) {
	if filter == nil {
		filter = bson.M{}
	}

	if len(patch) == 0 {
		matched, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return basemodels.UpdateResult{}, common.ConvertMongoError(err)
		}
		return basemodels.UpdateResult{MatchedCount: matched}, nil
	}

	result, err := s.collection.UpdateOne(ctx, filter, bson.M{"$set": patch}, options.Update().SetUpsert(false))
	if err != nil {
		return basemodels.UpdateResult{}, common.ConvertMongoError(err)
	}
	return basemodels.UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}
