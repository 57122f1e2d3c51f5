package basesvc

import (
	"context"
	"errors"
	"time"

	basemodels "github.com/YuvrajBundele11/OutboundAPI/internal/api/base/models"
	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CachedStore bọc một DocumentStore bằng cache Redis cho các lần đọc theo _id.
// Mọi cập nhật đều xóa key của document bị ảnh hưởng; lỗi Redis chỉ được log, không làm hỏng thao tác.
type CachedStore[T any] struct {
	inner     DocumentStore[T]
	client    redis.UniversalClient
	ttl       time.Duration
	keyPrefix string
}

// NewCachedStore tạo cache decorator. keyPrefix thường là tên collection.
func NewCachedStore[T any](inner DocumentStore[T], client redis.UniversalClient, keyPrefix string, ttl time.Duration) *CachedStore[T] {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedStore[T]{
		inner:     inner,
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

func (s *CachedStore[T]) key(id primitive.ObjectID) string {
	return s.keyPrefix + ":id:" + id.Hex()
}

// FindAll không dùng cache
func (s *CachedStore[T]) FindAll(ctx context.Context) ([]T, error) {
	return s.inner.FindAll(ctx)
}

// FindOne đọc từ cache khi filter chỉ theo _id, miss thì đọc kho gốc rồi ghi cache.
// Kết quả "không tìm thấy" không được cache.
func (s *CachedStore[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	id, byID := idFromFilter(filter)
	if !byID || len(filter) != 1 {
		return s.inner.FindOne(ctx, filter)
	}

	key := s.key(id)
	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var item T
		if err := bson.Unmarshal(raw, &item); err == nil {
			return &item, nil
		}
		// Dữ liệu cache hỏng thì bỏ và đọc lại
		s.client.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		s.log().WithError(err).Warn("Không đọc được cache, đọc trực tiếp từ kho")
	}

	item, err := s.inner.FindOne(ctx, filter)
	if err != nil || item == nil {
		return item, err
	}

	if data, err := bson.Marshal(item); err == nil {
		if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
			s.log().WithError(err).Warn("Không ghi được cache")
		}
	}
	return item, nil
}

// InsertOne ghi thẳng vào kho gốc
func (s *CachedStore[T]) InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error) {
	return s.inner.InsertOne(ctx, doc)
}

// UpdateOne cập nhật kho gốc rồi xóa cache của document bị ảnh hưởng.
// Với filter không theo _id (ví dụ sfAccountId), _id được tra trước khi cập nhật.
func (s *CachedStore[T]) UpdateOne(ctx context.Context, filter bson.M, patch bson.M) (basemodels.UpdateResult, error) {
	id, byID := idFromFilter(filter)
	if !byID {
		if current, err := s.inner.FindOne(ctx, filter); err == nil && current != nil {
			id, byID = idOfDocument(current)
		}
	}

	result, err := s.inner.UpdateOne(ctx, filter, patch)
	if err != nil {
		return result, err
	}

	if byID && result.MatchedCount > 0 {
		if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
			s.log().WithError(err).Warn("Không xóa được cache sau khi cập nhật")
		}
	}
	return result, nil
}

func (s *CachedStore[T]) log() *logrus.Entry {
	return logger.WithModuleAndCollection("cache", s.keyPrefix)
}
