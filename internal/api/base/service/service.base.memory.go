package basesvc

import (
	"bytes"
	"context"
	"sync"

	basemodels "github.com/YuvrajBundele11/OutboundAPI/internal/api/base/models"
	"github.com/YuvrajBundele11/OutboundAPI/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore là DocumentStore trong bộ nhớ, giữ document dạng BSON để hành vi
// encode/decode (omitempty, tên field) giống hệt khi đi qua MongoDB.
type MemoryStore[T any] struct {
	mu   sync.RWMutex
	docs []bson.M // theo thứ tự chèn
}

// NewMemoryStore tạo kho rỗng
func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{}
}

// FindAll trả về bản sao tất cả document theo thứ tự chèn
func (s *MemoryStore[T]) FindAll(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]T, 0, len(s.docs))
	for _, doc := range s.docs {
		var item T
		if err := decode(doc, &item); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, nil
}

// FindOne trả về document đầu tiên khớp filter, nil khi không có
func (s *MemoryStore[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, err := s.indexOf(filter)
	if err != nil || idx < 0 {
		return nil, err
	}
	var item T
	if err := decode(s.docs[idx], &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// InsertOne chèn document, cấp _id mới nếu document chưa có
func (s *MemoryStore[T]) InsertOne(ctx context.Context, doc interface{}) (primitive.ObjectID, error) {
	var m bson.M
	if err := decode(doc, &m); err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := m["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		m["_id"] = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, _ := s.indexOf(bson.M{"_id": id}); idx >= 0 {
		return primitive.NilObjectID, common.ErrMongoDuplicate
	}
	s.docs = append(s.docs, m)
	return id, nil
}

// UpdateOne áp dụng $set lên document đầu tiên khớp filter.
// ModifiedCount chỉ bằng 1 khi có ít nhất một giá trị thực sự thay đổi.
func (s *MemoryStore[T]) UpdateOne(ctx context.Context, filter bson.M, patch bson.M) (basemodels.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.indexOf(filter)
	if err != nil || idx < 0 {
		return basemodels.UpdateResult{}, err
	}

	doc := s.docs[idx]
	modified := false
	for key, value := range patch {
		same, err := sameValue(doc[key], value)
		if err != nil {
			return basemodels.UpdateResult{}, err
		}
		if _, exists := doc[key]; exists && same {
			continue
		}
		// Chuẩn hóa giá trị qua BSON để lần đọc sau decode đúng kiểu
		var wrapped bson.M
		if err := decode(bson.M{"v": value}, &wrapped); err != nil {
			return basemodels.UpdateResult{}, err
		}
		doc[key] = wrapped["v"]
		modified = true
	}

	result := basemodels.UpdateResult{MatchedCount: 1}
	if modified {
		result.ModifiedCount = 1
	}
	return result, nil
}

// Len trả về số document đang lưu
func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// indexOf tìm vị trí document đầu tiên khớp tất cả cặp key/value trong filter
func (s *MemoryStore[T]) indexOf(filter bson.M) (int, error) {
	for i, doc := range s.docs {
		match := true
		for key, want := range filter {
			got, exists := doc[key]
			if !exists {
				match = false
				break
			}
			same, err := sameValue(got, want)
			if err != nil {
				return -1, err
			}
			if !same {
				match = false
				break
			}
		}
		if match {
			return i, nil
		}
	}
	return -1, nil
}

// sameValue so sánh hai giá trị theo biểu diễn BSON (kiểu và bytes)
func sameValue(a, b interface{}) (bool, error) {
	ta, da, err := bson.MarshalValue(a)
	if err != nil {
		return false, common.WithDetails(common.ErrInvalidFormat, err)
	}
	tb, db, err := bson.MarshalValue(b)
	if err != nil {
		return false, common.WithDetails(common.ErrInvalidFormat, err)
	}
	return ta == tb && bytes.Equal(da, db), nil
}

// decode chuyển đổi giữa các dạng document thông qua BSON
func decode(in interface{}, out interface{}) error {
	raw, err := bson.Marshal(in)
	if err != nil {
		return common.WithDetails(common.ErrInvalidFormat, err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return common.WithDetails(common.ErrInvalidFormat, err)
	}
	return nil
}
