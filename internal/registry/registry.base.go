// Package registry cung cấp registry generic, thread-safe để giữ các handle dùng chung
// của process (collection MongoDB, ...) theo tên.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Registry lưu các item theo tên, an toàn khi dùng đồng thời.
//
// Example:
//
//	colRegistry := NewRegistry[*mongo.Collection]()
//	colRegistry.Register("account", db.Collection("account"))
//	if col, ok := colRegistry.Get("account"); ok {
//	    ...
//	}
type Registry[T any] struct {
	items map[string]T // Map lưu trữ các items theo key
	mu    sync.RWMutex // Mutex để đảm bảo thread-safety
}

// NewRegistry tạo và trả về một registry rỗng
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký một item mới vào registry, ghi đè nếu tên đã tồn tại.
//
// Returns:
//   - isNew: true nếu là item mới, false nếu ghi đè item cũ
//   - err: lỗi nếu name rỗng
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("registry: name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// MustGet lấy item theo tên, trả lỗi nếu chưa được đăng ký
func (r *Registry[T]) MustGet(name string) (T, error) {
	item, ok := r.Get(name)
	if !ok {
		return item, fmt.Errorf("registry: %q chưa được đăng ký", name)
	}
	return item, nil
}

// Names trả về danh sách tên đã đăng ký, đã sắp xếp
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClearAll xóa tất cả items trong registry và trả về số lượng đã xóa
func (r *Registry[T]) ClearAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := len(r.items)
	r.items = make(map[string]T)
	return count
}
