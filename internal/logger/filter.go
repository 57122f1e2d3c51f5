package logger

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FilterHook lọc log entries theo module, collection, HTTP method và level.
// Entry không qua filter được đánh dấu "_filtered" để AsyncHook bỏ qua.
// Entry không mang field tương ứng (ví dụ không có "module") thì không bị lọc theo field đó.
type FilterHook struct {
	modules     map[string]bool
	collections map[string]bool
	methods     map[string]bool
	logTypes    map[string]bool

	mu sync.RWMutex
}

// NewFilterHook tạo một filter hook mới với cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	hook := &FilterHook{}
	hook.UpdateFilters(cfg)
	return hook
}

// UpdateFilters cập nhật filters từ config mới (có thể gọi runtime)
func (h *FilterHook) UpdateFilters(cfg *LogConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.modules = parseFilter(cfg.FilterModules)
	h.collections = parseFilter(cfg.FilterCollections)
	h.methods = parseFilter(cfg.FilterMethods)
	h.logTypes = parseFilter(cfg.FilterLogTypes)
}

// parseFilter parse "a,b,c" thành set lowercase. Trả về nil khi cho phép tất cả ("" hoặc "*").
func parseFilter(filterStr string) map[string]bool {
	result := make(map[string]bool)
	for _, v := range strings.Split(filterStr, ",") {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "*" {
			return nil
		}
		if v != "" {
			result[v] = true
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry nếu bị lọc
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.logTypes != nil && !h.logTypes[entry.Level.String()] {
		entry.Data[filteredKey] = true
		return nil
	}

	if !allowed(h.modules, entry.Data["module"]) ||
		!allowed(h.collections, entry.Data["collection"]) ||
		!allowed(h.methods, entry.Data["method"]) {
		entry.Data[filteredKey] = true
	}
	return nil
}

func allowed(set map[string]bool, value interface{}) bool {
	if set == nil {
		return true
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return true
	}
	return set[strings.ToLower(s)]
}
