// Package events cung cấp cơ chế event trung tâm khi dữ liệu thay đổi.
// Service nghiệp vụ phát event sau mỗi thao tác ghi thành công; các phản ứng
// (publish ra RabbitMQ, ...) đăng ký qua OnDataChanged.
package events

import (
	"context"
	"sync"

	"github.com/YuvrajBundele11/OutboundAPI/internal/logger"
)

// OpInsert, OpUpdate là các loại thao tác ghi.
const (
	OpInsert = "insert"
	OpUpdate = "update"
)

// DataChangeEvent mô tả sự kiện thay đổi dữ liệu.
// Với insert, Document là bản ghi vừa tạo; với update, Document là patch kèm khóa định danh.
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	Document       interface{}
}

// DataChangeHandler xử lý sự kiện thay đổi dữ liệu.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

type registration struct {
	id int
	fn DataChangeHandler
}

var (
	handlers   []registration
	nextID     int
	handlersMu sync.RWMutex
)

// OnDataChanged đăng ký handler và trả về hàm hủy đăng ký.
func OnDataChanged(h DataChangeHandler) (unsubscribe func()) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	nextID++
	id := nextID
	handlers = append(handlers, registration{id: id, fn: h})

	return func() {
		handlersMu.Lock()
		defer handlersMu.Unlock()
		for i, r := range handlers {
			if r.id == id {
				handlers = append(handlers[:i], handlers[i+1:]...)
				return
			}
		}
	}
}

// EmitDataChanged phát sự kiện tới mọi handler, mỗi handler chạy trong goroutine riêng.
// Context của request bị hủy khi response trả về nên handler nhận context tách khỏi việc hủy đó.
// Panic trong handler được recover và log, không ảnh hưởng handler khác hay request.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	handlersMu.RLock()
	list := make([]DataChangeHandler, 0, len(handlers))
	for _, r := range handlers {
		list = append(list, r.fn)
	}
	handlersMu.RUnlock()

	detached := context.WithoutCancel(ctx)
	for _, h := range list {
		go func(fn DataChangeHandler) {
			defer func() {
				if r := recover(); r != nil {
					logger.WithModuleAndCollection("events", e.CollectionName).
						WithField("operation", e.Operation).
						Errorf("Data change handler panic: %v", r)
				}
			}()
			fn(detached, e)
		}(h)
	}
}
