package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// filteredKey là field FilterHook dùng để đánh dấu entry cần bỏ qua
const filteredKey = "_filtered"

// AsyncHook ghi log bất đồng bộ ra nhiều writers trong một goroutine riêng.
// Khi buffer đầy entry mới bị bỏ qua, request không bao giờ bị block vì log.
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
}

// NewAsyncHookWithWriters tạo một async hook mới với nhiều writers
// bufferSize: kích thước buffer cho log entries (mặc định 1000)
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đưa entry vào buffer, không block
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		// Hook đã đóng thì ghi thẳng
		h.write(entry)
		return nil
	}

	select {
	case h.entries <- entry:
	default:
	}
	return nil
}

// processEntries xử lý log entries, recover để panic trong formatter không làm sập server
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Không dùng logger ở đây để tránh vòng lặp
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] Logger goroutine panic recovered: %v\n", r)
					debug.PrintStack()
				}
			}()
			h.write(entry)
		}()
	}
}

func (h *AsyncHook) write(entry *logrus.Entry) {
	if filtered, ok := entry.Data[filteredKey].(bool); ok && filtered {
		return
	}
	if _, ok := entry.Data[filteredKey]; ok {
		entry = cloneWithout(entry, filteredKey)
	}

	var data []byte
	var err error
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		data, err = entry.Logger.Formatter.Format(entry)
	} else {
		var line string
		line, err = entry.String()
		data = []byte(line)
	}
	if err != nil {
		return
	}

	for _, w := range h.writers {
		// Một writer lỗi không chặn các writer còn lại
		_, _ = w.Write(data)
	}
}

// Close đóng hook và đợi tất cả entries được xử lý xong
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}

// cloneWithout sao chép entry (giữ level, message, caller) và bỏ một field khỏi Data
func cloneWithout(entry *logrus.Entry, key string) *logrus.Entry {
	cp := *entry
	cp.Data = make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		if k != key {
			cp.Data[k] = v
		}
	}
	return &cp
}
