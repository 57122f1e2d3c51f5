package global

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validateOnce sync.Once

// InitValidator khởi tạo validator dùng chung, chỉ chạy một lần dù được gọi từ nhiều goroutine.
// Tên field trong lỗi trả về lấy theo tag json để khớp với tên field client gửi lên.
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		Validate = v
	})
}

// jsonFieldName lấy tên field theo tag json, bỏ qua ",omitempty"
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// Validator trả về validator dùng chung, tự khởi tạo nếu chưa được init (ví dụ trong test)
func Validator() *validator.Validate {
	InitValidator()
	return Validate
}
