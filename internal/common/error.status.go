package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK      = 200 // Thành công
	StatusCreated = 201 // Tạo mới thành công

	// Client Error Codes (4xx)
	StatusBadRequest      = 400 // Yêu cầu không hợp lệ
	StatusNotFound        = 404 // Không tìm thấy tài nguyên
	StatusConflict        = 409 // Xung đột dữ liệu
	StatusTooManyRequests = 429 // Quá nhiều yêu cầu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	MsgSuccess       = "Thao tác thành công"
	MsgCreated       = "Tạo mới thành công"
	MsgInternalError = "Lỗi hệ thống"

	MsgRequiredField       = "Missing required fields"
	MsgMalformedIdentifier = "Id tài khoản không hợp lệ"
	MsgMissingIdentifier   = "Missing Salesforce Id (sfId)"
	MsgAccountNotFound     = "No record found with this Salesforce Id"
	MsgStoreUnavailable    = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat       = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: VAL_001)
	Category    string // Phân loại lỗi (ví dụ: Validation)
	SubCategory string // Phân loại con (ví dụ: Input)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	ErrCodeValidationIdentifier = ErrorCode{
		Code:        "VAL_003",
		Category:    "Validation",
		SubCategory: "Identifier",
		Description: "Lỗi định danh tài khoản (id nội bộ hoặc Salesforce Id)",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi cơ sở dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessOperation = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Operation",
		Description: "Lỗi thao tác nghiệp vụ",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is so sánh theo mã lỗi và message, để một lỗi mang Details khác vẫn khớp với lỗi gốc khi dùng errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.Code.Code == t.Code.Code && e.Message == t.Message
}

// Unwrap trả về lỗi gốc nếu Details là error (ví dụ lỗi driver MongoDB)
func (e *Error) Unwrap() error {
	if cause, ok := e.Details.(error); ok {
		return cause
	}
	return nil
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// WithDetails tạo bản sao của lỗi gốc kèm Details, vẫn khớp errors.Is với lỗi gốc
func WithDetails(err error, details any) error {
	var base *Error
	if !errors.As(err, &base) {
		return err
	}
	return &Error{
		Code:       base.Code,
		Message:    base.Message,
		StatusCode: base.StatusCode,
		Details:    details,
	}
}

// Custom errors
var (
	// Validation Errors
	ErrRequiredField = NewError(ErrCodeValidationInput, MsgRequiredField, StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)

	// Identifier Errors
	ErrMalformedIdentifier = NewError(ErrCodeValidationIdentifier, MsgMalformedIdentifier, StatusBadRequest, nil)
	ErrMissingIdentifier   = NewError(ErrCodeValidationIdentifier, MsgMissingIdentifier, StatusBadRequest, nil)

	// Database Errors
	ErrAccountNotFound  = NewError(ErrCodeDatabaseQuery, MsgAccountNotFound, StatusNotFound, nil)
	ErrStoreUnavailable = NewError(ErrCodeDatabaseConnection, MsgStoreUnavailable, StatusServiceUnavailable, nil)
)

// MongoDB Error Messages
const (
	MsgMongoConnection = "Lỗi kết nối MongoDB"
	MsgMongoNetwork    = "Lỗi mạng khi kết nối MongoDB"
	MsgMongoTimeout    = "Kết nối MongoDB bị timeout"
	MsgMongoQuery      = "Lỗi truy vấn MongoDB"
	MsgMongoWrite      = "Lỗi ghi dữ liệu MongoDB"
	MsgMongoDuplicate  = "Dữ liệu trùng lặp trong MongoDB"
	MsgMongoSystem     = "Lỗi hệ thống MongoDB"
)

// MongoDB Specific Errors
var (
	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, MsgMongoConnection, StatusServiceUnavailable, nil)
	ErrMongoNetwork    = NewError(ErrCodeDatabaseConnection, MsgMongoNetwork, StatusServiceUnavailable, nil)
	ErrMongoTimeout    = NewError(ErrCodeDatabaseConnection, MsgMongoTimeout, StatusServiceUnavailable, nil)
	ErrMongoQuery      = NewError(ErrCodeDatabaseQuery, MsgMongoQuery, StatusInternalServerError, nil)
	ErrMongoWrite      = NewError(ErrCodeDatabaseQuery, MsgMongoWrite, StatusInternalServerError, nil)
	ErrMongoDuplicate  = NewError(ErrCodeDatabaseQuery, MsgMongoDuplicate, StatusConflict, nil)
	ErrMongoSystem     = NewError(ErrCodeDatabase, MsgMongoSystem, StatusInternalServerError, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống.
// Lỗi đã là *Error thì giữ nguyên; lỗi driver được gắn vào Details để còn truy vết.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	// Duplicate key phải kiểm tra trước CommandError vì write exception cũng mang code 11000
	if mongo.IsDuplicateKeyError(err) {
		return WithDetails(ErrMongoDuplicate, err)
	}
	if mongo.IsTimeout(err) {
		return WithDetails(ErrMongoTimeout, err)
	}
	if mongo.IsNetworkError(err) {
		return WithDetails(ErrMongoNetwork, err)
	}
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return WithDetails(ErrMongoConnection, err)
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch {
		case cmdErr.Code >= 100 && cmdErr.Code < 200:
			return WithDetails(ErrMongoConnection, err)
		case cmdErr.Code >= 300 && cmdErr.Code < 400:
			return WithDetails(ErrMongoQuery, err)
		case cmdErr.Code >= 400 && cmdErr.Code < 500:
			return WithDetails(ErrMongoWrite, err)
		default:
			return WithDetails(ErrMongoSystem, err)
		}
	}

	return WithDetails(ErrStoreUnavailable, err)
}

// IsStoreError cho biết lỗi có thuộc nhóm lỗi kho dữ liệu phía server (5xx) hay không
func IsStoreError(err error) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code.Category == "Database" && appErr.StatusCode >= StatusInternalServerError
}
