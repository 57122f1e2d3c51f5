package models

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/YuvrajBundele11/OutboundAPI/internal/common"
	"github.com/YuvrajBundele11/OutboundAPI/internal/global"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateFields là dữ liệu tối thiểu để tạo tài khoản
type CreateFields struct {
	AccountName  string `json:"accountName" validate:"required"`
	AccountEmail string `json:"accountEmail" validate:"required"` // Chỉ kiểm tra có giá trị, không kiểm tra định dạng email
	Phone        string `json:"phone" validate:"required"`
	ExternalID   string `json:"sfAccountId"`
}

// ValidateForCreate kiểm tra đủ accountName, accountEmail, phone và trả về document cần chèn.
// Lỗi là common.ErrRequiredField với Details là danh sách field còn thiếu.
func ValidateForCreate(input CreateFields) (*Account, error) {
	if err := global.Validator().Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, common.WithDetails(common.ErrInvalidFormat, err.Error())
		}
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		return nil, common.WithDetails(common.ErrRequiredField, missing)
	}

	return &Account{
		AccountName:  input.AccountName,
		AccountEmail: input.AccountEmail,
		Phone:        input.Phone,
		ExternalID:   input.ExternalID,
	}, nil
}

// BuildMergePatch giữ lại các key trong allowedFields có giá trị "truthy".
// nil, chuỗi rỗng, false và số 0 bị bỏ qua.
func BuildMergePatch(payload map[string]interface{}, allowedFields []string) bson.M {
	patch := bson.M{}
	for _, field := range allowedFields {
		value, ok := payload[field]
		if !ok || isFalsy(value) {
			continue
		}
		patch[field] = value
	}
	return patch
}

// stringFields là các field của Account được decode vào kiểu string
var stringFields = []string{FieldAccountName, FieldAccountEmail, FieldPhone, FieldExternalID}

// CheckFieldTypes từ chối patch ghi giá trị không phải string vào field string của Account.
// Ghi sai kiểu sẽ làm mọi lần đọc document đó (kể cả ListAll) lỗi decode.
func CheckFieldTypes(patch bson.M) error {
	var invalid []string
	for _, field := range stringFields {
		value, ok := patch[field]
		if !ok {
			continue
		}
		if _, isString := value.(string); !isString {
			invalid = append(invalid, field)
		}
	}
	if len(invalid) > 0 {
		return common.WithDetails(common.ErrInvalidFormat, invalid)
	}
	return nil
}

// SanitizeUpdatePayload sao chép payload cập nhật theo _id: bỏ "_id" và "id",
// từ chối key là toán tử MongoDB (bắt đầu bằng "$") và giá trị sai kiểu cho field string.
// Các key khác giữ nguyên giá trị.
func SanitizeUpdatePayload(payload map[string]interface{}) (bson.M, error) {
	patch := bson.M{}
	for key, value := range payload {
		if key == FieldID || key == "id" {
			continue
		}
		if key == "" || strings.HasPrefix(key, "$") {
			return nil, common.WithDetails(common.ErrInvalidFormat, []string{key})
		}
		patch[key] = value
	}
	if err := CheckFieldTypes(patch); err != nil {
		return nil, err
	}
	return patch, nil
}

func isFalsy(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}
	return false
}
