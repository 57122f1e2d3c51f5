// Package models - Account thuộc domain danh bạ tài khoản (collection account).
// Một tài khoản được định danh bằng _id do MongoDB cấp và có thể mang thêm
// Salesforce Id (sfAccountId) do hệ thống CRM bên ngoài gửi sang.
package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tên field lưu trong MongoDB và trả về qua JSON
const (
	FieldID           = "_id"
	FieldAccountName  = "accountName"
	FieldAccountEmail = "accountEmail"
	FieldPhone        = "phone"
	FieldExternalID   = "sfAccountId"
)

// UpdatableFields là các field được phép cập nhật qua Salesforce Id
var UpdatableFields = []string{FieldAccountName, FieldAccountEmail, FieldPhone}

// Account lưu thông tin tài khoản (account).
type Account struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	AccountName  string             `json:"accountName" bson:"accountName"`
	AccountEmail string             `json:"accountEmail" bson:"accountEmail"`
	Phone        string             `json:"phone" bson:"phone"`
	ExternalID   string             `json:"sfAccountId,omitempty" bson:"sfAccountId,omitempty" index:"unique,sparse"` // Salesforce Id, không có thì bỏ hẳn field

	// Các field khác được ghi qua cập nhật theo _id, giữ nguyên khi đọc ra
	Extra map[string]interface{} `json:"-" bson:",inline"`
}

// MarshalJSON trả về document phẳng: field cố định cộng với các field trong Extra
func (a Account) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(a.Extra)+5)
	for k, v := range a.Extra {
		out[k] = v
	}
	out[FieldID] = a.ID
	out[FieldAccountName] = a.AccountName
	out[FieldAccountEmail] = a.AccountEmail
	out[FieldPhone] = a.Phone
	if a.ExternalID != "" {
		out[FieldExternalID] = a.ExternalID
	}
	return json.Marshal(out)
}
