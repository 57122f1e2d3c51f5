// Package dto - DTO cho domain danh bạ tài khoản.
package dto

import (
	"github.com/YuvrajBundele11/OutboundAPI/internal/api/account/models"
)

// AccountCreateInput là dữ liệu tạo tài khoản, nhận từ JSON body hoặc query string
type AccountCreateInput struct {
	AccountName  string `json:"accountName" query:"accountName"`
	AccountEmail string `json:"accountEmail" query:"accountEmail"`
	Phone        string `json:"phone" query:"phone"`
	ExternalID   string `json:"sfAccountId" query:"sfAccountId"` // Salesforce Id (tùy chọn)
}

// Fields chuyển sang dữ liệu của model để kiểm tra
func (in AccountCreateInput) Fields() models.CreateFields {
	return models.CreateFields{
		AccountName:  in.AccountName,
		AccountEmail: in.AccountEmail,
		Phone:        in.Phone,
		ExternalID:   in.ExternalID,
	}
}

// MergeMissing lấy giá trị từ other cho các field đang rỗng
func (in AccountCreateInput) MergeMissing(other AccountCreateInput) AccountCreateInput {
	if in.AccountName == "" {
		in.AccountName = other.AccountName
	}
	if in.AccountEmail == "" {
		in.AccountEmail = other.AccountEmail
	}
	if in.Phone == "" {
		in.Phone = other.Phone
	}
	if in.ExternalID == "" {
		in.ExternalID = other.ExternalID
	}
	return in
}

// AccountExternalUpdateParams là query của PUT /updateAccount
type AccountExternalUpdateParams struct {
	ExternalID   string `query:"sfId"`
	AccountName  string `query:"accountName"`
	AccountEmail string `query:"accountEmail"`
	Phone        string `query:"phone"`
}

// Payload trả về các field cập nhật dạng map (chưa lọc giá trị rỗng)
func (p AccountExternalUpdateParams) Payload() map[string]interface{} {
	return map[string]interface{}{
		models.FieldAccountName:  p.AccountName,
		models.FieldAccountEmail: p.AccountEmail,
		models.FieldPhone:        p.Phone,
	}
}

// InsertedResponse là data trả về sau khi tạo tài khoản
type InsertedResponse struct {
	InsertedID string `json:"insertedId"`
}

// ModifiedResponse là data trả về sau khi cập nhật
type ModifiedResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}
