// Package models chứa các kiểu dùng chung cho layer repository/base.
package models

// UpdateResult là kết quả của một thao tác cập nhật một document
type UpdateResult struct {
	// Số document khớp với filter (0 hoặc 1)
	MatchedCount int64 `json:"matchedCount" bson:"matchedCount"`
	// Số document thực sự bị thay đổi (0 khi giá trị mới trùng giá trị cũ)
	ModifiedCount int64 `json:"modifiedCount" bson:"modifiedCount"`
}
