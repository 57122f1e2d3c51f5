package models

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/YuvrajBundele11/OutboundAPI/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func missingFields(t *testing.T, err error) []string {
	t.Helper()
	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	fields, ok := appErr.Details.([]string)
	require.True(t, ok, "Details phải là danh sách field")
	return fields
}

func TestValidateForCreate_Valid(t *testing.T) {
	acc, err := ValidateForCreate(CreateFields{AccountName: "Acme", AccountEmail: "a@acme.io", Phone: "555", ExternalID: "SF-1"})
	require.NoError(t, err)
	assert.Equal(t, &Account{AccountName: "Acme", AccountEmail: "a@acme.io", Phone: "555", ExternalID: "SF-1"}, acc)
	assert.True(t, acc.ID.IsZero())
}

func TestValidateForCreate_ExternalIDOmittedWhenEmpty(t *testing.T) {
	acc, err := ValidateForCreate(CreateFields{AccountName: "Beta", AccountEmail: "b@x.io", Phone: "1"})
	require.NoError(t, err)

	raw, err := bson.Marshal(acc)
	require.NoError(t, err)
	_, lookupErr := bson.Raw(raw).LookupErr(FieldExternalID)
	assert.Error(t, lookupErr, "sfAccountId không được lưu khi không có")
	_, lookupErr = bson.Raw(raw).LookupErr(FieldID)
	assert.Error(t, lookupErr, "_id để trống cho kho tự cấp")
}

func TestValidateForCreate_MissingFields(t *testing.T) {
	cases := []struct {
		name    string
		input   CreateFields
		missing []string
	}{
		{"thiếu phone", CreateFields{AccountName: "Acme", AccountEmail: "a@acme.io"}, []string{"phone"}},
		{"thiếu email", CreateFields{AccountName: "Acme", Phone: "1"}, []string{"accountEmail"}},
		{"rỗng hết", CreateFields{ExternalID: "SF-1"}, []string{"accountName", "accountEmail", "phone"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acc, err := ValidateForCreate(tc.input)
			assert.Nil(t, acc)
			assert.True(t, errors.Is(err, common.ErrRequiredField))
			assert.ElementsMatch(t, tc.missing, missingFields(t, err))
		})
	}
}

func TestValidateForCreate_EmailFormatNotChecked(t *testing.T) {
	_, err := ValidateForCreate(CreateFields{AccountName: "Acme", AccountEmail: "không-phải-email", Phone: "1"})
	assert.NoError(t, err)
}

func TestBuildMergePatch(t *testing.T) {
	payload := map[string]interface{}{
		"accountName":  "Acme Corp",
		"accountEmail": "",
		"phone":        nil,
		"sfAccountId":  "SF-2",
		"industry":     "retail",
	}
	assert.Equal(t, bson.M{"accountName": "Acme Corp"}, BuildMergePatch(payload, UpdatableFields))

	assert.Equal(t, bson.M{}, BuildMergePatch(nil, UpdatableFields))
	assert.Equal(t, bson.M{}, BuildMergePatch(map[string]interface{}{"phone": 0, "accountName": false}, UpdatableFields))
	assert.Equal(t, bson.M{"phone": 42}, BuildMergePatch(map[string]interface{}{"phone": 42}, UpdatableFields))
}

func TestIsFalsy(t *testing.T) {
	var nilPtr *string
	assert.True(t, isFalsy(nil))
	assert.True(t, isFalsy(""))
	assert.True(t, isFalsy(false))
	assert.True(t, isFalsy(0))
	assert.True(t, isFalsy(0.0))
	assert.True(t, isFalsy(math.NaN()))
	assert.True(t, isFalsy(nilPtr))
	assert.False(t, isFalsy("x"))
	assert.False(t, isFalsy(true))
	assert.False(t, isFalsy(-1))
	assert.False(t, isFalsy(map[string]interface{}{}), "object rỗng vẫn là truthy")
}

func TestSanitizeUpdatePayload(t *testing.T) {
	patch, err := SanitizeUpdatePayload(map[string]interface{}{
		"_id":      "abc",
		"id":       "abc",
		"phone":    "",
		"industry": "retail",
	})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"phone": "", "industry": "retail"}, patch, "giá trị giữ nguyên, kể cả rỗng")

	_, err = SanitizeUpdatePayload(map[string]interface{}{"$where": "1"})
	assert.True(t, errors.Is(err, common.ErrInvalidFormat))

	patch, err = SanitizeUpdatePayload(nil)
	require.NoError(t, err)
	assert.Empty(t, patch)
}

func TestSanitizeUpdatePayload_RejectsNonStringSchemaFields(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]interface{}
		field   string
	}{
		{"phone dạng số", map[string]interface{}{"phone": float64(5550100)}, "phone"},
		{"accountName dạng bool", map[string]interface{}{"accountName": true}, "accountName"},
		{"accountEmail null", map[string]interface{}{"accountEmail": nil}, "accountEmail"},
		{"sfAccountId dạng object", map[string]interface{}{"sfAccountId": map[string]interface{}{"v": 1}}, "sfAccountId"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SanitizeUpdatePayload(tc.payload)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrInvalidFormat))

			var appErr *common.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, []string{tc.field}, appErr.Details)
		})
	}

	// Field ngoài schema vẫn nhận mọi kiểu
	patch, err := SanitizeUpdatePayload(map[string]interface{}{"employees": float64(12), "phone": "777"})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"employees": float64(12), "phone": "777"}, patch)
}

func TestAccount_BSONKeepsExtraFields(t *testing.T) {
	id := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{"_id": id, "accountName": "Acme", "accountEmail": "a", "phone": "1", "industry": "retail"})
	require.NoError(t, err)

	var acc Account
	require.NoError(t, bson.Unmarshal(raw, &acc))
	assert.Equal(t, id, acc.ID)
	assert.Equal(t, "retail", acc.Extra["industry"])
	_, hasName := acc.Extra["accountName"]
	assert.False(t, hasName)

	data, err := json.Marshal(acc)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, id.Hex(), out["_id"])
	assert.Equal(t, "retail", out["industry"])
	_, hasExt := out["sfAccountId"]
	assert.False(t, hasExt)
}
