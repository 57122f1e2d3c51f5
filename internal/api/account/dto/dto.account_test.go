package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountCreateInput_MergeMissing(t *testing.T) {
	query := AccountCreateInput{AccountName: "Q", ExternalID: "SF-Q"}
	body := AccountCreateInput{AccountName: "B", AccountEmail: "b@x.io", Phone: "1"}

	merged := query.MergeMissing(body)
	assert.Equal(t, AccountCreateInput{AccountName: "Q", AccountEmail: "b@x.io", Phone: "1", ExternalID: "SF-Q"}, merged)
	assert.Equal(t, "Q", merged.Fields().AccountName)
}

func TestAccountExternalUpdateParams_Payload(t *testing.T) {
	p := AccountExternalUpdateParams{ExternalID: "SF-1", Phone: "2"}
	assert.Equal(t, map[string]interface{}{"accountName": "", "accountEmail": "", "phone": "2"}, p.Payload())
}
