package accounthdl_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	accounthdl "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/handler"
	accountmodels "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/models"
	accountrouter "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/router"
	accountsvc "github.com/YuvrajBundele11/OutboundAPI/internal/api/account/service"
	basesvc "github.com/YuvrajBundele11/OutboundAPI/internal/api/base/service"
	"github.com/YuvrajBundele11/OutboundAPI/internal/api/middleware"
	"github.com/YuvrajBundele11/OutboundAPI/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    interface{}     `json:"code"`
	Message string          `json:"message"`
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := basesvc.NewMemoryStore[accountmodels.Account]()
	handler, err := accounthdl.NewAccountHandler(accountsvc.NewAccountDirectory(store))
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	accountrouter.Mount(app, handler)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func insertedID(t *testing.T, env envelope) string {
	t.Helper()
	var data struct {
		InsertedID string `json:"insertedId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.InsertedID)
	return data.InsertedID
}

func modifiedCount(t *testing.T, env envelope) int64 {
	t.Helper()
	var data struct {
		ModifiedCount int64 `json:"modifiedCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.ModifiedCount
}

func TestAccountRoutes_CreateGetUpdateFlow(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodPost, "/accounts",
		`{"accountName":"Acme","accountEmail":"a@acme.io","phone":"555","sfAccountId":"SF-1"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", env.Status)
	id := insertedID(t, env)

	status, env = do(t, app, http.MethodGet, "/accounts/"+id, "")
	require.Equal(t, http.StatusOK, status)
	var account map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &account))
	assert.Equal(t, id, account["_id"])
	assert.Equal(t, "Acme", account["accountName"])
	assert.Equal(t, "SF-1", account["sfAccountId"])

	status, env = do(t, app, http.MethodPut, "/updateAccount?sfId=SF-1&phone=777", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), modifiedCount(t, env))

	status, env = do(t, app, http.MethodPut, "/accounts/"+id, `{"accountEmail":"ops@acme.io"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), modifiedCount(t, env))

	status, env = do(t, app, http.MethodGet, "/accounts/"+id, "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &account))
	assert.Equal(t, "777", account["phone"])
	assert.Equal(t, "ops@acme.io", account["accountEmail"])
	assert.Equal(t, "Acme", account["accountName"])

	status, env = do(t, app, http.MethodGet, "/accounts", "")
	require.Equal(t, http.StatusOK, status)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 1)
}

func TestAccountRoutes_CreateMissingFields(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodPost, "/accounts", `{"accountName":"Beta"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, common.MsgRequiredField, env.Message)
	assert.Equal(t, common.ErrCodeValidationInput.Code, env.Code)

	var missing []string
	require.NoError(t, json.Unmarshal(env.Details, &missing))
	assert.ElementsMatch(t, []string{"accountEmail", "phone"}, missing)

	status, env = do(t, app, http.MethodGet, "/accounts", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestAccountRoutes_CreateMalformedBody(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodPost, "/accounts", `{"accountName":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, env.Code)
}

func TestAccountRoutes_InsertByQuery(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodGet,
		"/insertAccount?accountName=Acme&accountEmail=a%40acme.io&phone=555&sfAccountId=SF-1", "")
	require.Equal(t, http.StatusOK, status)
	id := insertedID(t, env)

	status, env = do(t, app, http.MethodGet, "/accounts/"+id, "")
	require.Equal(t, http.StatusOK, status)
	var account map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &account))
	assert.Equal(t, "SF-1", account["sfAccountId"])
	assert.Equal(t, "a@acme.io", account["accountEmail"])
}

func TestAccountRoutes_InsertByQueryFallsBackToBody(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodGet, "/insertAccount?sfAccountId=SF-2",
		`{"accountName":"Beta","accountEmail":"b@beta.io","phone":"111"}`)
	require.Equal(t, http.StatusOK, status)
	id := insertedID(t, env)

	status, env = do(t, app, http.MethodGet, "/accounts/"+id, "")
	require.Equal(t, http.StatusOK, status)
	var account map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &account))
	assert.Equal(t, "Beta", account["accountName"])
	assert.Equal(t, "SF-2", account["sfAccountId"])

	status, env = do(t, app, http.MethodGet, "/insertAccount?accountName=Gamma", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, common.MsgRequiredField, env.Message)
}

func TestAccountRoutes_GetByID(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodGet, "/accounts/not-hex", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, common.MsgMalformedIdentifier, env.Message)

	status, env = do(t, app, http.MethodGet, "/accounts/65a1f0c2e4b0a1b2c3d4e5f6", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `null`, string(env.Data))
}

func TestAccountRoutes_UpdateByExternalIDErrors(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodPut, "/updateAccount?phone=1", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, common.MsgMissingIdentifier, env.Message)

	status, env = do(t, app, http.MethodPut, "/updateAccount?sfId=SF-404&phone=1", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, common.MsgAccountNotFound, env.Message)
}

func TestAccountRoutes_UpdateByIDRejectsOperatorKeys(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodPut, "/accounts/65a1f0c2e4b0a1b2c3d4e5f6", `{"$set":{"phone":"1"}}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, env.Code)

	status, env = do(t, app, http.MethodPut, "/accounts/65a1f0c2e4b0a1b2c3d4e5f6", `{"phone":"1"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), modifiedCount(t, env))
}

func TestNewAccountHandler_RequiresDirectory(t *testing.T) {
	_, err := accounthdl.NewAccountHandler(nil)
	assert.Error(t, err)
}
