package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"restaurant-order-api/config"
	"restaurant-order-api/models"
	"restaurant-order-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// envelope is the {data, message} wrapper every endpoint responds with
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()
	config.InitDB(filepath.Join(t.TempDir(), "test.db"))
	config.SeedDefaults()

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func loginAs(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/login", gin.H{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func loginAdmin(t *testing.T, r *gin.Engine) string {
	return loginAs(t, r, "admin", config.App.AdminPassword)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func seedMenuItem(t *testing.T, name, price string) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Active: true,
	}
	require.NoError(t, config.DB.Create(&item).Error)
	return item
}

func seedOrder(t *testing.T, total string, status models.OrderStatus) models.Order {
	t.Helper()
	order := models.Order{
		Status:        status,
		PaymentStatus: models.PaymentUnpaid,
		TotalAmount:   decimal.RequireFromString(total),
	}
	require.NoError(t, config.DB.Create(&order).Error)
	return order
}
