package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/auth"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/dbtest"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/tracing"
)

type testEnv struct {
	server *Server
	svc    *services.Services
}

type envelope struct {
	Status    string          `json:"status"`
	Code      int             `json:"code"`
	ErrorCode string          `json:"errorCode"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Address:        "127.0.0.1:0",
			Timeout:        5 * time.Second,
			CorsOrigins:    []string{"*"},
			MetricsEnabled: true,
		},
	}
	tr := i18n.New(i18n.Arabic)
	svc := services.New(&services.Dependencies{
		Store:      repositories.NewStore(dbtest.Open(t)),
		Translator: tr,
		Tokens: auth.NewTokenManager(config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
			Issuer:    "test",
		}),
		Settings: services.Settings{
			TaxRate:                   decimal.NewFromInt(15),
			EnforceOrderTransitions:   true,
			EnforceInvoiceTransitions: true,
		},
	})

	return &testEnv{
		server: NewServer(cfg, svc, tr, metrics.NewMetrics(), &tracing.Tracer{}),
		svc:    svc,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") != xlsxContentType {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

// login creates an account with role and returns its access token
func (e *testEnv) login(t *testing.T, employeeID string, role models.Role) string {
	t.Helper()
	_, err := e.svc.Users.CreateUser(context.Background(), services.CreateUserInput{
		FullName:   "Staff " + employeeID,
		EmployeeID: employeeID,
		Password:   "secret123",
		Role:       role,
	})
	require.NoError(t, err)

	rec, env := e.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"employeeId": employeeID,
		"password":   "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var session services.Session
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.Equal(t, "Bearer", session.TokenType)
	return session.AccessToken
}

func clientBody(phone string) gin.H {
	return gin.H{
		"firstName":  "Ahmad",
		"secondName": "Saleh",
		"thirdName":  "Omar",
		"lastName":   "Harbi",
		"phone":      phone,
		"branch":     "abhur",
	}
}

func clientWithCarBody(phone string) gin.H {
	body := clientBody(phone)
	body["carModel"] = "Camry"
	body["carManufacturer"] = "Toyota"
	body["carColor"] = "White"
	body["carPlateNumber"] = "ABC1234"
	body["carSize"] = "medium"
	body["services"] = []gin.H{{
		"serviceType":  "protection",
		"servicePrice": "100",
		"protection": gin.H{
			"protectionFinish":   "glossy",
			"protectionCoverage": "full",
		},
	}}
	return body
}

func TestLoginAndMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "ADM-1", models.RoleAdmin)

	rec, res := env.do(t, http.MethodGet, "/api/v1/auth/me", nil, token, "Accept-Language", "en")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", res.Status)
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "Operation completed successfully", res.Message)

	var user models.User
	require.NoError(t, json.Unmarshal(res.Data, &user))
	require.Equal(t, "ADM-1", user.EmployeeID)
}

func TestLoginWithWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "ADM-1", models.RoleAdmin)

	rec, res := env.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
		"employeeId": "ADM-1",
		"password":   "nope-nope",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "error", res.Status)
	require.Equal(t, "UNAUTHORIZED", res.ErrorCode)
}

func TestMissingTokenIsTranslated(t *testing.T) {
	env := newTestEnv(t)

	rec, res := env.do(t, http.MethodGet, "/api/v1/clients", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "error", res.Status)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Equal(t, "رمز التفويض مفقود", res.Message)

	_, res = env.do(t, http.MethodGet, "/api/v1/clients", nil, "", "Accept-Language", "en-US,en;q=0.9")
	require.Equal(t, "Authorization token is missing", res.Message)
}

func TestEmployeeCannotUseAdminRoutes(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "EMP-1", models.RoleEmployee)

	rec, res := env.do(t, http.MethodDelete, "/api/v1/clients/some-id", nil, token, "Accept-Language", "en")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "You do not have permission to perform this action", res.Message)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/users", nil, token)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateClientAndConfirmExisting(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "EMP-1", models.RoleEmployee)

	rec, res := env.do(t, http.MethodPost, "/api/v1/clients", clientBody("0512345678"), token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created services.CreateClientResult
	require.NoError(t, json.Unmarshal(res.Data, &created))
	require.Equal(t, "CL-1001", created.Client.ClientNumber)

	rec, res = env.do(t, http.MethodPost, "/api/v1/clients", clientWithCarBody("0512345678"), token, "Accept-Language", "en")
	require.Equal(t, http.StatusOK, rec.Code)
	var pending services.CreateClientResult
	require.NoError(t, json.Unmarshal(res.Data, &pending))
	require.True(t, pending.RequiresConfirmation)
	require.Equal(t, pending.Message, res.Message)

	body := clientWithCarBody("0512345678")
	body["confirmExisting"] = true
	rec, res = env.do(t, http.MethodPost, "/api/v1/clients", body, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var confirmed services.CreateClientResult
	require.NoError(t, json.Unmarshal(res.Data, &confirmed))
	require.True(t, confirmed.IsExistingClient)
	require.Equal(t, created.Client.ID, confirmed.Client.ID)
	require.NotNil(t, confirmed.Order)
	require.NotNil(t, confirmed.Invoice)
	require.Equal(t, "115.00", confirmed.Invoice.TotalAmount.StringFixed(2))

	rec, res = env.do(t, http.MethodGet, "/api/v1/clients/check-exists?phone=0512345678", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var exists services.ExistsResult
	require.NoError(t, json.Unmarshal(res.Data, &exists))
	require.True(t, exists.Exists)
	require.Equal(t, services.MatchPhone, exists.Match)
}

func TestListClientsWithoutPagingUsesDefaults(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "EMP-1", models.RoleEmployee)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/clients", clientBody("0512345678"), token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, res := env.do(t, http.MethodGet, "/api/v1/clients", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var page services.ClientPage
	require.NoError(t, json.Unmarshal(res.Data, &page))
	require.Len(t, page.Clients, 1)
	require.Equal(t, 10, page.Pagination.Limit)
	require.Equal(t, int64(1), page.Pagination.TotalClients)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/clients?limit=101", nil, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateClientRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "EMP-1", models.RoleEmployee)

	rec, res := env.do(t, http.MethodPost, "/api/v1/clients", "{", token, "Accept-Language", "en")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_REQUEST", res.ErrorCode)
	require.Contains(t, res.Message, "Invalid request")

	rec, res = env.do(t, http.MethodPost, "/api/v1/clients", clientBody("12345"), token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", res.ErrorCode)
}

func TestMissingRecordIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "ADM-1", models.RoleAdmin)

	rec, res := env.do(t, http.MethodGet, "/api/v1/orders/00000000-0000-0000-0000-00000000abcd", nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", res.ErrorCode)

	rec, res = env.do(t, http.MethodGet, "/api/v1/does-not-exist", nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "error", res.Status)
}

func TestInvoiceExportReturnsWorkbook(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "ADM-1", models.RoleAdmin)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/clients", clientWithCarBody("0598765432"), token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/invoices/export", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	// xlsx files are zip archives
	require.Equal(t, []byte("PK"), rec.Body.Bytes()[:2])
}

func TestRequestIDAndCORSHeaders(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/health", nil, "", "X-Request-ID", "req-42", "Origin", "http://localhost:3000")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec, _ = env.do(t, http.MethodOptions, "/api/v1/clients", nil, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/api/v1/clients", nil, "")

	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	timers, ok := body["timers"].(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, timers, "http GET /api/v1/clients")
}
