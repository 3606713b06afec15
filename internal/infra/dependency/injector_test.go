package dependency

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/test/ledgertest"
)

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func (c *apiClient) do(method, path string, body any, out any) int {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.engine.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Database.Driver = db.DriverSQLite
	cfg.Database.URL = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.JWT.Secret = "test-secret"
	cfg.Ledger.Timezone = "UTC"
	for key := range cfg.Ledger.Categories {
		cfg.Ledger.Categories[key] = ""
	}
	return cfg
}

func newAPI(t *testing.T, cfg *config.Config) (*apiClient, *Injector) {
	t.Helper()

	database, err := db.NewConnection(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.Migrate())

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inj, err := NewInjector(context.Background(), cfg, database.DB(), Options{
		Redis:    client,
		Clock:    ledgertest.NewClock(ledgertest.DefaultNow),
		DBHealth: database.HealthCheck,
		RedisHealth: func(ctx context.Context) bool {
			return client.Ping(ctx).Err() == nil
		},
	})
	require.NoError(t, err)

	token, err := inj.TokenService.GenerateAccessToken(context.Background(), uuid.New())
	require.NoError(t, err)

	return &apiClient{t: t, engine: inj.Router.Setup(cfg.Server.Environment), token: token}, inj
}

func TestInjector_LedgerOverHTTP(t *testing.T) {
	api, inj := newAPI(t, newTestConfig(t))

	var health map[string]string
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/health", nil, &health))
	assert.Equal(t, "connected", health["database"])
	assert.Equal(t, "connected", health["redis"])

	var checking, savings dto.AccountResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/accounts",
		map[string]any{"name": "Checking", "initial_balance": "1000"}, &checking))
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/accounts",
		map[string]any{"name": "Savings"}, &savings))

	var food dto.CategoryResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/categories",
		map[string]any{"name": "Food", "type": "expense"}, &food))

	var expense dto.TransactionResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"account_id":  checking.ID,
		"category_id": food.ID,
		"type":        "expense",
		"amount":      "200",
		"date":        "2024-03-10",
	}, &expense))
	assert.Equal(t, "completed", expense.Status)

	var transfer dto.TransferResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"account_id":    checking.ID,
		"to_account_id": savings.ID,
		"type":          "transfer",
		"amount":        "300",
		"date":          "2024-03-14",
	}, &transfer))
	assert.Equal(t, inj.Refs.TransferOut.String(), transfer.Outgoing.CategoryID)
	assert.Equal(t, inj.Refs.TransferIn.String(), transfer.Incoming.CategoryID)

	var audit dto.BalanceAuditResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/accounts/"+checking.ID+"/balance", nil, &audit))
	assert.Equal(t, "500.00", audit.StoredBalance)
	assert.True(t, audit.InSync)

	var deleted dto.DeleteTransactionResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/api/v1/transactions/"+transfer.Incoming.ID, nil, &deleted))
	assert.Len(t, deleted.DeletedIDs, 2)

	var account dto.AccountResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/accounts/"+savings.ID, nil, &account))
	assert.Equal(t, "0.00", account.Balance)

	audits, err := inj.AuditAll.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, audits.DriftCount)
}

func TestInjector_ErrorMapping(t *testing.T) {
	api, _ := newAPI(t, newTestConfig(t))

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown account",
			method:   http.MethodGet,
			path:     "/api/v1/accounts/" + uuid.NewString(),
			wantCode: http.StatusNotFound,
			wantErr:  "ACC-",
		},
		{
			name:     "malformed id",
			method:   http.MethodGet,
			path:     "/api/v1/accounts/not-a-uuid",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid statement month",
			method:   http.MethodGet,
			path:     "/api/v1/statement?month=2024-13",
			wantCode: http.StatusBadRequest,
			wantErr:  "ACC-010004",
		},
		{
			name:     "transfer without destination",
			method:   http.MethodPost,
			path:     "/api/v1/transactions",
			body:     map[string]any{"account_id": uuid.NewString(), "type": "transfer", "amount": "10", "date": "2024-03-01"},
			wantCode: http.StatusBadRequest,
			wantErr:  "TXN-010010",
		},
		{
			name:     "invalid rule pattern",
			method:   http.MethodPost,
			path:     "/api/v1/category-rules",
			body:     map[string]any{"pattern": "([", "category_id": uuid.NewString()},
			wantCode: http.StatusBadRequest,
			wantErr:  "RUL-010002",
		},
		{
			name:     "rule for unknown category",
			method:   http.MethodPost,
			path:     "/api/v1/category-rules",
			body:     map[string]any{"pattern": "uber", "category_id": uuid.NewString()},
			wantCode: http.StatusNotFound,
			wantErr:  "RUL-020002",
		},
		{
			name:     "trend window too large",
			method:   http.MethodGet,
			path:     "/api/v1/dashboard/trends?months=99",
			wantCode: http.StatusBadRequest,
			wantErr:  "DSH-010002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp dto.ErrorResponse
			code := api.do(tt.method, tt.path, tt.body, &resp)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantErr != "" {
				assert.Contains(t, resp.Code, tt.wantErr)
			}
		})
	}
}

func TestInjector_RequiresToken(t *testing.T) {
	api, _ := newAPI(t, newTestConfig(t))
	api.token = ""

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/v1/accounts", nil, nil))
}

func TestInjector_RateLimitsWrites(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Redis.MaxRequests = 1
	cfg.Redis.Window = time.Minute
	api, _ := newAPI(t, cfg)

	body := map[string]any{"name": "Checking"}
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/accounts", body, nil))
	assert.Equal(t, http.StatusTooManyRequests, api.do(http.MethodPost, "/api/v1/accounts", body, nil))
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/accounts", nil, nil), "reads are not limited")
}

func TestCategoryOverrides(t *testing.T) {
	id := uuid.New()

	refs, err := CategoryOverrides(map[string]string{"debt_payment": id.String(), "transfer_in": ""})
	require.NoError(t, err)
	assert.Equal(t, id, refs.DebtPayment)
	assert.Equal(t, uuid.Nil, refs.TransferIn)

	_, err = CategoryOverrides(map[string]string{"transfer_out": "nope"})
	require.Error(t, err)
}
