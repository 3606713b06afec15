// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/infra/dependency"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
	"github.com/finance-tracker/ledger/test/integration/mock"
)

// startOfScenario is the instant every scenario clock starts at.
var startOfScenario = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_.-]+)\}`)

type testContext struct {
	db       *mock.Db
	redis    *redis.Client
	timeMock *mock.Time
	injector *dependency.Injector
	server   *httptest.Server
	client   *http.Client

	headers  map[string]string
	token    string
	users    map[string]uuid.UUID
	saved    map[string]string
	response *response
}

type response struct {
	status int
	body   []byte
	parsed any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		db:       mock.NewDb("ledger_integration", model.ByTable()),
		redis:    mock.NewRedis(),
		timeMock: mock.NewTime(startOfScenario),
		client:   &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before(ctx)
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
		}
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)

	// Auth steps
	ctx.Given(`^I am authenticated as "([^"]*)"$`, test.iAmAuthenticatedAs)
	ctx.Given(`^I am not authenticated$`, test.iAmNotAuthenticated)

	// Setup steps
	ctx.Given(`^an account "([^"]*)" with initial balance "([^"]*)"$`, test.anAccountWithInitialBalance)
	ctx.Given(`^an? "([^"]*)" category "([^"]*)"$`, test.aCategory)
	ctx.Given(`^the stored balance of account "([^"]*)" is overwritten with "([^"]*)"$`, test.theStoredBalanceIsOverwritten)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I save the response field "([^"]*)" as "([^"]*)"$`, test.iSaveTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Ledger assertion steps
	ctx.Then(`^the balance of account "([^"]*)" should be "([^"]*)"$`, test.theBalanceOfAccountShouldBe)
	ctx.Then(`^account "([^"]*)" should be in sync$`, test.accountShouldBeInSync)
	ctx.Then(`^all accounts should be in sync$`, test.allAccountsShouldBeInSync)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

func (t *testContext) before(ctx context.Context) error {
	t.headers = make(map[string]string)
	t.token = ""
	t.users = make(map[string]uuid.UUID)
	t.saved = make(map[string]string)
	t.response = nil
	t.timeMock.SetCurrentTime(startOfScenario)

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(ctx, t.redis); err != nil {
		return err
	}

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Database.Driver = db.DriverSQLite
	cfg.JWT.Secret = "integration-secret"
	cfg.Ledger.Timezone = "UTC"
	cfg.Redis.RateLimitEnabled = false
	for key := range cfg.Ledger.Categories {
		cfg.Ledger.Categories[key] = ""
	}

	injector, err := dependency.NewInjector(ctx, cfg, t.db.Conn(), dependency.Options{
		Redis:    t.redis,
		Clock:    t.timeMock,
		DBHealth: t.db.Database().HealthCheck,
		RedisHealth: func(ctx context.Context) bool {
			return t.redis.Ping(ctx).Err() == nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	t.injector = injector
	t.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	return nil
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (t *testContext) todayIs(date string) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

func (t *testContext) iAmAuthenticatedAs(name string) error {
	userID, ok := t.users[name]
	if !ok {
		userID = uuid.New()
		t.users[name] = userID
	}
	token, err := t.injector.TokenService.GenerateAccessToken(context.Background(), userID)
	if err != nil {
		return err
	}
	t.token = token
	return nil
}

func (t *testContext) iAmNotAuthenticated() error {
	t.token = ""
	return nil
}

func (t *testContext) anAccountWithInitialBalance(name, balance string) error {
	body := fmt.Sprintf(`{"name": %q, "initial_balance": %q}`, name, balance)
	return t.create("/api/v1/accounts", body, name)
}

func (t *testContext) aCategory(categoryType, name string) error {
	body := fmt.Sprintf(`{"name": %q, "type": %q}`, name, categoryType)
	return t.create("/api/v1/categories", body, name)
}

// create posts body and remembers the created id under name.
func (t *testContext) create(path, body, name string) error {
	if err := t.send(http.MethodPost, path, body); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return err
	}
	return t.iSaveTheResponseFieldAs("id", name)
}

func (t *testContext) theStoredBalanceIsOverwritten(name, balance string) error {
	id, ok := t.saved[name]
	if !ok {
		return fmt.Errorf("no saved value %q", name)
	}
	return t.db.Exec("UPDATE accounts SET balance = ? WHERE id = ?", balance, id)
}

func (t *testContext) iSendARequestTo(method, endpoint string) error {
	return t.send(method, endpoint, "")
}

func (t *testContext) iSendARequestToWithBody(method, endpoint string, body *godog.DocString) error {
	return t.send(method, endpoint, body.Content)
}

func (t *testContext) send(method, endpoint, body string) error {
	endpoint, err := t.interpolate(endpoint)
	if err != nil {
		return err
	}
	body, err = t.interpolate(body)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, t.server.URL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	t.response = &response{status: resp.StatusCode, body: raw}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &t.response.parsed)
	}
	return nil
}

// interpolate replaces {name} with a value saved earlier in the scenario.
func (t *testContext) interpolate(s string) (string, error) {
	var missing string
	out := placeholder.ReplaceAllStringFunc(s, func(match string) string {
		key := match[1 : len(match)-1]
		value, ok := t.saved[key]
		if !ok {
			missing = key
			return match
		}
		return value
	})
	if missing != "" {
		return "", fmt.Errorf("no saved value %q", missing)
	}
	return out, nil
}

func (t *testContext) iSaveTheResponseFieldAs(field, name string) error {
	value, err := t.field(field)
	if err != nil {
		return err
	}
	t.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expected int) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if t.response.status != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expected, t.response.status, string(t.response.body))
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if !strings.Contains(string(t.response.body), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(t.response.body))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	expected, err := t.interpolate(expected)
	if err != nil {
		return err
	}
	value, err := t.field(field)
	if err != nil {
		return err
	}
	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.field(field)
	return err
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := t.field(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list", field)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

// field resolves a dotted path such as "lines.0.amount" in the last response.
func (t *testContext) field(path string) (any, error) {
	if t.response == nil {
		return nil, fmt.Errorf("no response received")
	}
	current := t.response.parsed
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(t.response.body))
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index '%s' out of range in '%s'", part, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(t.response.body))
		}
	}
	return current, nil
}

func (t *testContext) theBalanceOfAccountShouldBe(name, expected string) error {
	if err := t.send(http.MethodGet, "/api/v1/accounts/{"+name+"}", ""); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusOK); err != nil {
		return err
	}
	return t.theResponseFieldShouldBe("balance", expected)
}

func (t *testContext) accountShouldBeInSync(name string) error {
	if err := t.send(http.MethodGet, "/api/v1/accounts/{"+name+"}/balance", ""); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusOK); err != nil {
		return err
	}
	return t.theResponseFieldShouldBe("in_sync", "true")
}

func (t *testContext) allAccountsShouldBeInSync() error {
	audits, err := t.injector.AuditAll.Execute(context.Background())
	if err != nil {
		return err
	}
	if audits.DriftCount != 0 {
		return fmt.Errorf("expected no drifted accounts, got %d", audits.DriftCount)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(expected int, table string) error {
	count, err := t.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("table %s expected %d rows, got %d", table, expected, count)
	}
	return nil
}
