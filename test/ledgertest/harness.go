// Package ledgertest wires the persistence layer over an in-memory SQLite
// database for use case tests.
package ledgertest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// Currency is the currency used by test harnesses.
const Currency = "BRL"

// DefaultNow is the instant the harness clock starts at.
var DefaultNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

// Clock is a settable adapter.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock frozen at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the frozen instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Harness bundles a migrated database with every repository.
type Harness struct {
	DB           *gorm.DB
	Clock        *Clock
	Transactor   adapter.Transactor
	Accounts     adapter.AccountRepository
	Categories   adapter.CategoryRepository
	Rules        adapter.CategoryRuleRepository
	Transactions adapter.TransactionRepository
	Cards        adapter.CreditCardRepository
	Debts        adapter.DebtRepository
	Investments  adapter.InvestmentRepository
	Dashboard    adapter.DashboardRepository
	Refs         entity.CategoryRefs
	Poster       *ledger.Poster
}

// New opens a private in-memory database, migrates it and seeds the system
// categories.
func New(t *testing.T) *Harness {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	sqlDB, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	h := &Harness{
		DB:           db,
		Clock:        NewClock(DefaultNow),
		Transactor:   persistence.NewTransactor(db),
		Accounts:     persistence.NewAccountRepository(db),
		Categories:   persistence.NewCategoryRepository(db),
		Rules:        persistence.NewCategoryRuleRepository(db),
		Transactions: persistence.NewTransactionRepository(db),
		Cards:        persistence.NewCreditCardRepository(db),
		Debts:        persistence.NewDebtRepository(db),
		Investments:  persistence.NewInvestmentRepository(db),
		Dashboard:    persistence.NewDashboardRepository(db),
	}

	for _, sc := range entity.SystemCategories {
		category := entity.NewCategory(sc.Name, sc.Type, sc.Icon, sc.Color)
		key := sc.Key
		category.SystemKey = &key
		require.NoError(t, h.Categories.Create(context.Background(), category))
		h.Refs.Set(sc.Key, category.ID)
	}

	h.Poster = h.NewPoster(h.Refs)
	return h
}

// NewPoster builds a poster over the harness repositories with custom refs.
func (h *Harness) NewPoster(refs entity.CategoryRefs) *ledger.Poster {
	return ledger.NewPoster(h.Accounts, h.Categories, h.Transactions, h.Clock, time.UTC, refs)
}

// Today returns the harness clock's calendar date.
func (h *Harness) Today() time.Time {
	return entity.DateOf(h.Clock.Now())
}

// Account creates an active checking account.
func (h *Harness) Account(t *testing.T, userID uuid.UUID, name, initialBalance string) *entity.Account {
	t.Helper()
	account := entity.NewAccount(userID, name, entity.AccountKindChecking, Dec(initialBalance))
	require.NoError(t, h.Accounts.Create(context.Background(), account))
	return account
}

// Category creates a user category.
func (h *Harness) Category(t *testing.T, name string, categoryType entity.CategoryType) *entity.Category {
	t.Helper()
	category := entity.NewCategory(name, categoryType, entity.DefaultCategoryIcon, entity.DefaultCategoryColor)
	require.NoError(t, h.Categories.Create(context.Background(), category))
	return category
}

// Balance reads the stored balance of an account.
func (h *Harness) Balance(t *testing.T, accountID uuid.UUID) decimal.Decimal {
	t.Helper()
	var m model.AccountModel
	require.NoError(t, h.DB.First(&m, "id = ?", accountID).Error)
	return m.ToEntity().Balance
}

// RequireBalance asserts the stored balance of an account.
func (h *Harness) RequireBalance(t *testing.T, accountID uuid.UUID, expected string) {
	t.Helper()
	require.Equal(t, Dec(expected).StringFixed(2), h.Balance(t, accountID).StringFixed(2))
}

// RequireClosed asserts that every stored balance equals
// initial_balance + completed income - completed expense.
func (h *Harness) RequireClosed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	accounts, err := h.Accounts.FindAll(ctx)
	require.NoError(t, err)

	for _, account := range accounts {
		accountID := account.ID
		totals, err := h.Transactions.GetTotals(ctx, adapter.TransactionFilter{
			UserID:    account.UserID,
			AccountID: &accountID,
		})
		require.NoError(t, err)

		audit := entity.BalanceAudit{
			AccountID:        account.ID,
			AccountName:      account.Name,
			InitialBalance:   account.InitialBalance,
			StoredBalance:    account.Balance,
			CompletedIncome:  totals.CompletedIncome,
			CompletedExpense: totals.CompletedExpense,
		}
		require.Truef(t, audit.InSync(), "account %s drifted: stored %s derived %s",
			account.Name, audit.StoredBalance.StringFixed(2), audit.DerivedBalance().StringFixed(2))
	}
}

// Count returns the number of rows in table.
func (h *Harness) Count(t *testing.T, table string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, h.DB.Table(table).Count(&count).Error)
	return count
}

// Dec parses a decimal literal.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Date builds a calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
