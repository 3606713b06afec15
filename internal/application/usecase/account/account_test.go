package account

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/test/ledgertest"
)

func requireAccountCode(t *testing.T, err error, code domainerror.AccountErrorCode) {
	t.Helper()
	var accountErr *domainerror.AccountError
	require.ErrorAs(t, err, &accountErr)
	assert.Equal(t, code, accountErr.Code)
}

func post(t *testing.T, h *ledgertest.Harness, account *entity.Account, category *entity.Category, amount string, date time.Time) *entity.Transaction {
	t.Helper()
	txn := entity.NewTransaction(account.UserID, account.ID, category.ID, entity.TransactionType(category.Type),
		ledgertest.Dec(amount), date, h.Today(), category.Name, entity.TransactionSourceManual)
	require.NoError(t, h.Poster.Post(context.Background(), txn))
	return txn
}

func TestAccountLifecycle(t *testing.T) {
	h := ledgertest.New(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := NewCreateAccountUseCase(h.Accounts).Execute(ctx, CreateAccountInput{
		UserID:         userID,
		Name:           " Nubank ",
		InitialBalance: ledgertest.Dec("1500.456"),
	})
	requireAccountCode(t, err, domainerror.ErrCodeInvalidInitialBalance)

	created, err := NewCreateAccountUseCase(h.Accounts).Execute(ctx, CreateAccountInput{
		UserID:         userID,
		Name:           " Nubank ",
		InitialBalance: ledgertest.Dec("1500.45"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nubank", created.Account.Name)
	assert.Equal(t, entity.AccountKindChecking, created.Account.Kind)
	assert.Equal(t, "1500.45", created.Account.Balance.StringFixed(2))
	assert.True(t, created.Account.Active)

	_, err = NewCreateAccountUseCase(h.Accounts).Execute(ctx, CreateAccountInput{UserID: userID, Name: ""})
	requireAccountCode(t, err, domainerror.ErrCodeAccountNameRequired)

	_, err = NewCreateAccountUseCase(h.Accounts).Execute(ctx, CreateAccountInput{UserID: userID, Name: "X", Kind: "savings"})
	requireAccountCode(t, err, domainerror.ErrCodeInvalidAccountKind)

	name := "Nubank PJ"
	kind := entity.AccountKindInvestment
	updated, err := NewUpdateAccountUseCase(h.Accounts).Execute(ctx, UpdateAccountInput{
		AccountID: created.Account.ID, UserID: userID, Name: &name, Kind: &kind,
	})
	require.NoError(t, err)
	assert.Equal(t, "Nubank PJ", updated.Account.Name)
	assert.Equal(t, entity.AccountKindInvestment, updated.Account.Kind)

	_, err = NewUpdateAccountUseCase(h.Accounts).Execute(ctx, UpdateAccountInput{
		AccountID: created.Account.ID, UserID: uuid.New(), Name: &name,
	})
	requireAccountCode(t, err, domainerror.ErrCodeAccountNotFound)

	_, err = NewDeactivateAccountUseCase(h.Accounts).Execute(ctx, DeactivateAccountInput{AccountID: created.Account.ID, UserID: userID})
	require.NoError(t, err)

	list := NewListAccountsUseCase(h.Accounts)
	active, err := list.Execute(ctx, ListAccountsInput{UserID: userID})
	require.NoError(t, err)
	assert.Empty(t, active.Accounts)

	all, err := list.Execute(ctx, ListAccountsInput{UserID: userID, IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, all.Accounts, 1)
	assert.False(t, all.Accounts[0].Active)

	got, err := NewGetAccountUseCase(h.Accounts).Execute(ctx, GetAccountInput{AccountID: created.Account.ID, UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, "1500.45", got.Account.InitialBalance.StringFixed(2))

	h.RequireClosed(t)
}

func TestAuditBalance(t *testing.T) {
	h := ledgertest.New(t)
	ctx := context.Background()
	userID := uuid.New()

	checking := h.Account(t, userID, "Checking", "1000")
	food := h.Category(t, "Food", entity.CategoryTypeExpense)
	post(t, h, checking, food, "120.50", h.Today())
	post(t, h, checking, food, "80", h.Today().AddDate(0, 0, 3))

	audit, err := NewAuditBalanceUseCase(h.Accounts, h.Transactions).Execute(ctx, AuditBalanceInput{AccountID: checking.ID, UserID: userID})
	require.NoError(t, err)
	assert.True(t, audit.InSync)
	assert.Equal(t, "879.50", audit.StoredBalance.StringFixed(2))
	assert.Equal(t, "879.50", audit.DerivedBalance.StringFixed(2))
	assert.Equal(t, "120.50", audit.CompletedExpense.StringFixed(2))

	require.NoError(t, h.DB.Exec("UPDATE accounts SET balance = balance + 5 WHERE id = ?", checking.ID).Error)

	all, err := NewAuditAllUseCase(h.Accounts, h.Transactions).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, all.DriftCount)
	require.Len(t, all.Audits, 1)
	assert.Equal(t, "5.00", all.Audits[0].Drift.StringFixed(2))

	require.NoError(t, h.DB.Exec("UPDATE accounts SET balance = balance - 5 WHERE id = ?", checking.ID).Error)
	h.RequireClosed(t)
}

func TestGetStatement(t *testing.T) {
	h := ledgertest.New(t)
	ctx := context.Background()
	userID := uuid.New()

	checking := h.Account(t, userID, "Checking", "1000")
	savings := h.Account(t, userID, "Savings", "200")
	food := h.Category(t, "Food", entity.CategoryTypeExpense)
	salary := h.Category(t, "Salary", entity.CategoryTypeIncome)

	post(t, h, checking, food, "100", ledgertest.Date(2024, time.February, 10))
	post(t, h, checking, salary, "50", ledgertest.Date(2024, time.March, 1))
	post(t, h, checking, food, "30", ledgertest.Date(2024, time.March, 10))
	post(t, h, checking, food, "10", ledgertest.Date(2024, time.March, 10))
	post(t, h, checking, food, "40", ledgertest.Date(2024, time.March, 20))
	post(t, h, savings, salary, "70", ledgertest.Date(2024, time.March, 2))
	post(t, h, checking, salary, "999", ledgertest.Date(2024, time.April, 1))

	uc := NewGetStatementUseCase(h.Accounts, h.Transactions)

	out, err := uc.Execute(ctx, GetStatementInput{UserID: userID, AccountID: &checking.ID, Month: ledgertest.Date(2024, time.March, 15)})
	require.NoError(t, err)

	assert.Equal(t, "900.00", out.OpeningBalance.StringFixed(2))
	assert.Equal(t, "50.00", out.CompletedIncome.StringFixed(2))
	assert.Equal(t, "40.00", out.CompletedExpense.StringFixed(2))
	assert.Equal(t, "40.00", out.PendingExpense.StringFixed(2))
	assert.Equal(t, "910.00", out.ClosingBalance.StringFixed(2))
	assert.Equal(t, "870.00", out.ProjectedBalance.StringFixed(2))

	require.Len(t, out.Days, 3)
	assert.Equal(t, "950.00", out.Days[0].Balance.StringFixed(2))
	assert.Len(t, out.Days[1].Entries, 2)
	assert.Equal(t, "910.00", out.Days[1].Balance.StringFixed(2))
	assert.Equal(t, "910.00", out.Days[2].Balance.StringFixed(2), "pending movements do not move the running balance")
	assert.Equal(t, entity.TransactionStatusPending, out.Days[2].Entries[0].Status)

	combined, err := uc.Execute(ctx, GetStatementInput{UserID: userID, Month: ledgertest.Date(2024, time.March, 1)})
	require.NoError(t, err)
	assert.Equal(t, "1100.00", combined.OpeningBalance.StringFixed(2))
	assert.Equal(t, "1180.00", combined.ClosingBalance.StringFixed(2))
	assert.Len(t, combined.Days, 4)

	_, err = uc.Execute(ctx, GetStatementInput{UserID: userID})
	requireAccountCode(t, err, domainerror.ErrCodeInvalidMonth)

	h.RequireClosed(t)
}
