package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/test/ledgertest"
)

type fixture struct {
	h        *ledgertest.Harness
	userID   uuid.UUID
	checking *entity.Account
	savings  *entity.Account
	food     *entity.Category
	salary   *entity.Category

	create   *CreateTransactionUseCase
	transfer *CreateTransferUseCase
	update   *UpdateTransactionUseCase
	complete *CompleteTransactionUseCase
	revert   *RevertTransactionUseCase
	remove   *DeleteTransactionUseCase
	list     *ListTransactionsUseCase
	imports  *ImportTransactionsUseCase
}

func newFixture(t *testing.T) *fixture {
	h := ledgertest.New(t)
	userID := uuid.New()

	f := &fixture{
		h:        h,
		userID:   userID,
		checking: h.Account(t, userID, "Checking", "1000"),
		savings:  h.Account(t, userID, "Savings", "0"),
		food:     h.Category(t, "Food", entity.CategoryTypeExpense),
		salary:   h.Category(t, "Salary", entity.CategoryTypeIncome),
		create:   NewCreateTransactionUseCase(h.Transactor, h.Poster),
		transfer: NewCreateTransferUseCase(h.Transactor, h.Poster),
		update:   NewUpdateTransactionUseCase(h.Transactor, h.Transactions, h.Poster),
		complete: NewCompleteTransactionUseCase(h.Transactor, h.Transactions, h.Poster),
		revert:   NewRevertTransactionUseCase(h.Transactor, h.Transactions, h.Poster),
		remove:   NewDeleteTransactionUseCase(h.Transactor, h.Transactions, h.Cards, h.Debts, h.Investments, h.Poster),
		list:     NewListTransactionsUseCase(h.Transactions),
		imports:  NewImportTransactionsUseCase(h.Transactor, h.Poster, h.Rules),
	}
	t.Cleanup(func() { h.RequireClosed(t) })
	return f
}

func (f *fixture) book(t *testing.T, account *entity.Account, category *entity.Category, amount string, date time.Time) *TransactionOutput {
	t.Helper()
	out, err := f.create.Execute(context.Background(), CreateTransactionInput{
		UserID:      f.userID,
		AccountID:   account.ID,
		CategoryID:  category.ID,
		Type:        entity.TransactionType(category.Type),
		Amount:      ledgertest.Dec(amount),
		Date:        date,
		Description: category.Name,
	})
	require.NoError(t, err)
	return out.Transaction
}

func requireTxnCode(t *testing.T, err error, code domainerror.TransactionErrorCode) {
	t.Helper()
	var txnErr *domainerror.TransactionError
	require.ErrorAs(t, err, &txnErr)
	assert.Equal(t, code, txnErr.Code)
	assert.True(t, domainerror.IsPrecondition(err))
}

func TestLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := f.h.Today()

	expense := f.book(t, f.checking, f.food, "200", today.AddDate(0, 0, -1))
	assert.Equal(t, entity.TransactionStatusCompleted, expense.Status)
	f.h.RequireBalance(t, f.checking.ID, "800")

	income := f.book(t, f.checking, f.salary, "500", today.AddDate(0, 0, 1))
	assert.Equal(t, entity.TransactionStatusPending, income.Status)
	f.h.RequireBalance(t, f.checking.ID, "800")

	_, err := f.complete.Execute(ctx, ChangeStatusInput{TransactionID: income.ID, UserID: f.userID})
	require.NoError(t, err)
	f.h.RequireBalance(t, f.checking.ID, "1300")

	_, err = f.revert.Execute(ctx, ChangeStatusInput{TransactionID: income.ID, UserID: f.userID})
	require.NoError(t, err)
	f.h.RequireBalance(t, f.checking.ID, "800")
}

func TestCreateTransaction_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inactive := f.h.Account(t, f.userID, "Closed", "50")
	inactive.Active = false
	require.NoError(t, f.h.Accounts.Update(ctx, inactive))

	tests := []struct {
		name  string
		input CreateTransactionInput
		check func(t *testing.T, err error)
	}{
		{
			name: "category type mismatch",
			input: CreateTransactionInput{
				AccountID: f.checking.ID, CategoryID: f.salary.ID,
				Type: entity.TransactionTypeExpense, Amount: ledgertest.Dec("10"),
			},
			check: func(t *testing.T, err error) { requireTxnCode(t, err, domainerror.ErrCodeTxnCategoryMismatch) },
		},
		{
			name: "zero amount",
			input: CreateTransactionInput{
				AccountID: f.checking.ID, CategoryID: f.food.ID,
				Type: entity.TransactionTypeExpense, Amount: decimal.Zero,
			},
			check: func(t *testing.T, err error) { requireTxnCode(t, err, domainerror.ErrCodeInvalidTransactionAmount) },
		},
		{
			name: "below a cent",
			input: CreateTransactionInput{
				AccountID: f.checking.ID, CategoryID: f.food.ID,
				Type: entity.TransactionTypeExpense, Amount: ledgertest.Dec("0.004"),
			},
			check: func(t *testing.T, err error) { requireTxnCode(t, err, domainerror.ErrCodeInvalidTransactionAmount) },
		},
		{
			name: "fraction of a cent",
			input: CreateTransactionInput{
				AccountID: f.checking.ID, CategoryID: f.food.ID,
				Type: entity.TransactionTypeExpense, Amount: ledgertest.Dec("10.005"),
			},
			check: func(t *testing.T, err error) { requireTxnCode(t, err, domainerror.ErrCodeInvalidTransactionAmount) },
		},
		{
			name: "transfer type",
			input: CreateTransactionInput{
				AccountID: f.checking.ID, CategoryID: f.food.ID,
				Type: entity.TransactionTypeTransfer, Amount: ledgertest.Dec("10"),
			},
			check: func(t *testing.T, err error) { requireTxnCode(t, err, domainerror.ErrCodeInvalidTransactionType) },
		},
		{
			name: "unknown category",
			input: CreateTransactionInput{
				AccountID: f.checking.ID, CategoryID: uuid.New(),
				Type: entity.TransactionTypeExpense, Amount: ledgertest.Dec("10"),
			},
			check: func(t *testing.T, err error) { requireTxnCode(t, err, domainerror.ErrCodeTxnCategoryNotFound) },
		},
		{
			name: "inactive account",
			input: CreateTransactionInput{
				AccountID: inactive.ID, CategoryID: f.food.ID,
				Type: entity.TransactionTypeExpense, Amount: ledgertest.Dec("10"),
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, domainerror.ErrAccountInactive) },
		},
		{
			name: "account of another user",
			input: CreateTransactionInput{
				UserID:    uuid.New(),
				AccountID: f.checking.ID, CategoryID: f.food.ID,
				Type: entity.TransactionTypeExpense, Amount: ledgertest.Dec("10"),
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, domainerror.ErrAccountNotFound) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			if input.UserID == uuid.Nil {
				input.UserID = f.userID
			}
			input.Date = f.h.Today()
			_, err := f.create.Execute(ctx, input)
			require.Error(t, err)
			tt.check(t, err)
		})
	}

	assert.Equal(t, int64(0), f.h.Count(t, "transactions"))
	f.h.RequireBalance(t, f.checking.ID, "1000")
}

func TestCreateTransfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.transfer.Execute(ctx, CreateTransferInput{
		UserID:        f.userID,
		FromAccountID: f.checking.ID,
		ToAccountID:   f.savings.ID,
		Amount:        ledgertest.Dec("300"),
		Date:          f.h.Today(),
		Description:   "reserva",
	})
	require.NoError(t, err)

	assert.Equal(t, out.TransferID, *out.Outgoing.TransferID)
	assert.Equal(t, out.TransferID, *out.Incoming.TransferID)
	assert.Equal(t, "Transf. para Savings: reserva", out.Outgoing.Description)
	assert.Equal(t, "Transf. de Checking: reserva", out.Incoming.Description)
	assert.Equal(t, f.h.Refs.TransferOut, out.Outgoing.CategoryID)
	assert.Equal(t, f.h.Refs.TransferIn, out.Incoming.CategoryID)

	f.h.RequireBalance(t, f.checking.ID, "700")
	f.h.RequireBalance(t, f.savings.ID, "300")
}

func TestCreateTransfer_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.transfer.Execute(ctx, CreateTransferInput{
		UserID: f.userID, FromAccountID: f.checking.ID, ToAccountID: f.checking.ID,
		Amount: ledgertest.Dec("10"), Date: f.h.Today(),
	})
	requireTxnCode(t, err, domainerror.ErrCodeSameTransferAccount)

	unconfigured := NewCreateTransferUseCase(f.h.Transactor, f.h.NewPoster(entity.CategoryRefs{}))
	_, err = unconfigured.Execute(ctx, CreateTransferInput{
		UserID: f.userID, FromAccountID: f.checking.ID, ToAccountID: f.savings.ID,
		Amount: ledgertest.Dec("10"), Date: f.h.Today(),
	})
	requireTxnCode(t, err, domainerror.ErrCodeTransferCategoriesMissing)

	_, err = f.transfer.Execute(ctx, CreateTransferInput{
		UserID: f.userID, FromAccountID: f.checking.ID, ToAccountID: uuid.New(),
		Amount: ledgertest.Dec("10"), Date: f.h.Today(),
	})
	assert.ErrorIs(t, err, domainerror.ErrAccountNotFound)

	assert.Equal(t, int64(0), f.h.Count(t, "transactions"))
	f.h.RequireBalance(t, f.checking.ID, "1000")
}

func TestUpdateTransaction_MoveAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	txn := f.book(t, f.checking, f.food, "100", f.h.Today())
	f.h.RequireBalance(t, f.checking.ID, "900")

	newAccount := f.savings.ID
	newAmount := ledgertest.Dec("40")
	out, err := f.update.Execute(ctx, UpdateTransactionInput{
		TransactionID: txn.ID,
		UserID:        f.userID,
		AccountID:     &newAccount,
		Amount:        &newAmount,
	})
	require.NoError(t, err)
	assert.Equal(t, f.savings.ID, out.Transaction.AccountID)

	f.h.RequireBalance(t, f.checking.ID, "1000")
	f.h.RequireBalance(t, f.savings.ID, "-40")
}

func TestUpdateTransaction_RederivesStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	txn := f.book(t, f.checking, f.food, "100", f.h.Today())
	f.h.RequireBalance(t, f.checking.ID, "900")

	future := f.h.Today().AddDate(0, 1, 0)
	out, err := f.update.Execute(ctx, UpdateTransactionInput{TransactionID: txn.ID, UserID: f.userID, Date: &future})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusPending, out.Transaction.Status)
	f.h.RequireBalance(t, f.checking.ID, "1000")

	past := f.h.Today().AddDate(0, 0, -3)
	income := entity.TransactionTypeIncome
	salary := f.salary.ID
	out, err = f.update.Execute(ctx, UpdateTransactionInput{
		TransactionID: txn.ID, UserID: f.userID, Date: &past, Type: &income, CategoryID: &salary,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, out.Transaction.Status)
	f.h.RequireBalance(t, f.checking.ID, "1100")

	_, err = f.update.Execute(ctx, UpdateTransactionInput{
		TransactionID: txn.ID, UserID: f.userID, CategoryID: &f.food.ID,
	})
	requireTxnCode(t, err, domainerror.ErrCodeTxnCategoryMismatch)
	f.h.RequireBalance(t, f.checking.ID, "1100")
}

func TestUpdateTransaction_TransferLeg(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	broker := f.h.Account(t, f.userID, "Broker", "0")

	created, err := f.transfer.Execute(ctx, CreateTransferInput{
		UserID: f.userID, FromAccountID: f.checking.ID, ToAccountID: f.savings.ID,
		Amount: ledgertest.Dec("300"), Date: f.h.Today(), Description: "reserva",
	})
	require.NoError(t, err)

	amount := ledgertest.Dec("120")
	out, err := f.update.Execute(ctx, UpdateTransactionInput{
		TransactionID: created.Incoming.ID, UserID: f.userID, Amount: &amount,
	})
	require.NoError(t, err)
	assert.True(t, out.CounterLeg.Amount.Equal(amount))
	f.h.RequireBalance(t, f.checking.ID, "880")
	f.h.RequireBalance(t, f.savings.ID, "120")

	brokerID := broker.ID
	out, err = f.update.Execute(ctx, UpdateTransactionInput{
		TransactionID: created.Incoming.ID, UserID: f.userID, AccountID: &brokerID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Transf. de Checking: reserva", out.Transaction.Description)
	assert.Equal(t, "Transf. para Broker: reserva", out.CounterLeg.Description)
	f.h.RequireBalance(t, f.savings.ID, "0")
	f.h.RequireBalance(t, broker.ID, "120")

	checkingID := f.checking.ID
	_, err = f.update.Execute(ctx, UpdateTransactionInput{
		TransactionID: created.Incoming.ID, UserID: f.userID, AccountID: &checkingID,
	})
	requireTxnCode(t, err, domainerror.ErrCodeSameTransferAccount)

	_, err = f.update.Execute(ctx, UpdateTransactionInput{
		TransactionID: created.Outgoing.ID, UserID: f.userID, CategoryID: &f.food.ID,
	})
	requireTxnCode(t, err, domainerror.ErrCodeTransferLegImmutable)

	future := f.h.Today().AddDate(0, 0, 5)
	_, err = f.update.Execute(ctx, UpdateTransactionInput{
		TransactionID: created.Outgoing.ID, UserID: f.userID, Date: &future,
	})
	require.NoError(t, err)
	f.h.RequireBalance(t, f.checking.ID, "1000")
	f.h.RequireBalance(t, broker.ID, "0")
}

func TestChangeStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	done := f.book(t, f.checking, f.food, "50", f.h.Today())
	_, err := f.complete.Execute(ctx, ChangeStatusInput{TransactionID: done.ID, UserID: f.userID})
	requireTxnCode(t, err, domainerror.ErrCodeAlreadyCompleted)

	_, err = f.revert.Execute(ctx, ChangeStatusInput{TransactionID: done.ID, UserID: f.userID})
	require.NoError(t, err)
	_, err = f.revert.Execute(ctx, ChangeStatusInput{TransactionID: done.ID, UserID: f.userID})
	requireTxnCode(t, err, domainerror.ErrCodeAlreadyPending)
	f.h.RequireBalance(t, f.checking.ID, "1000")

	created, err := f.transfer.Execute(ctx, CreateTransferInput{
		UserID: f.userID, FromAccountID: f.checking.ID, ToAccountID: f.savings.ID,
		Amount: ledgertest.Dec("100"), Date: f.h.Today().AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	f.h.RequireBalance(t, f.checking.ID, "1000")

	out, err := f.complete.Execute(ctx, ChangeStatusInput{TransactionID: created.Incoming.ID, UserID: f.userID})
	require.NoError(t, err)
	assert.Len(t, out.Transactions, 2)
	f.h.RequireBalance(t, f.checking.ID, "900")
	f.h.RequireBalance(t, f.savings.ID, "100")

	_, err = f.complete.Execute(ctx, ChangeStatusInput{TransactionID: uuid.New(), UserID: f.userID})
	requireTxnCode(t, err, domainerror.ErrCodeTransactionNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	single := f.book(t, f.checking, f.salary, "250", f.h.Today())
	f.h.RequireBalance(t, f.checking.ID, "1250")

	_, err := f.remove.Execute(ctx, DeleteTransactionInput{TransactionID: single.ID, UserID: f.userID})
	require.NoError(t, err)
	f.h.RequireBalance(t, f.checking.ID, "1000")

	created, err := f.transfer.Execute(ctx, CreateTransferInput{
		UserID: f.userID, FromAccountID: f.checking.ID, ToAccountID: f.savings.ID,
		Amount: ledgertest.Dec("75.50"), Date: f.h.Today(),
	})
	require.NoError(t, err)

	out, err := f.remove.Execute(ctx, DeleteTransactionInput{TransactionID: created.Outgoing.ID, UserID: f.userID})
	require.NoError(t, err)
	assert.Len(t, out.DeletedIDs, 2)
	assert.Equal(t, int64(0), f.h.Count(t, "transactions"))
	f.h.RequireBalance(t, f.checking.ID, "1000")
	f.h.RequireBalance(t, f.savings.ID, "0")

	_, err = f.remove.Execute(ctx, DeleteTransactionInput{TransactionID: single.ID, UserID: uuid.New()})
	requireTxnCode(t, err, domainerror.ErrCodeTransactionNotFound)
}

func TestImportTransactions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := f.h.Today()

	out, err := f.imports.Execute(ctx, ImportTransactionsInput{
		UserID:    f.userID,
		AccountID: f.checking.ID,
		Rows: []ImportRow{
			{Date: today.AddDate(0, 0, -2), Description: "Mercado", Amount: ledgertest.Dec("-120.35")},
			{Date: today.AddDate(0, 0, -1), Description: "Pix recebido", Amount: ledgertest.Dec("80")},
			{Date: today.AddDate(0, 0, 3), Description: "Aluguel", Amount: ledgertest.Dec("-500")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.ImportedCount)
	assert.Equal(t, entity.TransactionTypeExpense, out.Transactions[0].Type)
	assert.Equal(t, f.food.ID, out.Transactions[0].CategoryID)
	assert.Equal(t, f.salary.ID, out.Transactions[1].CategoryID)
	assert.Equal(t, entity.TransactionStatusPending, out.Transactions[2].Status)
	assert.Equal(t, entity.TransactionSourceImport, out.Transactions[0].Source)
	f.h.RequireBalance(t, f.checking.ID, "959.65")

	_, err = f.imports.Execute(ctx, ImportTransactionsInput{
		UserID:    f.userID,
		AccountID: f.checking.ID,
		Rows: []ImportRow{
			{Date: today, Description: "ok", Amount: ledgertest.Dec("-10")},
			{Date: today, Description: "bad", Amount: decimal.Zero},
		},
	})
	requireTxnCode(t, err, domainerror.ErrCodeInvalidTransactionAmount)
	assert.Contains(t, err.Error(), "row 2")
	assert.Equal(t, int64(3), f.h.Count(t, "transactions"))
	f.h.RequireBalance(t, f.checking.ID, "959.65")

	_, err = f.imports.Execute(ctx, ImportTransactionsInput{UserID: f.userID, AccountID: f.checking.ID})
	requireTxnCode(t, err, domainerror.ErrCodeEmptyImportBatch)
}

func TestImportTransactions_CategoryRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := f.h.Today()

	transport := f.h.Category(t, "Transport", entity.CategoryTypeExpense)
	bonus := f.h.Category(t, "Bonus", entity.CategoryTypeIncome)

	rules := []*entity.CategoryRule{
		entity.NewCategoryRule(f.userID, `uber|99app`, transport.ID, 1),
		entity.NewCategoryRule(f.userID, `^pix`, bonus.ID, 2),
		entity.NewCategoryRule(uuid.New(), `mercado`, transport.ID, 9),
	}
	disabled := entity.NewCategoryRule(f.userID, `aluguel`, transport.ID, 5)
	disabled.Active = false
	rules = append(rules, disabled)
	for _, rule := range rules {
		require.NoError(t, f.h.Rules.Create(ctx, rule))
	}
	stored, err := f.h.Rules.FindByID(ctx, disabled.ID, f.userID)
	require.NoError(t, err)
	assert.False(t, stored.Active, "an inactive rule is stored inactive")

	out, err := f.imports.Execute(ctx, ImportTransactionsInput{
		UserID:    f.userID,
		AccountID: f.checking.ID,
		Rows: []ImportRow{
			{Date: today, Description: "UBER *TRIP", Amount: ledgertest.Dec("-25")},
			{Date: today, Description: "PIX recebido", Amount: ledgertest.Dec("50")},
			{Date: today, Description: "Pix enviado", Amount: ledgertest.Dec("-10")},
			{Date: today, Description: "Mercado", Amount: ledgertest.Dec("-30")},
			{Date: today, Description: "Aluguel", Amount: ledgertest.Dec("-40")},
			{Date: today, Description: "Uber", Amount: ledgertest.Dec("-5"), CategoryID: &f.food.ID},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.RuleMatched)

	got := make([]uuid.UUID, len(out.Transactions))
	for i, txn := range out.Transactions {
		got[i] = txn.CategoryID
	}
	assert.Equal(t, []uuid.UUID{transport.ID, bonus.ID, f.food.ID, f.food.ID, f.food.ID, f.food.ID}, got,
		"rules only apply to their own type, owner and active state; explicit categories win")
	f.h.RequireBalance(t, f.checking.ID, "940.00")
}

func TestListTransactions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := f.h.Today()

	f.book(t, f.checking, f.food, "100", today.AddDate(0, 0, -2))
	f.book(t, f.checking, f.salary, "300", today.AddDate(0, 0, -1))
	f.book(t, f.checking, f.food, "40", today.AddDate(0, 0, 4))
	f.book(t, f.savings, f.salary, "999", today)

	out, err := f.list.Execute(ctx, ListTransactionsInput{
		UserID:    f.userID,
		AccountID: &f.checking.ID,
		Limit:     2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.Pagination.Total)
	assert.Equal(t, 2, out.Pagination.TotalPages)
	require.Len(t, out.Transactions, 2)
	assert.True(t, out.Transactions[0].Date.After(out.Transactions[1].Date))
	assert.Equal(t, "Checking", out.Transactions[0].Account.Name)
	assert.Equal(t, "Food", out.Transactions[0].Category.Name)

	assert.Equal(t, "300.00", out.Totals.CompletedIncome.StringFixed(2))
	assert.Equal(t, "100.00", out.Totals.CompletedExpense.StringFixed(2))
	assert.Equal(t, "40.00", out.Totals.PendingExpense.StringFixed(2))
	assert.Equal(t, "200.00", out.Totals.Net.StringFixed(2))
	assert.Equal(t, "160.00", out.Totals.Projected.StringFixed(2))

	pending := entity.TransactionStatusPending
	out, err = f.list.Execute(ctx, ListTransactionsInput{UserID: f.userID, Status: &pending})
	require.NoError(t, err)
	assert.Len(t, out.Transactions, 1)
}

func TestTransferDescriptionHelpers(t *testing.T) {
	tests := []struct {
		description string
		base        string
	}{
		{description: "Transf. para Savings: reserva", base: "reserva"},
		{description: "Transf. de Checking", base: ""},
		{description: "Mercado: feira", base: "Mercado: feira"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.base, transferBase(tt.description))
		})
	}

	assert.Equal(t, "Transf. para X", transferDescription(transferOutPrefix, "X", ""))
}
