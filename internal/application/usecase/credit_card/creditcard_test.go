package creditcard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/test/ledgertest"
)

type fixture struct {
	h        *ledgertest.Harness
	userID   uuid.UUID
	checking *entity.Account
	food     *entity.Category
	card     *CardOutput

	purchase *RecordPurchaseUseCase
	invoice  *GetInvoiceUseCase
	pay      *PayInvoiceUseCase
}

func newFixture(t *testing.T) *fixture {
	h := ledgertest.New(t)
	userID := uuid.New()

	created, err := NewCreateCardUseCase(h.Cards).Execute(context.Background(), CreateCardInput{
		UserID:    userID,
		Name:      "Nubank",
		DueDay:    10,
		CardLimit: ledgertest.Dec("5000"),
	})
	require.NoError(t, err)

	f := &fixture{
		h:        h,
		userID:   userID,
		checking: h.Account(t, userID, "Checking", "1000"),
		food:     h.Category(t, "Food", entity.CategoryTypeExpense),
		card:     created.Card,
		purchase: NewRecordPurchaseUseCase(h.Transactor, h.Cards, h.Categories, h.Poster, ledgertest.Currency),
		invoice:  NewGetInvoiceUseCase(h.Cards, ledgertest.Currency),
		pay:      NewPayInvoiceUseCase(h.Transactor, h.Cards, h.Poster, ledgertest.Currency),
	}
	t.Cleanup(func() { h.RequireClosed(t) })
	return f
}

func (f *fixture) buy(t *testing.T, total string, installments int, firstDue string) *PurchaseOutput {
	t.Helper()
	out, err := f.purchase.Execute(context.Background(), RecordPurchaseInput{
		CardID:        f.card.ID,
		UserID:        f.userID,
		CategoryID:    f.food.ID,
		Description:   "Geladeira",
		TotalAmount:   ledgertest.Dec(total),
		Installments:  installments,
		FirstDueMonth: firstDue,
	})
	require.NoError(t, err)
	return out.Purchase
}

func requireCardCode(t *testing.T, err error, code domainerror.CreditCardErrorCode) {
	t.Helper()
	var cardErr *domainerror.CreditCardError
	require.ErrorAs(t, err, &cardErr)
	assert.Equal(t, code, cardErr.Code)
}

func TestInvoicePaymentScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	purchase := f.buy(t, "900", 3, "2024-01")
	require.Len(t, purchase.Schedule, 3)
	for i, inst := range purchase.Schedule {
		assert.Equal(t, "300.00", inst.Amount.StringFixed(2))
		assert.Equal(t, i+1, inst.InstallmentNumber)
		assert.False(t, inst.Paid)
	}
	assert.Equal(t, ledgertest.Date(2024, time.March, 1), purchase.Schedule[2].DueDate.UTC())
	f.h.RequireBalance(t, f.checking.ID, "1000")

	invoice, err := f.invoice.Execute(ctx, GetInvoiceInput{CardID: f.card.ID, UserID: f.userID, Month: "2024-01"})
	require.NoError(t, err)
	require.Len(t, invoice.Lines, 1)
	assert.Equal(t, "1/3", invoice.Lines[0].Installment)
	assert.Equal(t, "Geladeira", invoice.Lines[0].Description)
	assert.Contains(t, invoice.FormattedTotal, "300,00")

	paid, err := f.pay.Execute(ctx, PayInvoiceInput{CardID: f.card.ID, UserID: f.userID, AccountID: f.checking.ID, Month: "2024-01"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), paid.InstallmentsPaid)
	f.h.RequireBalance(t, f.checking.ID, "700")

	payment, err := f.h.Transactions.FindByID(ctx, paid.TransactionID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "Pagamento fatura Nubank - 01/2024", payment.Description)
	assert.Equal(t, entity.TransactionSourceInvoicePayment, payment.Source)
	assert.Equal(t, entity.TransactionStatusCompleted, payment.Status)
	assert.Equal(t, f.h.Refs.Get(entity.SystemKeyCreditCardPayment), payment.CategoryID)
	assert.Equal(t, f.h.Today(), payment.Date.UTC())

	purchases, err := NewListPurchasesUseCase(f.h.Cards).Execute(ctx, ListPurchasesInput{CardID: f.card.ID, UserID: f.userID})
	require.NoError(t, err)
	require.Len(t, purchases.Purchases, 1)
	assert.Equal(t, 1, purchases.Purchases[0].PaidCount)
	assert.True(t, purchases.Purchases[0].Schedule[0].Paid)
	assert.False(t, purchases.Purchases[0].Schedule[1].Paid)

	_, err = f.pay.Execute(ctx, PayInvoiceInput{CardID: f.card.ID, UserID: f.userID, AccountID: f.checking.ID, Month: "2024-01"})
	requireCardCode(t, err, domainerror.ErrCodeInvoiceEmpty)
	f.h.RequireBalance(t, f.checking.ID, "700")

	cards, err := NewListCardsUseCase(f.h.Cards).Execute(ctx, ListCardsInput{UserID: f.userID})
	require.NoError(t, err)
	require.Len(t, cards.Cards, 1)
	assert.Equal(t, "600.00", cards.Cards[0].UsedLimit.StringFixed(2))
	assert.Equal(t, "4400.00", cards.Cards[0].AvailableLimit.StringFixed(2))

	_, err = NewDeletePurchaseUseCase(f.h.Transactor, f.h.Cards).Execute(ctx, DeletePurchaseInput{
		CardID: f.card.ID, PurchaseID: purchase.ID, UserID: f.userID,
	})
	requireCardCode(t, err, domainerror.ErrCodePurchaseHasPaidInstallments)

	deleted, err := transaction.NewDeleteTransactionUseCase(f.h.Transactor, f.h.Transactions, f.h.Cards, f.h.Debts, f.h.Investments, f.h.Poster).
		Execute(ctx, transaction.DeleteTransactionInput{TransactionID: paid.TransactionID, UserID: f.userID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.ReleasedInstallments)
	f.h.RequireBalance(t, f.checking.ID, "1000")

	invoice, err = f.invoice.Execute(ctx, GetInvoiceInput{CardID: f.card.ID, UserID: f.userID, Month: "2024-01"})
	require.NoError(t, err)
	assert.Len(t, invoice.Lines, 1, "releasing the payment reopens the installment")

	_, err = NewDeletePurchaseUseCase(f.h.Transactor, f.h.Cards).Execute(ctx, DeletePurchaseInput{
		CardID: f.card.ID, PurchaseID: purchase.ID, UserID: f.userID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.h.Count(t, "installments"))
}

func TestInvoicePayment_OnlyDeleteReopensInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.buy(t, "900", 3, "2024-01")
	paid, err := f.pay.Execute(ctx, PayInvoiceInput{CardID: f.card.ID, UserID: f.userID, AccountID: f.checking.ID, Month: "2024-01"})
	require.NoError(t, err)
	f.h.RequireBalance(t, f.checking.ID, "700")

	update := transaction.NewUpdateTransactionUseCase(f.h.Transactor, f.h.Transactions, f.h.Poster)
	revert := transaction.NewRevertTransactionUseCase(f.h.Transactor, f.h.Transactions, f.h.Poster)

	amount := ledgertest.Dec("1")
	date := ledgertest.Date(2024, time.March, 20)
	other := f.h.Account(t, f.userID, "Savings", "0")
	tests := []struct {
		name  string
		input transaction.UpdateTransactionInput
	}{
		{name: "amount", input: transaction.UpdateTransactionInput{Amount: &amount}},
		{name: "date", input: transaction.UpdateTransactionInput{Date: &date}},
		{name: "account", input: transaction.UpdateTransactionInput{AccountID: &other.ID}},
		{name: "category", input: transaction.UpdateTransactionInput{CategoryID: &f.food.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			input.TransactionID = paid.TransactionID
			input.UserID = f.userID
			_, err := update.Execute(ctx, input)
			requireTxnCode(t, err, domainerror.ErrCodeBookedTransactionImmutable)
		})
	}

	_, err = revert.Execute(ctx, transaction.ChangeStatusInput{TransactionID: paid.TransactionID, UserID: f.userID})
	requireTxnCode(t, err, domainerror.ErrCodeBookedTransactionImmutable)
	f.h.RequireBalance(t, f.checking.ID, "700")

	description := "Fatura janeiro"
	same := ledgertest.Dec("300")
	renamed, err := update.Execute(ctx, transaction.UpdateTransactionInput{
		TransactionID: paid.TransactionID,
		UserID:        f.userID,
		Description:   &description,
		Amount:        &same,
	})
	require.NoError(t, err, "description edits and unchanged values are allowed")
	assert.Equal(t, "Fatura janeiro", renamed.Transaction.Description)
	f.h.RequireBalance(t, f.checking.ID, "700")

	invoice, err := f.invoice.Execute(ctx, GetInvoiceInput{CardID: f.card.ID, UserID: f.userID, Month: "2024-01"})
	require.NoError(t, err)
	assert.Empty(t, invoice.Lines, "the invoice stays settled")
}

func requireTxnCode(t *testing.T, err error, code domainerror.TransactionErrorCode) {
	t.Helper()
	var txnErr *domainerror.TransactionError
	require.ErrorAs(t, err, &txnErr)
	assert.Equal(t, code, txnErr.Code)
}

func TestInvoiceCombinesPurchases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.buy(t, "100", 3, "2024-02")
	f.buy(t, "59.90", 1, "2024-02")
	f.buy(t, "45", 1, "2024-03")

	invoice, err := f.invoice.Execute(ctx, GetInvoiceInput{CardID: f.card.ID, UserID: f.userID, Month: "2024-02"})
	require.NoError(t, err)
	require.Len(t, invoice.Lines, 2)
	assert.Equal(t, "93.24", invoice.Total.StringFixed(2))

	march, err := f.invoice.Execute(ctx, GetInvoiceInput{CardID: f.card.ID, UserID: f.userID, Month: "2024-03"})
	require.NoError(t, err)
	assert.Equal(t, "78.33", march.Total.StringFixed(2))

	empty, err := f.invoice.Execute(ctx, GetInvoiceInput{CardID: f.card.ID, UserID: f.userID, Month: "2023-12"})
	require.NoError(t, err)
	assert.Empty(t, empty.Lines)
	assert.True(t, empty.Total.IsZero())

	paid, err := f.pay.Execute(ctx, PayInvoiceInput{CardID: f.card.ID, UserID: f.userID, AccountID: f.checking.ID, Month: "2024-02"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), paid.InstallmentsPaid)
	f.h.RequireBalance(t, f.checking.ID, "906.76")
}

func TestRecordPurchase_SplitsRemainder(t *testing.T) {
	f := newFixture(t)

	purchase := f.buy(t, "100", 3, "")
	require.Len(t, purchase.Schedule, 3)
	assert.Equal(t, "33.34", purchase.Schedule[0].Amount.StringFixed(2))
	assert.Equal(t, "33.33", purchase.Schedule[1].Amount.StringFixed(2))
	assert.Equal(t, "33.33", purchase.Schedule[2].Amount.StringFixed(2))
	assert.Equal(t, ledgertest.Date(2024, time.March, 1), purchase.FirstDueMonth.UTC())
	assert.Equal(t, f.h.Today(), purchase.PurchaseDate.UTC())
}

func TestRecordPurchase_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	salary := f.h.Category(t, "Salary", entity.CategoryTypeIncome)

	inactive, err := NewCreateCardUseCase(f.h.Cards).Execute(ctx, CreateCardInput{
		UserID: f.userID, Name: "Old", DueDay: 5, CardLimit: ledgertest.Dec("100"),
	})
	require.NoError(t, err)
	_, err = NewDeactivateCardUseCase(f.h.Cards).Execute(ctx, DeactivateCardInput{CardID: inactive.Card.ID, UserID: f.userID})
	require.NoError(t, err)

	valid := func() RecordPurchaseInput {
		return RecordPurchaseInput{
			CardID:       f.card.ID,
			UserID:       f.userID,
			CategoryID:   f.food.ID,
			Description:  "TV",
			TotalAmount:  ledgertest.Dec("1200"),
			Installments: 12,
		}
	}

	tests := []struct {
		name   string
		mutate func(in *RecordPurchaseInput)
		code   domainerror.CreditCardErrorCode
	}{
		{name: "zero amount", mutate: func(in *RecordPurchaseInput) { in.TotalAmount = ledgertest.Dec("0") }, code: domainerror.ErrCodeInvalidPurchaseAmount},
		{name: "sub-cent amount", mutate: func(in *RecordPurchaseInput) { in.TotalAmount = ledgertest.Dec("99.999") }, code: domainerror.ErrCodeInvalidPurchaseAmount},
		{name: "no installments", mutate: func(in *RecordPurchaseInput) { in.Installments = 0 }, code: domainerror.ErrCodeInvalidInstallments},
		{name: "too many installments", mutate: func(in *RecordPurchaseInput) { in.Installments = MaxInstallments + 1 }, code: domainerror.ErrCodeInvalidInstallments},
		{name: "blank description", mutate: func(in *RecordPurchaseInput) { in.Description = "  " }, code: domainerror.ErrCodeMissingCreditCardFields},
		{name: "bad month", mutate: func(in *RecordPurchaseInput) { in.FirstDueMonth = "2024-13" }, code: domainerror.ErrCodeInvalidInvoiceMonth},
		{name: "unknown card", mutate: func(in *RecordPurchaseInput) { in.CardID = uuid.New() }, code: domainerror.ErrCodeCreditCardNotFound},
		{name: "other user", mutate: func(in *RecordPurchaseInput) { in.UserID = uuid.New() }, code: domainerror.ErrCodeCreditCardNotFound},
		{name: "inactive card", mutate: func(in *RecordPurchaseInput) { in.CardID = inactive.Card.ID }, code: domainerror.ErrCodeCreditCardInactive},
		{name: "unknown category", mutate: func(in *RecordPurchaseInput) { in.CategoryID = uuid.New() }, code: domainerror.ErrCodeCardCategoryNotFound},
		{name: "income category", mutate: func(in *RecordPurchaseInput) { in.CategoryID = salary.ID }, code: domainerror.ErrCodeCardCategoryMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			_, err := f.purchase.Execute(ctx, in)
			requireCardCode(t, err, tt.code)
		})
	}
	assert.Equal(t, int64(0), f.h.Count(t, "credit_card_purchases"))
}

func TestPayInvoice_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.buy(t, "200", 2, "2024-03")

	_, err := f.pay.Execute(ctx, PayInvoiceInput{CardID: f.card.ID, UserID: f.userID, AccountID: f.checking.ID, Month: "03/2024"})
	requireCardCode(t, err, domainerror.ErrCodeInvalidInvoiceMonth)

	_, err = f.pay.Execute(ctx, PayInvoiceInput{CardID: f.card.ID, UserID: f.userID, AccountID: uuid.New(), Month: "2024-03"})
	var accountErr *domainerror.AccountError
	require.ErrorAs(t, err, &accountErr)
	assert.Equal(t, domainerror.ErrCodeAccountNotFound, accountErr.Code)

	_, err = f.pay.Execute(ctx, PayInvoiceInput{CardID: f.card.ID, UserID: f.userID, AccountID: f.checking.ID, Month: "2024-05"})
	requireCardCode(t, err, domainerror.ErrCodeInvoiceEmpty)

	f.h.RequireBalance(t, f.checking.ID, "1000")
	assert.Equal(t, int64(0), f.h.Count(t, "transactions"))
}

func TestPayInvoice_FallbackCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.buy(t, "50", 1, "2024-03")

	pay := NewPayInvoiceUseCase(f.h.Transactor, f.h.Cards, f.h.NewPoster(entity.CategoryRefs{}), ledgertest.Currency)
	paid, err := pay.Execute(ctx, PayInvoiceInput{CardID: f.card.ID, UserID: f.userID, AccountID: f.checking.ID, Month: "2024-03"})
	require.NoError(t, err)

	payment, err := f.h.Transactions.FindByID(ctx, paid.TransactionID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, f.food.ID, payment.CategoryID)
	f.h.RequireBalance(t, f.checking.ID, "950")
}

func TestManageCards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := NewCreateCardUseCase(f.h.Cards).Execute(ctx, CreateCardInput{UserID: f.userID, Name: "X", DueDay: 32})
	requireCardCode(t, err, domainerror.ErrCodeInvalidDueDay)

	_, err = NewCreateCardUseCase(f.h.Cards).Execute(ctx, CreateCardInput{UserID: f.userID, Name: "X", DueDay: 1, CardLimit: ledgertest.Dec("-1")})
	requireCardCode(t, err, domainerror.ErrCodeInvalidCardLimit)

	_, err = NewCreateCardUseCase(f.h.Cards).Execute(ctx, CreateCardInput{UserID: f.userID, DueDay: 1})
	requireCardCode(t, err, domainerror.ErrCodeMissingCreditCardFields)

	f.buy(t, "300", 3, "2024-04")

	name := "Nubank Ultravioleta"
	dueDay := 20
	limit := ledgertest.Dec("8000")
	updated, err := NewUpdateCardUseCase(f.h.Cards).Execute(ctx, UpdateCardInput{
		CardID: f.card.ID, UserID: f.userID, Name: &name, DueDay: &dueDay, CardLimit: &limit,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Card.Name)
	assert.Equal(t, 20, updated.Card.DueDay)
	assert.Equal(t, "300.00", updated.Card.UsedLimit.StringFixed(2))
	assert.Equal(t, "7700.00", updated.Card.AvailableLimit.StringFixed(2))

	_, err = NewDeactivateCardUseCase(f.h.Cards).Execute(ctx, DeactivateCardInput{CardID: f.card.ID, UserID: f.userID})
	require.NoError(t, err)

	active, err := NewListCardsUseCase(f.h.Cards).Execute(ctx, ListCardsInput{UserID: f.userID})
	require.NoError(t, err)
	assert.Empty(t, active.Cards)

	all, err := NewListCardsUseCase(f.h.Cards).Execute(ctx, ListCardsInput{UserID: f.userID, IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, all.Cards, 1)
	assert.False(t, all.Cards[0].Active)

	paid, err := f.pay.Execute(ctx, PayInvoiceInput{CardID: f.card.ID, UserID: f.userID, AccountID: f.checking.ID, Month: "2024-04"})
	require.NoError(t, err, "a deactivated card still accepts invoice payments")
	assert.Equal(t, int64(1), paid.InstallmentsPaid)
	f.h.RequireBalance(t, f.checking.ID, "900")
}
