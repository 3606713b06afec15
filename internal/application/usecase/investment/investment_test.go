package investment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/test/ledgertest"
)

func requireInvestmentCode(t *testing.T, err error, code domainerror.InvestmentErrorCode) {
	t.Helper()
	var invErr *domainerror.InvestmentError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, code, invErr.Code)
}

func createPosition(t *testing.T, h *ledgertest.Harness, userID uuid.UUID) *InvestmentOutput {
	t.Helper()
	out, err := NewCreateInvestmentUseCase(h.Investments).Execute(context.Background(), CreateInvestmentInput{
		UserID: userID,
		Name:   "Petrobras",
		Ticker: " petr4 ",
		Type:   entity.InvestmentTypeStock,
	})
	require.NoError(t, err)
	return out.Investment
}

func TestRecordOperation_PositionRecomputation(t *testing.T) {
	h := ledgertest.New(t)
	t.Cleanup(func() { h.RequireClosed(t) })
	ctx := context.Background()
	userID := uuid.New()
	checking := h.Account(t, userID, "Checking", "1000")

	inv := createPosition(t, h, userID)
	assert.Equal(t, "PETR4", inv.Ticker)
	assert.True(t, inv.Quantity.IsZero())

	record := NewRecordOperationUseCase(h.Transactor, h.Investments, h.Poster)
	op := func(opType entity.OperationType, qty, price, fees string, account *uuid.UUID) *RecordOperationOutput {
		t.Helper()
		out, err := record.Execute(ctx, RecordOperationInput{
			InvestmentID: inv.ID,
			UserID:       userID,
			Type:         opType,
			Quantity:     ledgertest.Dec(qty),
			Price:        ledgertest.Dec(price),
			Fees:         ledgertest.Dec(fees),
			AccountID:    account,
		})
		require.NoError(t, err)
		return out
	}

	buy := op(entity.OperationTypeBuy, "10", "10", "0", &checking.ID)
	assert.Equal(t, "100.00", buy.Operation.TotalAmount.StringFixed(2))
	require.NotNil(t, buy.Operation.TransactionID)
	assert.Nil(t, buy.Operation.RealizedGain)
	h.RequireBalance(t, checking.ID, "900")

	cashLeg, err := h.Transactions.FindByID(ctx, *buy.Operation.TransactionID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Compra - PETR4", cashLeg.Description)
	assert.Equal(t, entity.TransactionTypeExpense, cashLeg.Type)
	assert.Equal(t, h.Refs.Get(entity.SystemKeyInvestmentBuy), cashLeg.CategoryID)
	assert.Equal(t, entity.TransactionSourceInvestment, cashLeg.Source)

	second := op(entity.OperationTypeBuy, "10", "20", "2.50", nil)
	assert.Equal(t, "202.50", second.Operation.TotalAmount.StringFixed(2))
	assert.Nil(t, second.Operation.TransactionID)
	assert.Equal(t, "20", second.Investment.Quantity.String())
	assert.Equal(t, "15", second.Investment.AveragePrice.String())
	assert.Equal(t, "20", second.Investment.CurrentPrice.String())
	h.RequireBalance(t, checking.ID, "900")

	sell := op(entity.OperationTypeSell, "5", "18", "1", &checking.ID)
	assert.Equal(t, "89.00", sell.Operation.TotalAmount.StringFixed(2))
	require.NotNil(t, sell.Operation.RealizedGain)
	assert.Equal(t, "14.00", sell.Operation.RealizedGain.StringFixed(2))
	assert.Equal(t, "15", sell.Investment.Quantity.String())
	assert.Equal(t, "15", sell.Investment.AveragePrice.String())
	assert.Equal(t, "270.00", sell.Investment.MarketValue.StringFixed(2))
	assert.Equal(t, "45.00", sell.Investment.UnrealizedGain.StringFixed(2))
	h.RequireBalance(t, checking.ID, "989")

	_, err = record.Execute(ctx, RecordOperationInput{
		InvestmentID: inv.ID, UserID: userID, Type: entity.OperationTypeSell,
		Quantity: ledgertest.Dec("16"), Price: ledgertest.Dec("18"), AccountID: &checking.ID,
	})
	requireInvestmentCode(t, err, domainerror.ErrCodeInsufficientQuantity)
	h.RequireBalance(t, checking.ID, "989")

	dividend := op(entity.OperationTypeDividend, "1", "7.5", "0", &checking.ID)
	assert.Equal(t, "15", dividend.Investment.Quantity.String(), "income leaves the position untouched")
	assert.Equal(t, "18", dividend.Investment.CurrentPrice.String())
	h.RequireBalance(t, checking.ID, "996.50")

	income, err := h.Transactions.FindByID(ctx, *dividend.Operation.TransactionID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Proventos - PETR4", income.Description)
	assert.Equal(t, h.Refs.Get(entity.SystemKeyInvestmentIncome), income.CategoryID)

	ops, err := NewListOperationsUseCase(h.Investments).Execute(ctx, ListOperationsInput{InvestmentID: inv.ID, UserID: userID})
	require.NoError(t, err)
	assert.Len(t, ops.Operations, 4)
	assert.Equal(t, "14.00", ops.RealizedGain.StringFixed(2))
	assert.Equal(t, "7.50", ops.Income.StringFixed(2))

	stored, err := h.Investments.FindByID(ctx, inv.ID, userID)
	require.NoError(t, err)
	assert.True(t, stored.Quantity.Equal(decimal.NewFromInt(15)))
	assert.True(t, stored.AveragePrice.Equal(decimal.NewFromInt(15)))
}

func TestRecordOperation_Rejections(t *testing.T) {
	h := ledgertest.New(t)
	ctx := context.Background()
	userID := uuid.New()
	inv := createPosition(t, h, userID)
	record := NewRecordOperationUseCase(h.Transactor, h.Investments, h.Poster)

	valid := func() RecordOperationInput {
		return RecordOperationInput{
			InvestmentID: inv.ID,
			UserID:       userID,
			Type:         entity.OperationTypeBuy,
			Quantity:     ledgertest.Dec("1"),
			Price:        ledgertest.Dec("10"),
		}
	}

	tests := []struct {
		name   string
		mutate func(in *RecordOperationInput)
		code   domainerror.InvestmentErrorCode
	}{
		{name: "unknown type", mutate: func(in *RecordOperationInput) { in.Type = "split" }, code: domainerror.ErrCodeInvalidOperationType},
		{name: "zero quantity", mutate: func(in *RecordOperationInput) { in.Quantity = decimal.Zero }, code: domainerror.ErrCodeInvalidOperationValues},
		{name: "zero price", mutate: func(in *RecordOperationInput) { in.Price = decimal.Zero }, code: domainerror.ErrCodeInvalidOperationValues},
		{name: "negative fees", mutate: func(in *RecordOperationInput) { in.Fees = ledgertest.Dec("-1") }, code: domainerror.ErrCodeInvalidOperationValues},
		{name: "fees eat the sale", mutate: func(in *RecordOperationInput) {
			in.Type = entity.OperationTypeSell
			in.Fees = ledgertest.Dec("10")
		}, code: domainerror.ErrCodeInvalidOperationValues},
		{name: "sell from empty position", mutate: func(in *RecordOperationInput) { in.Type = entity.OperationTypeSell }, code: domainerror.ErrCodeInsufficientQuantity},
		{name: "unknown investment", mutate: func(in *RecordOperationInput) { in.InvestmentID = uuid.New() }, code: domainerror.ErrCodeInvestmentNotFound},
		{name: "other user", mutate: func(in *RecordOperationInput) { in.UserID = uuid.New() }, code: domainerror.ErrCodeInvestmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			_, err := record.Execute(ctx, in)
			requireInvestmentCode(t, err, tt.code)
		})
	}
	assert.Equal(t, int64(0), h.Count(t, "investment_transactions"))
}

func TestRecordOperation_FallbackCategory(t *testing.T) {
	h := ledgertest.New(t)
	t.Cleanup(func() { h.RequireClosed(t) })
	ctx := context.Background()
	userID := uuid.New()
	checking := h.Account(t, userID, "Checking", "500")
	broker := h.Category(t, "Corretora", entity.CategoryTypeExpense)
	inv := createPosition(t, h, userID)

	record := NewRecordOperationUseCase(h.Transactor, h.Investments, h.NewPoster(entity.CategoryRefs{}))
	out, err := record.Execute(ctx, RecordOperationInput{
		InvestmentID: inv.ID, UserID: userID, Type: entity.OperationTypeBuy,
		Quantity: ledgertest.Dec("2"), Price: ledgertest.Dec("50"), AccountID: &checking.ID,
	})
	require.NoError(t, err)

	txn, err := h.Transactions.FindByID(ctx, *out.Operation.TransactionID, userID)
	require.NoError(t, err)
	assert.Equal(t, broker.ID, txn.CategoryID)
	h.RequireBalance(t, checking.ID, "400")
}

func TestDeleteOperationTransaction_UnlinksOperation(t *testing.T) {
	h := ledgertest.New(t)
	t.Cleanup(func() { h.RequireClosed(t) })
	ctx := context.Background()
	userID := uuid.New()
	checking := h.Account(t, userID, "Checking", "1000")
	inv := createPosition(t, h, userID)

	buy, err := NewRecordOperationUseCase(h.Transactor, h.Investments, h.Poster).Execute(ctx, RecordOperationInput{
		InvestmentID: inv.ID, UserID: userID, Type: entity.OperationTypeBuy,
		Quantity: ledgertest.Dec("4"), Price: ledgertest.Dec("25"), AccountID: &checking.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, buy.Operation.TransactionID)
	h.RequireBalance(t, checking.ID, "900")

	_, err = transaction.NewRevertTransactionUseCase(h.Transactor, h.Transactions, h.Poster).
		Execute(ctx, transaction.ChangeStatusInput{TransactionID: *buy.Operation.TransactionID, UserID: userID})
	var txnErr *domainerror.TransactionError
	require.ErrorAs(t, err, &txnErr)
	assert.Equal(t, domainerror.ErrCodeBookedTransactionImmutable, txnErr.Code)
	h.RequireBalance(t, checking.ID, "900")

	deleted, err := transaction.NewDeleteTransactionUseCase(h.Transactor, h.Transactions, h.Cards, h.Debts, h.Investments, h.Poster).
		Execute(ctx, transaction.DeleteTransactionInput{TransactionID: *buy.Operation.TransactionID, UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.UnlinkedRecords)
	h.RequireBalance(t, checking.ID, "1000")

	ops, err := h.Investments.FindOperations(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Nil(t, ops[0].TransactionID)

	position, err := h.Investments.FindByID(ctx, inv.ID, userID)
	require.NoError(t, err)
	assert.True(t, position.Quantity.Equal(ledgertest.Dec("4")), "the position keeps the operation")
}

func TestInvestmentLifecycle(t *testing.T) {
	h := ledgertest.New(t)
	t.Cleanup(func() { h.RequireClosed(t) })
	ctx := context.Background()
	userID := uuid.New()
	checking := h.Account(t, userID, "Checking", "1000")

	_, err := NewCreateInvestmentUseCase(h.Investments).Execute(ctx, CreateInvestmentInput{UserID: userID, Name: "X", Type: "bond"})
	requireInvestmentCode(t, err, domainerror.ErrCodeInvalidInvestmentType)

	_, err = NewCreateInvestmentUseCase(h.Investments).Execute(ctx, CreateInvestmentInput{UserID: userID, Type: entity.InvestmentTypeCrypto})
	requireInvestmentCode(t, err, domainerror.ErrCodeMissingInvestmentFields)

	opening, err := NewCreateInvestmentUseCase(h.Investments).Execute(ctx, CreateInvestmentInput{
		UserID: userID, Name: "Tesouro Selic", Type: entity.InvestmentTypeTreasure,
		Quantity: ledgertest.Dec("2"), AveragePrice: ledgertest.Dec("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, "100", opening.Investment.CurrentPrice.String(), "mark defaults to the average price")

	inv := createPosition(t, h, userID)
	_, err = NewRecordOperationUseCase(h.Transactor, h.Investments, h.Poster).Execute(ctx, RecordOperationInput{
		InvestmentID: inv.ID, UserID: userID, Type: entity.OperationTypeBuy,
		Quantity: ledgertest.Dec("10"), Price: ledgertest.Dec("30"), AccountID: &checking.ID,
	})
	require.NoError(t, err)

	price := ledgertest.Dec("35")
	name := "Petrobras PN"
	updated, err := NewUpdateInvestmentUseCase(h.Transactor, h.Investments).Execute(ctx, UpdateInvestmentInput{
		InvestmentID: inv.ID, UserID: userID, Name: &name, CurrentPrice: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Investment.Name)
	assert.Equal(t, "350.00", updated.Investment.MarketValue.StringFixed(2))
	assert.Equal(t, "50.00", updated.Investment.UnrealizedGain.StringFixed(2))

	negative := ledgertest.Dec("-1")
	_, err = NewUpdateInvestmentUseCase(h.Transactor, h.Investments).Execute(ctx, UpdateInvestmentInput{
		InvestmentID: inv.ID, UserID: userID, CurrentPrice: &negative,
	})
	requireInvestmentCode(t, err, domainerror.ErrCodeInvalidOperationValues)

	list, err := NewListInvestmentsUseCase(h.Investments).Execute(ctx, ListInvestmentsInput{UserID: userID})
	require.NoError(t, err)
	require.Len(t, list.Investments, 2)
	assert.Equal(t, "550.00", list.MarketValue.StringFixed(2))
	assert.Equal(t, "500.00", list.CostBasis.StringFixed(2))

	_, err = NewDeleteInvestmentUseCase(h.Transactor, h.Investments).Execute(ctx, DeleteInvestmentInput{InvestmentID: inv.ID, UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), h.Count(t, "investment_transactions"))
	assert.Equal(t, int64(1), h.Count(t, "transactions"), "linked ledger rows survive the position")
	h.RequireBalance(t, checking.ID, "700")

	_, err = NewListOperationsUseCase(h.Investments).Execute(ctx, ListOperationsInput{InvestmentID: inv.ID, UserID: userID})
	requireInvestmentCode(t, err, domainerror.ErrCodeInvestmentNotFound)
}
