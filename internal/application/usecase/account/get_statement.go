package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// GetStatementInput represents the input for a monthly statement.
type GetStatementInput struct {
	UserID    uuid.UUID
	AccountID *uuid.UUID // Optional, every account of the user when nil
	Month     time.Time
}

// StatementEntry is one movement listed in a statement day.
type StatementEntry struct {
	TransactionID uuid.UUID
	AccountID     uuid.UUID
	CategoryID    uuid.UUID
	Type          entity.TransactionType
	Status        entity.TransactionStatus
	Amount        decimal.Decimal
	Description   string
}

// StatementDay groups the movements of one calendar date. Balance is the
// running balance after the day's completed movements.
type StatementDay struct {
	Date    time.Time
	Balance decimal.Decimal
	Entries []StatementEntry
}

// GetStatementOutput represents a monthly statement.
type GetStatementOutput struct {
	AccountID        *uuid.UUID
	MonthStart       time.Time
	MonthEnd         time.Time
	OpeningBalance   decimal.Decimal
	CompletedIncome  decimal.Decimal
	CompletedExpense decimal.Decimal
	PendingIncome    decimal.Decimal
	PendingExpense   decimal.Decimal
	ClosingBalance   decimal.Decimal
	ProjectedBalance decimal.Decimal
	Days             []StatementDay
}

// GetStatementUseCase builds the monthly statement of one or every account.
type GetStatementUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetStatementUseCase creates a new GetStatementUseCase instance.
func NewGetStatementUseCase(accountRepo adapter.AccountRepository, transactionRepo adapter.TransactionRepository) *GetStatementUseCase {
	return &GetStatementUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute builds the statement. The opening balance is the initial balance
// of the accounts in scope plus every completed movement dated before the
// month; pending movements are listed but never move the running balance.
func (uc *GetStatementUseCase) Execute(ctx context.Context, input GetStatementInput) (*GetStatementOutput, error) {
	if input.Month.IsZero() {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidMonth,
			"month is required",
			domainerror.ErrInvalidMonth,
		)
	}

	monthStart := entity.MonthStart(input.Month)
	monthEnd := entity.MonthEnd(input.Month)

	opening, err := uc.initialBalance(ctx, input)
	if err != nil {
		return nil, err
	}

	beforeEnd := monthStart.AddDate(0, 0, -1)
	before, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		AccountID: input.AccountID,
		EndDate:   &beforeEnd,
	})
	if err != nil {
		return nil, domainerror.NewStorageError("build statement", fmt.Errorf("failed to sum prior movements: %w", err))
	}
	opening = opening.Add(before.Net())

	transactions, err := uc.transactionRepo.FindAll(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		AccountID: input.AccountID,
		StartDate: &monthStart,
		EndDate:   &monthEnd,
	})
	if err != nil {
		return nil, domainerror.NewStorageError("build statement", fmt.Errorf("failed to list month movements: %w", err))
	}

	output := &GetStatementOutput{
		AccountID:      input.AccountID,
		MonthStart:     monthStart,
		MonthEnd:       monthEnd,
		OpeningBalance: opening,
		Days:           []StatementDay{},
	}

	var totals entity.TransactionTotals
	running := opening
	for _, txn := range transactions {
		totals.Add(txn)
		running = running.Add(txn.BalanceEffect())

		date := entity.DateOf(txn.Date)
		if n := len(output.Days); n == 0 || !output.Days[n-1].Date.Equal(date) {
			output.Days = append(output.Days, StatementDay{Date: date})
		}
		day := &output.Days[len(output.Days)-1]
		day.Balance = running
		day.Entries = append(day.Entries, StatementEntry{
			TransactionID: txn.ID,
			AccountID:     txn.AccountID,
			CategoryID:    txn.CategoryID,
			Type:          txn.Type,
			Status:        txn.Status,
			Amount:        txn.Amount,
			Description:   txn.Description,
		})
	}

	output.CompletedIncome = totals.CompletedIncome
	output.CompletedExpense = totals.CompletedExpense
	output.PendingIncome = totals.PendingIncome
	output.PendingExpense = totals.PendingExpense
	output.ClosingBalance = opening.Add(totals.Net())
	output.ProjectedBalance = opening.Add(totals.Projected())

	return output, nil
}

func (uc *GetStatementUseCase) initialBalance(ctx context.Context, input GetStatementInput) (decimal.Decimal, error) {
	if input.AccountID != nil {
		account, err := findAccount(ctx, uc.accountRepo, *input.AccountID, input.UserID)
		if err != nil {
			return decimal.Zero, err
		}
		return account.InitialBalance, nil
	}

	accounts, err := uc.accountRepo.FindByUser(ctx, input.UserID, true)
	if err != nil {
		return decimal.Zero, domainerror.NewStorageError("build statement", fmt.Errorf("failed to list accounts: %w", err))
	}
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.InitialBalance)
	}
	return total, nil
}
