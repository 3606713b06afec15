package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// BalanceAuditOutput compares the stored balance of one account with the
// closed form initial_balance + completed income - completed expense.
type BalanceAuditOutput struct {
	AccountID        uuid.UUID
	UserID           uuid.UUID
	AccountName      string
	InitialBalance   decimal.Decimal
	StoredBalance    decimal.Decimal
	CompletedIncome  decimal.Decimal
	CompletedExpense decimal.Decimal
	DerivedBalance   decimal.Decimal
	Drift            decimal.Decimal
	InSync           bool
}

// auditor computes balance audits from the transaction totals.
type auditor struct {
	transactionRepo adapter.TransactionRepository
}

func (a auditor) audit(ctx context.Context, account *entity.Account) (*BalanceAuditOutput, error) {
	accountID := account.ID
	totals, err := a.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:    account.UserID,
		AccountID: &accountID,
	})
	if err != nil {
		return nil, domainerror.NewStorageError("audit balance", fmt.Errorf("failed to sum transactions: %w", err))
	}

	audit := entity.BalanceAudit{
		AccountID:        account.ID,
		AccountName:      account.Name,
		InitialBalance:   account.InitialBalance,
		StoredBalance:    account.Balance,
		CompletedIncome:  totals.CompletedIncome,
		CompletedExpense: totals.CompletedExpense,
	}
	return &BalanceAuditOutput{
		AccountID:        account.ID,
		UserID:           account.UserID,
		AccountName:      account.Name,
		InitialBalance:   audit.InitialBalance,
		StoredBalance:    audit.StoredBalance,
		CompletedIncome:  audit.CompletedIncome,
		CompletedExpense: audit.CompletedExpense,
		DerivedBalance:   audit.DerivedBalance(),
		Drift:            audit.Drift(),
		InSync:           audit.InSync(),
	}, nil
}

// AuditBalanceInput represents the input for a single account audit.
type AuditBalanceInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// AuditBalanceUseCase audits the balance of one account.
type AuditBalanceUseCase struct {
	accountRepo adapter.AccountRepository
	auditor     auditor
}

// NewAuditBalanceUseCase creates a new AuditBalanceUseCase instance.
func NewAuditBalanceUseCase(accountRepo adapter.AccountRepository, transactionRepo adapter.TransactionRepository) *AuditBalanceUseCase {
	return &AuditBalanceUseCase{
		accountRepo: accountRepo,
		auditor:     auditor{transactionRepo: transactionRepo},
	}
}

// Execute performs the audit.
func (uc *AuditBalanceUseCase) Execute(ctx context.Context, input AuditBalanceInput) (*BalanceAuditOutput, error) {
	account, err := findAccount(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}
	return uc.auditor.audit(ctx, account)
}

// AuditAllOutput represents the result of auditing every account.
type AuditAllOutput struct {
	Audits     []*BalanceAuditOutput
	DriftCount int
}

// AuditAllUseCase audits every account in the ledger.
type AuditAllUseCase struct {
	accountRepo adapter.AccountRepository
	auditor     auditor
}

// NewAuditAllUseCase creates a new AuditAllUseCase instance.
func NewAuditAllUseCase(accountRepo adapter.AccountRepository, transactionRepo adapter.TransactionRepository) *AuditAllUseCase {
	return &AuditAllUseCase{
		accountRepo: accountRepo,
		auditor:     auditor{transactionRepo: transactionRepo},
	}
}

// Execute audits every account and logs each drifted one at Warn.
func (uc *AuditAllUseCase) Execute(ctx context.Context) (*AuditAllOutput, error) {
	accounts, err := uc.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, domainerror.NewStorageError("audit balances", fmt.Errorf("failed to list accounts: %w", err))
	}

	output := &AuditAllOutput{
		Audits: make([]*BalanceAuditOutput, 0, len(accounts)),
	}
	for _, account := range accounts {
		audit, err := uc.auditor.audit(ctx, account)
		if err != nil {
			return nil, err
		}
		if !audit.InSync {
			output.DriftCount++
			slog.Warn("Balance drift detected",
				"userID", audit.UserID,
				"accountID", audit.AccountID,
				"stored", audit.StoredBalance.StringFixed(2),
				"derived", audit.DerivedBalance.StringFixed(2),
			)
		}
		output.Audits = append(output.Audits, audit)
	}

	return output, nil
}
