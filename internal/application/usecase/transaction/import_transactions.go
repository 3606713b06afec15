// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxImportRows bounds a single import batch.
const MaxImportRows = 1000

// ImportRow is one already-parsed statement line.
type ImportRow struct {
	Date        time.Time
	Description string
	// Amount is signed when Type is nil: negative amounts are expenses.
	Amount     decimal.Decimal
	Type       *entity.TransactionType
	CategoryID *uuid.UUID
}

// ImportTransactionsInput represents the input for a batch import.
type ImportTransactionsInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Rows      []ImportRow
}

// ImportTransactionsOutput represents the output of a batch import.
type ImportTransactionsOutput struct {
	ImportedCount int

	// RuleMatched counts rows categorized by one of the user's rules.
	RuleMatched  int
	Transactions []*TransactionOutput
}

// ImportTransactionsUseCase books a batch of statement lines on one account.
type ImportTransactionsUseCase struct {
	transactor adapter.Transactor
	poster     *ledger.Poster
	ruleRepo   adapter.CategoryRuleRepository
	create     *CreateTransactionUseCase
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase instance.
func NewImportTransactionsUseCase(transactor adapter.Transactor, poster *ledger.Poster, ruleRepo adapter.CategoryRuleRepository) *ImportTransactionsUseCase {
	return &ImportTransactionsUseCase{
		transactor: transactor,
		poster:     poster,
		ruleRepo:   ruleRepo,
		create:     NewCreateTransactionUseCase(transactor, poster),
	}
}

// Execute runs every row through the create path inside one unit of work.
// Either every row is booked or none is. A row without a category takes the
// first matching rule of the user, then the first category of its type.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	if len(input.Rows) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyImportBatch,
			"import batch must contain at least one row",
			domainerror.ErrEmptyImportBatch,
		)
	}
	if len(input.Rows) > MaxImportRows {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeImportBatchTooLarge,
			fmt.Sprintf("import batch must not exceed %d rows", MaxImportRows),
			domainerror.ErrImportBatchTooLarge,
		)
	}

	output := &ImportTransactionsOutput{
		Transactions: make([]*TransactionOutput, 0, len(input.Rows)),
	}
	rules, err := uc.ruleRepo.FindByUser(ctx, input.UserID, true)
	if err != nil {
		return nil, domainerror.NewStorageError("load category rules", fmt.Errorf("failed to load category rules: %w", err))
	}
	matcher := entity.NewRuleMatcher(rules)

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		fallback := map[entity.CategoryType]uuid.UUID{}

		for i, row := range input.Rows {
			txnType, amount := inferType(row)

			var categoryID uuid.UUID
			categoryType := entity.CategoryType(txnType)
			if row.CategoryID != nil {
				categoryID = *row.CategoryID
			} else if id, ok := matcher.Match(row.Description, categoryType); ok {
				categoryID = id
				output.RuleMatched++
			} else {
				id, ok := fallback[categoryType]
				if !ok {
					var err error
					id, err = uc.poster.FirstCategory(ctx, categoryType)
					if err != nil {
						return atRow(i, err)
					}
					fallback[categoryType] = id
				}
				categoryID = id
			}

			txn, err := uc.create.post(ctx, CreateTransactionInput{
				UserID:      input.UserID,
				AccountID:   input.AccountID,
				CategoryID:  categoryID,
				Type:        txnType,
				Amount:      amount,
				Date:        row.Date,
				Description: row.Description,
				Source:      entity.TransactionSourceImport,
			})
			if err != nil {
				return atRow(i, err)
			}
			output.Transactions = append(output.Transactions, txn)
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("import transactions", err)
	}
	output.ImportedCount = len(output.Transactions)

	slog.Info("Transactions imported",
		"userID", input.UserID,
		"accountID", input.AccountID,
		"count", output.ImportedCount,
		"ruleMatched", output.RuleMatched,
	)

	return output, nil
}

// inferType returns the row type and its unsigned amount.
func inferType(row ImportRow) (entity.TransactionType, decimal.Decimal) {
	if row.Type != nil {
		return *row.Type, row.Amount.Abs()
	}
	if row.Amount.IsNegative() {
		return entity.TransactionTypeExpense, row.Amount.Abs()
	}
	return entity.TransactionTypeIncome, row.Amount
}

// atRow prefixes a precondition message with the 1-based row number.
func atRow(i int, err error) error {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		return domainerror.NewTransactionError(txnErr.Code, fmt.Sprintf("row %d: %s", i+1, txnErr.Message), txnErr.Err)
	}
	var accountErr *domainerror.AccountError
	if errors.As(err, &accountErr) {
		return domainerror.NewAccountError(accountErr.Code, fmt.Sprintf("row %d: %s", i+1, accountErr.Message), accountErr.Err)
	}
	return err
}
