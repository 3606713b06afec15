package categoryrule

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

const (
	// DefaultMatchLimit is the default number of matching transactions to return.
	DefaultMatchLimit = 10
	// MaxMatchLimit is the maximum number of matching transactions to return.
	MaxMatchLimit = 100
)

// TestPatternInput represents the input for pattern testing.
type TestPatternInput struct {
	UserID  uuid.UUID
	Pattern string
	Limit   int // Optional, defaults to DefaultMatchLimit
}

// MatchingTransaction is an existing transaction whose description matches.
type MatchingTransaction struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

// TestPatternOutput represents the output of pattern testing.
type TestPatternOutput struct {
	MatchCount           int
	MatchingTransactions []*MatchingTransaction
}

// TestPatternUseCase previews which of the user's transactions a pattern
// would match, without saving anything.
type TestPatternUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewTestPatternUseCase creates a new TestPatternUseCase instance.
func NewTestPatternUseCase(transactionRepo adapter.TransactionRepository) *TestPatternUseCase {
	return &TestPatternUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute matches the pattern against every transaction description of the
// user. MatchCount counts all matches; the list is capped at Limit.
func (uc *TestPatternUseCase) Execute(ctx context.Context, input TestPatternInput) (*TestPatternOutput, error) {
	pattern, err := normalizePattern(input.Pattern)
	if err != nil {
		return nil, err
	}
	re, _ := entity.CompilePattern(pattern)

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultMatchLimit
	} else if limit > MaxMatchLimit {
		limit = MaxMatchLimit
	}

	transactions, err := uc.transactionRepo.FindAll(ctx, adapter.TransactionFilter{
		UserID:           input.UserID,
		ExcludeTransfers: true,
	})
	if err != nil {
		return nil, domainerror.NewStorageError("test rule pattern", fmt.Errorf("failed to load transactions: %w", err))
	}

	output := &TestPatternOutput{
		MatchingTransactions: make([]*MatchingTransaction, 0, limit),
	}
	for _, txn := range transactions {
		if !re.MatchString(txn.Description) {
			continue
		}
		output.MatchCount++
		if len(output.MatchingTransactions) < limit {
			output.MatchingTransactions = append(output.MatchingTransactions, &MatchingTransaction{
				ID:          txn.ID,
				Description: txn.Description,
				Amount:      txn.Amount,
				Date:        txn.Date,
			})
		}
	}
	return output, nil
}
