// Package investment contains investment position use cases.
package investment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// InvestmentOutput represents a position with its valuation.
type InvestmentOutput struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Ticker         string
	Type           entity.InvestmentType
	Quantity       decimal.Decimal
	AveragePrice   decimal.Decimal
	CurrentPrice   decimal.Decimal
	MarketValue    decimal.Decimal
	CostBasis      decimal.Decimal
	UnrealizedGain decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func toInvestmentOutput(inv *entity.Investment) *InvestmentOutput {
	return &InvestmentOutput{
		ID:             inv.ID,
		UserID:         inv.UserID,
		Name:           inv.Name,
		Ticker:         inv.Ticker,
		Type:           inv.Type,
		Quantity:       inv.Quantity,
		AveragePrice:   inv.AveragePrice,
		CurrentPrice:   inv.CurrentPrice,
		MarketValue:    inv.MarketValue().Round(2),
		CostBasis:      inv.CostBasis().Round(2),
		UnrealizedGain: inv.UnrealizedGain().Round(2),
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

// OperationOutput represents an operation audit row.
type OperationOutput struct {
	ID            uuid.UUID
	InvestmentID  uuid.UUID
	Type          entity.OperationType
	Date          time.Time
	Quantity      decimal.Decimal
	Price         decimal.Decimal
	Fees          decimal.Decimal
	TotalAmount   decimal.Decimal
	RealizedGain  *decimal.Decimal
	TransactionID *uuid.UUID
	CreatedAt     time.Time
}

func toOperationOutput(op *entity.InvestmentOperation) *OperationOutput {
	return &OperationOutput{
		ID:            op.ID,
		InvestmentID:  op.InvestmentID,
		Type:          op.Type,
		Date:          op.Date,
		Quantity:      op.Quantity,
		Price:         op.Price,
		Fees:          op.Fees,
		TotalAmount:   op.TotalAmount,
		RealizedGain:  op.RealizedGain,
		TransactionID: op.TransactionID,
		CreatedAt:     op.CreatedAt,
	}
}

type finder func(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Investment, error)

func findInvestment(ctx context.Context, find finder, id, userID uuid.UUID) (*entity.Investment, error) {
	inv, err := find(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvestmentNotFound) {
			return nil, domainerror.NewInvestmentError(
				domainerror.ErrCodeInvestmentNotFound,
				"investment not found",
				domainerror.ErrInvestmentNotFound,
			)
		}
		return nil, domainerror.NewStorageError("find investment", fmt.Errorf("failed to find investment: %w", err))
	}
	return inv, nil
}

func validateType(t entity.InvestmentType) error {
	if !entity.IsValidInvestmentType(t) {
		return domainerror.NewInvestmentError(
			domainerror.ErrCodeInvalidInvestmentType,
			"type must be one of stock, fii, fixed_income, crypto, treasure or other",
			domainerror.ErrInvalidInvestmentType,
		)
	}
	return nil
}

func invalidValues(message string) error {
	return domainerror.NewInvestmentError(
		domainerror.ErrCodeInvalidOperationValues,
		message,
		domainerror.ErrInvalidOperationValues,
	)
}
