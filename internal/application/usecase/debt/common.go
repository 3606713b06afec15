// Package debt contains debt and debt payment use cases.
package debt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DebtOutput represents a debt in the output.
type DebtOutput struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Name              string
	Lender            string
	TotalAmount       decimal.Decimal
	CurrentBalance    decimal.Decimal
	PaidPrincipal     decimal.Decimal
	InterestRate      decimal.Decimal
	EstimatedInterest decimal.Decimal
	StartDate         time.Time
	DueDay            int
	TotalInstallments *int
	InstallmentValue  *decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func toDebtOutput(debt *entity.Debt) *DebtOutput {
	return &DebtOutput{
		ID:                debt.ID,
		UserID:            debt.UserID,
		Name:              debt.Name,
		Lender:            debt.Lender,
		TotalAmount:       debt.TotalAmount,
		CurrentBalance:    debt.CurrentBalance,
		PaidPrincipal:     debt.PaidPrincipal(),
		InterestRate:      debt.InterestRate,
		EstimatedInterest: debt.EstimatedInterest(),
		StartDate:         debt.StartDate,
		DueDay:            debt.DueDay,
		TotalInstallments: debt.TotalInstallments,
		InstallmentValue:  debt.InstallmentValue,
		CreatedAt:         debt.CreatedAt,
		UpdatedAt:         debt.UpdatedAt,
	}
}

// PaymentOutput represents a debt payment in the output.
type PaymentOutput struct {
	ID              uuid.UUID
	DebtID          uuid.UUID
	Date            time.Time
	Amount          decimal.Decimal
	PrincipalAmount decimal.Decimal
	InterestAmount  decimal.Decimal
	TransactionID   *uuid.UUID
	CreatedAt       time.Time
}

func toPaymentOutput(payment *entity.DebtPayment) *PaymentOutput {
	return &PaymentOutput{
		ID:              payment.ID,
		DebtID:          payment.DebtID,
		Date:            payment.Date,
		Amount:          payment.Amount,
		PrincipalAmount: payment.PrincipalAmount,
		InterestAmount:  payment.InterestAmount,
		TransactionID:   payment.TransactionID,
		CreatedAt:       payment.CreatedAt,
	}
}

type finder func(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Debt, error)

// findDebt loads a debt through find, translating a missing row.
func findDebt(ctx context.Context, find finder, id, userID uuid.UUID) (*entity.Debt, error) {
	debt, err := find(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrDebtNotFound) {
			return nil, domainerror.NewDebtError(
				domainerror.ErrCodeDebtNotFound,
				"debt not found",
				domainerror.ErrDebtNotFound,
			)
		}
		return nil, domainerror.NewStorageError("find debt", fmt.Errorf("failed to find debt: %w", err))
	}
	return debt, nil
}

func validateInterestRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return domainerror.NewDebtError(
			domainerror.ErrCodeInvalidInterestRate,
			"interest rate must not be negative",
			domainerror.ErrInvalidInterestRate,
		)
	}
	return nil
}

func validateDueDay(day int) error {
	if !entity.IsValidDueDay(day) {
		return domainerror.NewDebtError(
			domainerror.ErrCodeInvalidDebtDueDay,
			"due day must be between 1 and 31",
			domainerror.ErrInvalidDueDay,
		)
	}
	return nil
}

func validateInstallments(total *int, value *decimal.Decimal) error {
	if total != nil && *total < 1 {
		return domainerror.NewDebtError(
			domainerror.ErrCodeInvalidDebtAmount,
			"total installments must be at least 1",
			domainerror.ErrInvalidDebtAmount,
		)
	}
	if value != nil && !value.IsPositive() {
		return domainerror.NewDebtError(
			domainerror.ErrCodeInvalidDebtAmount,
			"installment value must be greater than zero",
			domainerror.ErrInvalidDebtAmount,
		)
	}
	if value != nil {
		return validateCents("installment value", *value)
	}
	return nil
}

func validateCents(field string, value decimal.Decimal) error {
	if !ledger.IsCents(value) {
		return domainerror.NewDebtError(
			domainerror.ErrCodeInvalidDebtAmount,
			field+" must have at most two decimal places",
			domainerror.ErrInvalidDebtAmount,
		)
	}
	return nil
}
