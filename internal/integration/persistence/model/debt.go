// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// DebtModel represents the debts table in the database.
type DebtModel struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name              string           `gorm:"type:varchar(100);not null"`
	Lender            string           `gorm:"type:varchar(100);not null;default:''"`
	TotalAmount       decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	CurrentBalance    decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	InterestRate      decimal.Decimal  `gorm:"type:decimal(7,4);not null;default:0"`
	StartDate         time.Time        `gorm:"type:date;not null"`
	DueDay            int              `gorm:"not null;default:1"`
	TotalInstallments *int             `gorm:"type:integer"`
	InstallmentValue  *decimal.Decimal `gorm:"type:decimal(15,2)"`
	CreatedAt         time.Time        `gorm:"not null"`
	UpdatedAt         time.Time        `gorm:"not null"`
}

// TableName returns the table name for the DebtModel.
func (DebtModel) TableName() string {
	return "debts"
}

// ToEntity converts a DebtModel to a domain Debt entity.
func (m *DebtModel) ToEntity() *entity.Debt {
	var installmentValue *decimal.Decimal
	if m.InstallmentValue != nil {
		v := money(*m.InstallmentValue)
		installmentValue = &v
	}

	return &entity.Debt{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		Lender:            m.Lender,
		TotalAmount:       money(m.TotalAmount),
		CurrentBalance:    money(m.CurrentBalance),
		InterestRate:      m.InterestRate.Round(4),
		StartDate:         entity.DateOf(m.StartDate),
		DueDay:            m.DueDay,
		TotalInstallments: m.TotalInstallments,
		InstallmentValue:  installmentValue,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// DebtFromEntity creates a DebtModel from a domain Debt entity.
func DebtFromEntity(debt *entity.Debt) *DebtModel {
	return &DebtModel{
		ID:                debt.ID,
		UserID:            debt.UserID,
		Name:              debt.Name,
		Lender:            debt.Lender,
		TotalAmount:       debt.TotalAmount,
		CurrentBalance:    debt.CurrentBalance,
		InterestRate:      debt.InterestRate,
		StartDate:         entity.DateOf(debt.StartDate),
		DueDay:            debt.DueDay,
		TotalInstallments: debt.TotalInstallments,
		InstallmentValue:  debt.InstallmentValue,
		CreatedAt:         debt.CreatedAt,
		UpdatedAt:         debt.UpdatedAt,
	}
}

// DebtPaymentModel represents the debt_payments table in the database.
type DebtPaymentModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DebtID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date            time.Time       `gorm:"column:payment_date;type:date;not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PrincipalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	InterestAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TransactionID   *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the DebtPaymentModel.
func (DebtPaymentModel) TableName() string {
	return "debt_payments"
}

// ToEntity converts a DebtPaymentModel to a domain DebtPayment entity.
func (m *DebtPaymentModel) ToEntity() *entity.DebtPayment {
	return &entity.DebtPayment{
		ID:              m.ID,
		DebtID:          m.DebtID,
		Date:            entity.DateOf(m.Date),
		Amount:          money(m.Amount),
		PrincipalAmount: money(m.PrincipalAmount),
		InterestAmount:  money(m.InterestAmount),
		TransactionID:   m.TransactionID,
		CreatedAt:       m.CreatedAt,
	}
}

// DebtPaymentFromEntity creates a DebtPaymentModel from a domain DebtPayment entity.
func DebtPaymentFromEntity(payment *entity.DebtPayment) *DebtPaymentModel {
	return &DebtPaymentModel{
		ID:              payment.ID,
		DebtID:          payment.DebtID,
		Date:            entity.DateOf(payment.Date),
		Amount:          payment.Amount,
		PrincipalAmount: payment.PrincipalAmount,
		InterestAmount:  payment.InterestAmount,
		TransactionID:   payment.TransactionID,
		CreatedAt:       payment.CreatedAt,
	}
}
