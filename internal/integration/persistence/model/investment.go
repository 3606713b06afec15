// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// InvestmentModel represents the investments table in the database.
type InvestmentModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(100);not null"`
	Ticker       string          `gorm:"type:varchar(20);not null;default:''"`
	Type         string          `gorm:"type:varchar(20);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	AveragePrice decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	CurrentPrice decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the InvestmentModel.
func (InvestmentModel) TableName() string {
	return "investments"
}

// ToEntity converts an InvestmentModel to a domain Investment entity.
func (m *InvestmentModel) ToEntity() *entity.Investment {
	return &entity.Investment{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		Ticker:       m.Ticker,
		Type:         entity.InvestmentType(m.Type),
		Quantity:     quantity(m.Quantity),
		AveragePrice: quantity(m.AveragePrice),
		CurrentPrice: quantity(m.CurrentPrice),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// InvestmentFromEntity creates an InvestmentModel from a domain Investment entity.
func InvestmentFromEntity(investment *entity.Investment) *InvestmentModel {
	return &InvestmentModel{
		ID:           investment.ID,
		UserID:       investment.UserID,
		Name:         investment.Name,
		Ticker:       investment.Ticker,
		Type:         string(investment.Type),
		Quantity:     investment.Quantity.Round(8),
		AveragePrice: investment.AveragePrice.Round(8),
		CurrentPrice: investment.CurrentPrice.Round(8),
		CreatedAt:    investment.CreatedAt,
		UpdatedAt:    investment.UpdatedAt,
	}
}

// InvestmentOperationModel represents the investment_transactions table in the database.
type InvestmentOperationModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	InvestmentID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Type          string           `gorm:"type:varchar(10);not null"`
	Date          time.Time        `gorm:"column:operation_date;type:date;not null"`
	Quantity      decimal.Decimal  `gorm:"type:decimal(20,8);not null"`
	Price         decimal.Decimal  `gorm:"type:decimal(20,8);not null"`
	Fees          decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	TotalAmount   decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	RealizedGain  *decimal.Decimal `gorm:"type:decimal(15,2)"`
	TransactionID *uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt     time.Time        `gorm:"not null"`
}

// TableName returns the table name for the InvestmentOperationModel.
func (InvestmentOperationModel) TableName() string {
	return "investment_transactions"
}

// ToEntity converts an InvestmentOperationModel to a domain InvestmentOperation entity.
func (m *InvestmentOperationModel) ToEntity() *entity.InvestmentOperation {
	var realized *decimal.Decimal
	if m.RealizedGain != nil {
		v := money(*m.RealizedGain)
		realized = &v
	}

	return &entity.InvestmentOperation{
		ID:            m.ID,
		InvestmentID:  m.InvestmentID,
		Type:          entity.OperationType(m.Type),
		Date:          entity.DateOf(m.Date),
		Quantity:      quantity(m.Quantity),
		Price:         quantity(m.Price),
		Fees:          money(m.Fees),
		TotalAmount:   money(m.TotalAmount),
		RealizedGain:  realized,
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
	}
}

// InvestmentOperationFromEntity creates an InvestmentOperationModel from a domain entity.
func InvestmentOperationFromEntity(op *entity.InvestmentOperation) *InvestmentOperationModel {
	var realized *decimal.Decimal
	if op.RealizedGain != nil {
		v := op.RealizedGain.Round(2)
		realized = &v
	}

	return &InvestmentOperationModel{
		ID:            op.ID,
		InvestmentID:  op.InvestmentID,
		Type:          string(op.Type),
		Date:          entity.DateOf(op.Date),
		Quantity:      op.Quantity,
		Price:         op.Price,
		Fees:          op.Fees,
		TotalAmount:   op.TotalAmount,
		RealizedGain:  realized,
		TransactionID: op.TransactionID,
		CreatedAt:     op.CreatedAt,
	}
}
