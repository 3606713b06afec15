// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date        time.Time       `gorm:"column:transaction_date;type:date;not null;index"`
	Status      string          `gorm:"type:varchar(10);not null;index"`
	Description string          `gorm:"type:varchar(255);not null;default:''"`
	TransferID  *uuid.UUID      `gorm:"type:uuid;index"`
	Source      string          `gorm:"type:varchar(20);not null;default:'manual'"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Account  *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		AccountID:   m.AccountID,
		CategoryID:  m.CategoryID,
		Type:        entity.TransactionType(m.Type),
		Amount:      money(m.Amount),
		Date:        entity.DateOf(m.Date),
		Status:      entity.TransactionStatus(m.Status),
		Description: m.Description,
		TransferID:  m.TransferID,
		Source:      entity.TransactionSource(m.Source),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToEntityWithRefs converts a TransactionModel with its preloaded account and
// category to a TransactionWithRefs entity.
func (m *TransactionModel) ToEntityWithRefs() *entity.TransactionWithRefs {
	result := &entity.TransactionWithRefs{
		Transaction: m.ToEntity(),
	}
	if m.Account != nil {
		result.Account = m.Account.ToEntity()
	}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		AccountID:   transaction.AccountID,
		CategoryID:  transaction.CategoryID,
		Type:        string(transaction.Type),
		Amount:      transaction.Amount,
		Date:        entity.DateOf(transaction.Date),
		Status:      string(transaction.Status),
		Description: transaction.Description,
		TransferID:  transaction.TransferID,
		Source:      string(transaction.Source),
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
}
