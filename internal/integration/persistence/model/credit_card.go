// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreditCardModel represents the credit_cards table in the database.
type CreditCardModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	DueDay    int             `gorm:"not null"`
	CardLimit decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Active    bool            `gorm:"not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CreditCardModel.
func (CreditCardModel) TableName() string {
	return "credit_cards"
}

// ToEntity converts a CreditCardModel to a domain CreditCard entity.
func (m *CreditCardModel) ToEntity() *entity.CreditCard {
	return &entity.CreditCard{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		DueDay:    m.DueDay,
		CardLimit: money(m.CardLimit),
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CreditCardFromEntity creates a CreditCardModel from a domain CreditCard entity.
func CreditCardFromEntity(card *entity.CreditCard) *CreditCardModel {
	return &CreditCardModel{
		ID:        card.ID,
		UserID:    card.UserID,
		Name:      card.Name,
		DueDay:    card.DueDay,
		CardLimit: card.CardLimit,
		Active:    card.Active,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}

// CreditCardPurchaseModel represents the credit_card_purchases table in the database.
type CreditCardPurchaseModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CardID        uuid.UUID       `gorm:"column:credit_card_id;type:uuid;not null;index"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description   string          `gorm:"type:varchar(255);not null;default:''"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Installments  int             `gorm:"not null;default:1"`
	PurchaseDate  time.Time       `gorm:"type:date;not null"`
	FirstDueMonth time.Time       `gorm:"type:date;not null"`
	CreatedAt     time.Time       `gorm:"not null"`

	InstallmentRows []InstallmentModel `gorm:"foreignKey:PurchaseID;references:ID"`
}

// TableName returns the table name for the CreditCardPurchaseModel.
func (CreditCardPurchaseModel) TableName() string {
	return "credit_card_purchases"
}

// ToEntity converts a CreditCardPurchaseModel to a domain CreditCardPurchase entity.
func (m *CreditCardPurchaseModel) ToEntity() *entity.CreditCardPurchase {
	return &entity.CreditCardPurchase{
		ID:            m.ID,
		CardID:        m.CardID,
		CategoryID:    m.CategoryID,
		Description:   m.Description,
		TotalAmount:   money(m.TotalAmount),
		Installments:  m.Installments,
		PurchaseDate:  entity.DateOf(m.PurchaseDate),
		FirstDueMonth: entity.DateOf(m.FirstDueMonth),
		CreatedAt:     m.CreatedAt,
	}
}

// ToEntityWithInstallments converts a purchase with preloaded installments.
func (m *CreditCardPurchaseModel) ToEntityWithInstallments() *entity.PurchaseWithInstallments {
	installments := make([]*entity.Installment, len(m.InstallmentRows))
	for i := range m.InstallmentRows {
		installments[i] = m.InstallmentRows[i].ToEntity()
	}
	return &entity.PurchaseWithInstallments{
		Purchase:     m.ToEntity(),
		Installments: installments,
	}
}

// CreditCardPurchaseFromEntity creates a CreditCardPurchaseModel from a domain entity.
func CreditCardPurchaseFromEntity(purchase *entity.CreditCardPurchase) *CreditCardPurchaseModel {
	return &CreditCardPurchaseModel{
		ID:            purchase.ID,
		CardID:        purchase.CardID,
		CategoryID:    purchase.CategoryID,
		Description:   purchase.Description,
		TotalAmount:   purchase.TotalAmount,
		Installments:  purchase.Installments,
		PurchaseDate:  entity.DateOf(purchase.PurchaseDate),
		FirstDueMonth: entity.DateOf(purchase.FirstDueMonth),
		CreatedAt:     purchase.CreatedAt,
	}
}

// InstallmentModel represents the installments table in the database.
type InstallmentModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	InstallmentNumber int             `gorm:"not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate           time.Time       `gorm:"type:date;not null;index"`
	Paid              bool            `gorm:"not null;default:false;index"`
	PaidTransactionID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt         time.Time       `gorm:"not null"`

	Purchase *CreditCardPurchaseModel `gorm:"foreignKey:PurchaseID;references:ID"`
}

// TableName returns the table name for the InstallmentModel.
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToEntity converts an InstallmentModel to a domain Installment entity.
func (m *InstallmentModel) ToEntity() *entity.Installment {
	return &entity.Installment{
		ID:                m.ID,
		PurchaseID:        m.PurchaseID,
		InstallmentNumber: m.InstallmentNumber,
		Amount:            money(m.Amount),
		DueDate:           entity.DateOf(m.DueDate),
		Paid:              m.Paid,
		PaidTransactionID: m.PaidTransactionID,
		CreatedAt:         m.CreatedAt,
	}
}

// InstallmentFromEntity creates an InstallmentModel from a domain Installment entity.
func InstallmentFromEntity(installment *entity.Installment) *InstallmentModel {
	return &InstallmentModel{
		ID:                installment.ID,
		PurchaseID:        installment.PurchaseID,
		InstallmentNumber: installment.InstallmentNumber,
		Amount:            installment.Amount,
		DueDate:           entity.DateOf(installment.DueDate),
		Paid:              installment.Paid,
		PaidTransactionID: installment.PaidTransactionID,
		CreatedAt:         installment.CreatedAt,
	}
}
