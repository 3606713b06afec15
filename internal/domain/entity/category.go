package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// SystemKey identifies a category the ledger itself books movements into.
type SystemKey string

const (
	SystemKeyTransferOut          SystemKey = "transfer_out"
	SystemKeyTransferIn           SystemKey = "transfer_in"
	SystemKeyCreditCardPayment    SystemKey = "credit_card_payment"
	SystemKeyDebtPayment          SystemKey = "debt_payment"
	SystemKeyInvestmentBuy        SystemKey = "investment_buy"
	SystemKeyInvestmentRedemption SystemKey = "investment_redemption"
	SystemKeyInvestmentIncome     SystemKey = "investment_income"
)

// Category represents a global, typed transaction category.
type Category struct {
	ID        uuid.UUID
	Name      string
	Type      CategoryType
	Icon      string
	Color     string
	SystemKey *SystemKey
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
// Defaulting of color and icon is applied by the use case before calling this.
func NewCategory(name string, categoryType CategoryType, icon, color string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Type:      categoryType,
		Icon:      icon,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsSystem reports whether the category is one of the seeded system categories.
func (c *Category) IsSystem() bool {
	return c.SystemKey != nil
}

// Matches reports whether the category may classify a transaction of type t.
func (c *Category) Matches(t TransactionType) bool {
	return string(c.Type) == string(t)
}

// IsValidCategoryType reports whether t is a known category type.
func IsValidCategoryType(t CategoryType) bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// SystemCategory describes a seeded system category.
type SystemCategory struct {
	Key   SystemKey
	Name  string
	Type  CategoryType
	Icon  string
	Color string
}

// SystemCategories lists every category the ledger books movements into.
var SystemCategories = []SystemCategory{
	{Key: SystemKeyTransferOut, Name: "Transferência", Type: CategoryTypeExpense, Icon: "arrow-right-left", Color: "#64748B"},
	{Key: SystemKeyTransferIn, Name: "Transferência", Type: CategoryTypeIncome, Icon: "arrow-right-left", Color: "#64748B"},
	{Key: SystemKeyCreditCardPayment, Name: "Cartão de Crédito", Type: CategoryTypeExpense, Icon: "credit-card", Color: "#EF4444"},
	{Key: SystemKeyDebtPayment, Name: "Pagamento de Dívida", Type: CategoryTypeExpense, Icon: "landmark", Color: "#F97316"},
	{Key: SystemKeyInvestmentBuy, Name: "Investimentos", Type: CategoryTypeExpense, Icon: "trending-up", Color: "#0EA5E9"},
	{Key: SystemKeyInvestmentRedemption, Name: "Resgate Investimento", Type: CategoryTypeIncome, Icon: "piggy-bank", Color: "#22C55E"},
	{Key: SystemKeyInvestmentIncome, Name: "Proventos", Type: CategoryTypeIncome, Icon: "coins", Color: "#10B981"},
}

// CategoryRefs holds the resolved IDs of the system categories. It is built
// once at startup and injected into the use cases that book system movements.
type CategoryRefs struct {
	TransferOut          uuid.UUID
	TransferIn           uuid.UUID
	CreditCardPayment    uuid.UUID
	DebtPayment          uuid.UUID
	InvestmentBuy        uuid.UUID
	InvestmentRedemption uuid.UUID
	InvestmentIncome     uuid.UUID
}

// Get returns the resolved ID for key, or uuid.Nil when unresolved.
func (r CategoryRefs) Get(key SystemKey) uuid.UUID {
	switch key {
	case SystemKeyTransferOut:
		return r.TransferOut
	case SystemKeyTransferIn:
		return r.TransferIn
	case SystemKeyCreditCardPayment:
		return r.CreditCardPayment
	case SystemKeyDebtPayment:
		return r.DebtPayment
	case SystemKeyInvestmentBuy:
		return r.InvestmentBuy
	case SystemKeyInvestmentRedemption:
		return r.InvestmentRedemption
	case SystemKeyInvestmentIncome:
		return r.InvestmentIncome
	}
	return uuid.Nil
}

// Set stores the resolved ID for key.
func (r *CategoryRefs) Set(key SystemKey, id uuid.UUID) {
	switch key {
	case SystemKeyTransferOut:
		r.TransferOut = id
	case SystemKeyTransferIn:
		r.TransferIn = id
	case SystemKeyCreditCardPayment:
		r.CreditCardPayment = id
	case SystemKeyDebtPayment:
		r.DebtPayment = id
	case SystemKeyInvestmentBuy:
		r.InvestmentBuy = id
	case SystemKeyInvestmentRedemption:
		r.InvestmentRedemption = id
	case SystemKeyInvestmentIncome:
		r.InvestmentIncome = id
	}
}
