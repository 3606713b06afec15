package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentType represents the asset class of a position.
type InvestmentType string

const (
	InvestmentTypeStock       InvestmentType = "stock"
	InvestmentTypeFII         InvestmentType = "fii"
	InvestmentTypeFixedIncome InvestmentType = "fixed_income"
	InvestmentTypeCrypto      InvestmentType = "crypto"
	InvestmentTypeTreasure    InvestmentType = "treasure"
	InvestmentTypeOther       InvestmentType = "other"
)

// IsValidInvestmentType reports whether t is a known asset class.
func IsValidInvestmentType(t InvestmentType) bool {
	switch t {
	case InvestmentTypeStock, InvestmentTypeFII, InvestmentTypeFixedIncome,
		InvestmentTypeCrypto, InvestmentTypeTreasure, InvestmentTypeOther:
		return true
	}
	return false
}

// OperationType represents what happened to an investment position.
type OperationType string

const (
	OperationTypeBuy      OperationType = "buy"
	OperationTypeSell     OperationType = "sell"
	OperationTypeDividend OperationType = "dividend"
	OperationTypeInterest OperationType = "interest"
)

// IsValidOperationType reports whether t is a known operation type.
func IsValidOperationType(t OperationType) bool {
	switch t {
	case OperationTypeBuy, OperationTypeSell, OperationTypeDividend, OperationTypeInterest:
		return true
	}
	return false
}

// CashDirection returns the ledger direction of the cash leg of an operation.
func (t OperationType) CashDirection() TransactionType {
	if t == OperationTypeBuy {
		return TransactionTypeExpense
	}
	return TransactionTypeIncome
}

// SystemCategory returns the system category the cash leg is booked into.
func (t OperationType) SystemCategory() SystemKey {
	switch t {
	case OperationTypeBuy:
		return SystemKeyInvestmentBuy
	case OperationTypeSell:
		return SystemKeyInvestmentRedemption
	default:
		return SystemKeyInvestmentIncome
	}
}

// Investment represents a position held by a user.
type Investment struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Ticker       string
	Type         InvestmentType
	Quantity     decimal.Decimal
	AveragePrice decimal.Decimal
	CurrentPrice decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewInvestment creates a new Investment entity.
func NewInvestment(
	userID uuid.UUID,
	name string,
	ticker string,
	investmentType InvestmentType,
	quantity decimal.Decimal,
	averagePrice decimal.Decimal,
	currentPrice decimal.Decimal,
) *Investment {
	now := time.Now().UTC()

	return &Investment{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Ticker:       ticker,
		Type:         investmentType,
		Quantity:     quantity,
		AveragePrice: averagePrice,
		CurrentPrice: currentPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Label returns the ticker when known, otherwise the name.
func (i *Investment) Label() string {
	if i.Ticker != "" {
		return i.Ticker
	}
	return i.Name
}

// MarketValue returns quantity at the current mark.
func (i *Investment) MarketValue() decimal.Decimal {
	return i.Quantity.Mul(i.CurrentPrice)
}

// CostBasis returns quantity at the average cost.
func (i *Investment) CostBasis() decimal.Decimal {
	return i.Quantity.Mul(i.AveragePrice)
}

// UnrealizedGain returns market value minus cost basis.
func (i *Investment) UnrealizedGain() decimal.Decimal {
	return i.MarketValue().Sub(i.CostBasis())
}

// Apply recomputes the position for an operation and returns the realized
// gain for sells (zero otherwise).
//
// A buy moves the average cost to the quantity-weighted mean of the old
// position and the new lot. A sell reduces quantity and keeps the average.
// Both overwrite the mark with the operation price. Dividends and interest
// leave the position untouched.
func (i *Investment) Apply(op *InvestmentOperation) decimal.Decimal {
	realized := decimal.Zero

	switch op.Type {
	case OperationTypeBuy:
		totalQty := i.Quantity.Add(op.Quantity)
		if totalQty.IsPositive() {
			totalCost := i.Quantity.Mul(i.AveragePrice).Add(op.Quantity.Mul(op.Price))
			i.AveragePrice = totalCost.Div(totalQty)
		} else {
			i.AveragePrice = decimal.Zero
		}
		i.Quantity = totalQty
		i.CurrentPrice = op.Price
	case OperationTypeSell:
		realized = op.Quantity.Mul(op.Price.Sub(i.AveragePrice)).Sub(op.Fees)
		i.Quantity = i.Quantity.Sub(op.Quantity)
		i.CurrentPrice = op.Price
	}

	i.UpdatedAt = time.Now().UTC()
	return realized
}

// InvestmentOperation is the audit row of a single operation on a position.
type InvestmentOperation struct {
	ID            uuid.UUID
	InvestmentID  uuid.UUID
	Type          OperationType
	Date          time.Time
	Quantity      decimal.Decimal
	Price         decimal.Decimal
	Fees          decimal.Decimal
	TotalAmount   decimal.Decimal
	RealizedGain  *decimal.Decimal // Sells only
	TransactionID *uuid.UUID
	CreatedAt     time.Time
}

// NewInvestmentOperation creates a new operation and computes its cash amount.
func NewInvestmentOperation(
	investmentID uuid.UUID,
	opType OperationType,
	date time.Time,
	quantity decimal.Decimal,
	price decimal.Decimal,
	fees decimal.Decimal,
) *InvestmentOperation {
	op := &InvestmentOperation{
		ID:           uuid.New(),
		InvestmentID: investmentID,
		Type:         opType,
		Date:         DateOf(date),
		Quantity:     quantity,
		Price:        price,
		Fees:         fees,
		CreatedAt:    time.Now().UTC(),
	}
	op.TotalAmount = op.CashAmount()
	return op
}

// CashAmount returns the money moved by the operation: a buy costs
// quantity*price plus fees, a sell returns quantity*price minus fees, and
// dividends or interest pay quantity*price.
func (op *InvestmentOperation) CashAmount() decimal.Decimal {
	gross := op.Quantity.Mul(op.Price)
	switch op.Type {
	case OperationTypeBuy:
		return gross.Add(op.Fees).Round(2)
	case OperationTypeSell:
		return gross.Sub(op.Fees).Round(2)
	default:
		return gross.Round(2)
	}
}
