package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/investment"
)

// CreateInvestmentRequest represents the request body for investment creation.
type CreateInvestmentRequest struct {
	Name         string          `json:"name" binding:"required,min=1"`
	Ticker       string          `json:"ticker,omitempty"`
	Type         string          `json:"type" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	AveragePrice decimal.Decimal `json:"average_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// UpdateInvestmentRequest represents the request body for investment update.
type UpdateInvestmentRequest struct {
	Name         *string          `json:"name,omitempty" binding:"omitempty,min=1"`
	Ticker       *string          `json:"ticker,omitempty"`
	Type         *string          `json:"type,omitempty"`
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
}

// RecordOperationRequest represents the request body for an operation.
type RecordOperationRequest struct {
	Type      string          `json:"type" binding:"required"`
	Date      *string         `json:"date,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Fees      decimal.Decimal `json:"fees"`
	AccountID *string         `json:"account_id,omitempty"`
}

// InvestmentResponse represents a position in API responses.
type InvestmentResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Ticker         string    `json:"ticker"`
	Type           string    `json:"type"`
	Quantity       string    `json:"quantity"`
	AveragePrice   string    `json:"average_price"`
	CurrentPrice   string    `json:"current_price"`
	MarketValue    string    `json:"market_value"`
	CostBasis      string    `json:"cost_basis"`
	UnrealizedGain string    `json:"unrealized_gain"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InvestmentListResponse represents the portfolio of a user.
type InvestmentListResponse struct {
	Investments    []InvestmentResponse `json:"investments"`
	MarketValue    string               `json:"market_value"`
	CostBasis      string               `json:"cost_basis"`
	UnrealizedGain string               `json:"unrealized_gain"`
}

// OperationResponse represents an operation audit row.
type OperationResponse struct {
	ID            string    `json:"id"`
	InvestmentID  string    `json:"investment_id"`
	Type          string    `json:"type"`
	Date          string    `json:"date"`
	Quantity      string    `json:"quantity"`
	Price         string    `json:"price"`
	Fees          string    `json:"fees"`
	TotalAmount   string    `json:"total_amount"`
	RealizedGain  *string   `json:"realized_gain,omitempty"`
	TransactionID *string   `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RecordOperationResponse represents a recorded operation and the new position.
type RecordOperationResponse struct {
	Operation  OperationResponse  `json:"operation"`
	Investment InvestmentResponse `json:"investment"`
}

// OperationListResponse represents the operation history of a position.
type OperationListResponse struct {
	Operations   []OperationResponse `json:"operations"`
	RealizedGain string              `json:"realized_gain"`
	Income       string              `json:"income"`
}

// ToInvestmentResponse converts an InvestmentOutput to an InvestmentResponse DTO.
func ToInvestmentResponse(inv *investment.InvestmentOutput) InvestmentResponse {
	return InvestmentResponse{
		ID:             inv.ID.String(),
		Name:           inv.Name,
		Ticker:         inv.Ticker,
		Type:           string(inv.Type),
		Quantity:       inv.Quantity.String(),
		AveragePrice:   inv.AveragePrice.String(),
		CurrentPrice:   inv.CurrentPrice.String(),
		MarketValue:    Money(inv.MarketValue),
		CostBasis:      Money(inv.CostBasis),
		UnrealizedGain: Money(inv.UnrealizedGain),
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

// ToInvestmentListResponse converts a ListInvestmentsOutput to its DTO.
func ToInvestmentListResponse(output *investment.ListInvestmentsOutput) InvestmentListResponse {
	investments := make([]InvestmentResponse, len(output.Investments))
	for i, inv := range output.Investments {
		investments[i] = ToInvestmentResponse(inv)
	}
	return InvestmentListResponse{
		Investments:    investments,
		MarketValue:    Money(output.MarketValue),
		CostBasis:      Money(output.CostBasis),
		UnrealizedGain: Money(output.UnrealizedGain),
	}
}

// ToOperationResponse converts an OperationOutput to an OperationResponse DTO.
func ToOperationResponse(op *investment.OperationOutput) OperationResponse {
	return OperationResponse{
		ID:            op.ID.String(),
		InvestmentID:  op.InvestmentID.String(),
		Type:          string(op.Type),
		Date:          Date(op.Date),
		Quantity:      op.Quantity.String(),
		Price:         op.Price.String(),
		Fees:          Money(op.Fees),
		TotalAmount:   Money(op.TotalAmount),
		RealizedGain:  OptionalMoney(op.RealizedGain),
		TransactionID: OptionalID(op.TransactionID),
		CreatedAt:     op.CreatedAt,
	}
}

// ToOperationListResponse converts a ListOperationsOutput to its DTO.
func ToOperationListResponse(output *investment.ListOperationsOutput) OperationListResponse {
	operations := make([]OperationResponse, len(output.Operations))
	for i, op := range output.Operations {
		operations[i] = ToOperationResponse(op)
	}
	return OperationListResponse{
		Operations:   operations,
		RealizedGain: Money(output.RealizedGain),
		Income:       Money(output.Income),
	}
}
