package dto

import (
	"time"

	"github.com/shopspring/decimal"

	creditcard "github.com/finance-tracker/ledger/internal/application/usecase/credit_card"
)

// CreateCardRequest represents the request body for card creation.
type CreateCardRequest struct {
	Name      string          `json:"name" binding:"required,min=1"`
	DueDay    int             `json:"due_day" binding:"required"`
	CardLimit decimal.Decimal `json:"card_limit"`
}

// UpdateCardRequest represents the request body for card update.
type UpdateCardRequest struct {
	Name      *string          `json:"name,omitempty" binding:"omitempty,min=1"`
	DueDay    *int             `json:"due_day,omitempty"`
	CardLimit *decimal.Decimal `json:"card_limit,omitempty"`
}

// RecordPurchaseRequest represents the request body for a card purchase.
type RecordPurchaseRequest struct {
	CategoryID    string          `json:"category_id" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Installments  int             `json:"installments"`
	PurchaseDate  *string         `json:"purchase_date,omitempty"`
	FirstDueMonth string          `json:"first_due_month,omitempty"`
}

// PayInvoiceRequest represents the request body for paying an invoice.
type PayInvoiceRequest struct {
	AccountID string `json:"account_id" binding:"required"`
}

// CardResponse represents a single card in API responses.
type CardResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DueDay         int       `json:"due_day"`
	CardLimit      string    `json:"card_limit"`
	UsedLimit      string    `json:"used_limit"`
	AvailableLimit string    `json:"available_limit"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CardListResponse represents the response for listing cards.
type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
}

// InstallmentResponse represents one installment of a purchase.
type InstallmentResponse struct {
	ID                string  `json:"id"`
	InstallmentNumber int     `json:"installment_number"`
	Amount            string  `json:"amount"`
	DueDate           string  `json:"due_date"`
	Paid              bool    `json:"paid"`
	PaidTransactionID *string `json:"paid_transaction_id,omitempty"`
}

// PurchaseResponse represents a purchase with its schedule.
type PurchaseResponse struct {
	ID            string                `json:"id"`
	CardID        string                `json:"card_id"`
	CategoryID    string                `json:"category_id"`
	Description   string                `json:"description"`
	TotalAmount   string                `json:"total_amount"`
	Installments  int                   `json:"installments"`
	PurchaseDate  string                `json:"purchase_date"`
	FirstDueMonth string                `json:"first_due_month"`
	PaidCount     int                   `json:"paid_count"`
	Schedule      []InstallmentResponse `json:"schedule"`
	CreatedAt     time.Time             `json:"created_at"`
}

// PurchaseListResponse represents the response for listing purchases.
type PurchaseListResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
}

// InvoiceLineResponse represents one installment on an invoice.
type InvoiceLineResponse struct {
	InstallmentID string `json:"installment_id"`
	PurchaseID    string `json:"purchase_id"`
	CategoryID    string `json:"category_id"`
	Description   string `json:"description"`
	Installment   string `json:"installment"`
	Amount        string `json:"amount"`
	DueDate       string `json:"due_date"`
}

// InvoiceResponse represents the open invoice of a card for a month.
type InvoiceResponse struct {
	CardID         string                `json:"card_id"`
	CardName       string                `json:"card_name"`
	Month          string                `json:"month"`
	Lines          []InvoiceLineResponse `json:"lines"`
	Total          string                `json:"total"`
	FormattedTotal string                `json:"formatted_total"`
}

// PayInvoiceResponse represents the result of paying an invoice.
type PayInvoiceResponse struct {
	TransactionID    string          `json:"transaction_id"`
	InstallmentsPaid int64           `json:"installments_paid"`
	Invoice          InvoiceResponse `json:"invoice"`
}

// ToCardResponse converts a CardOutput to a CardResponse DTO.
func ToCardResponse(c *creditcard.CardOutput) CardResponse {
	return CardResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		DueDay:         c.DueDay,
		CardLimit:      Money(c.CardLimit),
		UsedLimit:      Money(c.UsedLimit),
		AvailableLimit: Money(c.AvailableLimit),
		Active:         c.Active,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ToCardListResponse converts a ListCardsOutput to a CardListResponse.
func ToCardListResponse(output *creditcard.ListCardsOutput) CardListResponse {
	cards := make([]CardResponse, len(output.Cards))
	for i, c := range output.Cards {
		cards[i] = ToCardResponse(c)
	}
	return CardListResponse{Cards: cards}
}

// ToPurchaseResponse converts a PurchaseOutput to a PurchaseResponse DTO.
func ToPurchaseResponse(p *creditcard.PurchaseOutput) PurchaseResponse {
	schedule := make([]InstallmentResponse, len(p.Schedule))
	for i, inst := range p.Schedule {
		schedule[i] = InstallmentResponse{
			ID:                inst.ID.String(),
			InstallmentNumber: inst.InstallmentNumber,
			Amount:            Money(inst.Amount),
			DueDate:           Date(inst.DueDate),
			Paid:              inst.Paid,
			PaidTransactionID: OptionalID(inst.PaidTransactionID),
		}
	}
	return PurchaseResponse{
		ID:            p.ID.String(),
		CardID:        p.CardID.String(),
		CategoryID:    p.CategoryID.String(),
		Description:   p.Description,
		TotalAmount:   Money(p.TotalAmount),
		Installments:  p.Installments,
		PurchaseDate:  Date(p.PurchaseDate),
		FirstDueMonth: p.FirstDueMonth.Format("2006-01"),
		PaidCount:     p.PaidCount,
		Schedule:      schedule,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPurchaseListResponse converts a ListPurchasesOutput to a PurchaseListResponse.
func ToPurchaseListResponse(output *creditcard.ListPurchasesOutput) PurchaseListResponse {
	purchases := make([]PurchaseResponse, len(output.Purchases))
	for i, p := range output.Purchases {
		purchases[i] = ToPurchaseResponse(p)
	}
	return PurchaseListResponse{Purchases: purchases}
}

// ToInvoiceResponse converts an InvoiceOutput to an InvoiceResponse DTO.
func ToInvoiceResponse(inv *creditcard.InvoiceOutput) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, line := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			InstallmentID: line.InstallmentID.String(),
			PurchaseID:    line.PurchaseID.String(),
			CategoryID:    line.CategoryID.String(),
			Description:   line.Description,
			Installment:   line.Installment,
			Amount:        Money(line.Amount),
			DueDate:       Date(line.DueDate),
		}
	}
	return InvoiceResponse{
		CardID:         inv.CardID.String(),
		CardName:       inv.CardName,
		Month:          inv.Month,
		Lines:          lines,
		Total:          Money(inv.Total),
		FormattedTotal: inv.FormattedTotal,
	}
}
