package creditcard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// InvoiceLineOutput is one installment listed in an invoice.
type InvoiceLineOutput struct {
	InstallmentID uuid.UUID
	PurchaseID    uuid.UUID
	CategoryID    uuid.UUID
	Description   string
	Installment   string // n/N
	Amount        decimal.Decimal
	DueDate       time.Time
}

// InvoiceOutput represents the derived invoice of a card for a month.
type InvoiceOutput struct {
	CardID         uuid.UUID
	CardName       string
	Month          string
	MonthStart     time.Time
	MonthEnd       time.Time
	Lines          []InvoiceLineOutput
	Total          decimal.Decimal
	FormattedTotal string
}

// GetInvoiceInput represents the input for invoice retrieval.
type GetInvoiceInput struct {
	CardID uuid.UUID
	UserID uuid.UUID
	Month  string // YYYY-MM
}

// GetInvoiceUseCase derives the invoice of a card: its unpaid installments
// due inside the month.
type GetInvoiceUseCase struct {
	cardRepo adapter.CreditCardRepository
	currency string
}

// NewGetInvoiceUseCase creates a new GetInvoiceUseCase instance.
func NewGetInvoiceUseCase(cardRepo adapter.CreditCardRepository, currency string) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{
		cardRepo: cardRepo,
		currency: currency,
	}
}

// Execute builds the invoice.
func (uc *GetInvoiceUseCase) Execute(ctx context.Context, input GetInvoiceInput) (*InvoiceOutput, error) {
	month, err := parseMonth(input.Month)
	if err != nil {
		return nil, err
	}

	card, err := findCard(ctx, uc.cardRepo, input.CardID, input.UserID, false)
	if err != nil {
		return nil, err
	}

	invoice, err := loadInvoice(ctx, uc.cardRepo, card.ID, month)
	if err != nil {
		return nil, err
	}
	return toInvoiceOutput(card, invoice, uc.currency), nil
}

func loadInvoice(ctx context.Context, cardRepo adapter.CreditCardRepository, cardID uuid.UUID, month time.Time) (*entity.Invoice, error) {
	start, end := entity.MonthStart(month), entity.MonthEnd(month)
	lines, err := cardRepo.FindUnpaidInstallments(ctx, cardID, start, end)
	if err != nil {
		return nil, domainerror.NewStorageError("load invoice", fmt.Errorf("failed to load invoice lines: %w", err))
	}
	return entity.NewInvoice(cardID, month, lines), nil
}

func toInvoiceOutput(card *entity.CreditCard, invoice *entity.Invoice, currency string) *InvoiceOutput {
	total := invoice.Total()
	output := &InvoiceOutput{
		CardID:         card.ID,
		CardName:       card.Name,
		Month:          invoice.MonthStart.Format("2006-01"),
		MonthStart:     invoice.MonthStart,
		MonthEnd:       invoice.MonthEnd,
		Lines:          make([]InvoiceLineOutput, len(invoice.Lines)),
		Total:          total,
		FormattedTotal: entity.FormatAmount(total, currency),
	}
	for i, line := range invoice.Lines {
		output.Lines[i] = InvoiceLineOutput{
			InstallmentID: line.Installment.ID,
			PurchaseID:    line.Purchase.ID,
			CategoryID:    line.Purchase.CategoryID,
			Description:   line.Purchase.Description,
			Installment:   fmt.Sprintf("%d/%d", line.Installment.InstallmentNumber, line.Purchase.Installments),
			Amount:        line.Installment.Amount,
			DueDate:       line.Installment.DueDate,
		}
	}
	return output
}
