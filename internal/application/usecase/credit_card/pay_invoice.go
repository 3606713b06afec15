package creditcard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// PayInvoiceInput represents the input for paying an invoice.
type PayInvoiceInput struct {
	CardID    uuid.UUID
	UserID    uuid.UUID
	AccountID uuid.UUID
	Month     string // YYYY-MM
}

// PayInvoiceOutput represents the output of paying an invoice.
type PayInvoiceOutput struct {
	TransactionID    uuid.UUID
	Invoice          *InvoiceOutput
	InstallmentsPaid int64
}

// PayInvoiceUseCase settles every unpaid installment of an invoice with one
// completed expense on the paying account.
type PayInvoiceUseCase struct {
	transactor adapter.Transactor
	cardRepo   adapter.CreditCardRepository
	poster     *ledger.Poster
	currency   string
}

// NewPayInvoiceUseCase creates a new PayInvoiceUseCase instance.
func NewPayInvoiceUseCase(
	transactor adapter.Transactor,
	cardRepo adapter.CreditCardRepository,
	poster *ledger.Poster,
	currency string,
) *PayInvoiceUseCase {
	return &PayInvoiceUseCase{
		transactor: transactor,
		cardRepo:   cardRepo,
		poster:     poster,
		currency:   currency,
	}
}

// Execute pays the invoice. The payment is dated today regardless of the
// invoice month, and the installments are flagged only if none of them was
// settled in the meantime.
func (uc *PayInvoiceUseCase) Execute(ctx context.Context, input PayInvoiceInput) (*PayInvoiceOutput, error) {
	month, err := parseMonth(input.Month)
	if err != nil {
		return nil, err
	}

	var output *PayInvoiceOutput
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		card, err := findCard(ctx, uc.cardRepo, input.CardID, input.UserID, false)
		if err != nil {
			return err
		}
		account, err := uc.poster.RequireAccount(ctx, input.UserID, input.AccountID)
		if err != nil {
			return err
		}

		invoice, err := loadInvoice(ctx, uc.cardRepo, card.ID, month)
		if err != nil {
			return err
		}
		if invoice.IsEmpty() {
			return domainerror.NewCreditCardError(
				domainerror.ErrCodeInvoiceEmpty,
				"invoice has no pending installments",
				domainerror.ErrInvoiceEmpty,
			)
		}

		categoryID, err := uc.poster.ResolveCategory(ctx, entity.SystemKeyCreditCardPayment, entity.CategoryTypeExpense)
		if err != nil {
			return err
		}

		today := uc.poster.Today()
		txn := entity.NewTransaction(
			input.UserID,
			account.ID,
			categoryID,
			entity.TransactionTypeExpense,
			invoice.Total(),
			today,
			today,
			PaymentDescription(card.Name, invoice),
			entity.TransactionSourceInvoicePayment,
		)
		if err := uc.poster.Post(ctx, txn); err != nil {
			return err
		}

		paid, err := uc.cardRepo.MarkInstallmentsPaid(ctx, invoice.InstallmentIDs(), txn.ID)
		if err != nil {
			return domainerror.NewStorageError("mark installments paid", fmt.Errorf("failed to mark installments paid: %w", err))
		}
		if paid != int64(len(invoice.Lines)) {
			return domainerror.NewCreditCardError(
				domainerror.ErrCodeInvoiceChanged,
				"invoice changed while being paid",
				domainerror.ErrInvoiceChanged,
			)
		}

		output = &PayInvoiceOutput{
			TransactionID:    txn.ID,
			Invoice:          toInvoiceOutput(card, invoice, uc.currency),
			InstallmentsPaid: paid,
		}
		return nil
	})
	if err != nil {
		return nil, domainerror.NewStorageError("pay invoice", err)
	}

	slog.Info("Credit card invoice paid",
		"userID", input.UserID,
		"cardID", input.CardID,
		"accountID", input.AccountID,
		"month", output.Invoice.Month,
		"total", output.Invoice.Total.StringFixed(2),
		"installments", output.InstallmentsPaid,
	)

	return output, nil
}

// PaymentDescription builds the description of an invoice payment,
// e.g. "Pagamento fatura Nubank - 01/2024".
func PaymentDescription(cardName string, invoice *entity.Invoice) string {
	return fmt.Sprintf("Pagamento fatura %s - %s", cardName, invoice.MonthStart.Format("01/2006"))
}
