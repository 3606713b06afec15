package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	creditcard "github.com/finance-tracker/ledger/internal/application/usecase/credit_card"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// CreditCardController handles card, purchase and invoice endpoints.
type CreditCardController struct {
	createUseCase         *creditcard.CreateCardUseCase
	listUseCase           *creditcard.ListCardsUseCase
	updateUseCase         *creditcard.UpdateCardUseCase
	deactivateUseCase     *creditcard.DeactivateCardUseCase
	recordPurchaseUseCase *creditcard.RecordPurchaseUseCase
	listPurchasesUseCase  *creditcard.ListPurchasesUseCase
	deletePurchaseUseCase *creditcard.DeletePurchaseUseCase
	getInvoiceUseCase     *creditcard.GetInvoiceUseCase
	payInvoiceUseCase     *creditcard.PayInvoiceUseCase
}

// NewCreditCardController creates a new credit card controller instance.
func NewCreditCardController(
	createUseCase *creditcard.CreateCardUseCase,
	listUseCase *creditcard.ListCardsUseCase,
	updateUseCase *creditcard.UpdateCardUseCase,
	deactivateUseCase *creditcard.DeactivateCardUseCase,
	recordPurchaseUseCase *creditcard.RecordPurchaseUseCase,
	listPurchasesUseCase *creditcard.ListPurchasesUseCase,
	deletePurchaseUseCase *creditcard.DeletePurchaseUseCase,
	getInvoiceUseCase *creditcard.GetInvoiceUseCase,
	payInvoiceUseCase *creditcard.PayInvoiceUseCase,
) *CreditCardController {
	return &CreditCardController{
		createUseCase:         createUseCase,
		listUseCase:           listUseCase,
		updateUseCase:         updateUseCase,
		deactivateUseCase:     deactivateUseCase,
		recordPurchaseUseCase: recordPurchaseUseCase,
		listPurchasesUseCase:  listPurchasesUseCase,
		deletePurchaseUseCase: deletePurchaseUseCase,
		getInvoiceUseCase:     getInvoiceUseCase,
		payInvoiceUseCase:     payInvoiceUseCase,
	}
}

// List handles GET /credit-cards requests.
func (c *CreditCardController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), creditcard.ListCardsInput{
		UserID:          userID,
		IncludeInactive: ctx.Query("include_inactive") == "true",
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardListResponse(output))
}

// Create handles POST /credit-cards requests.
func (c *CreditCardController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), creditcard.CreateCardInput{
		UserID:    userID,
		Name:      req.Name,
		DueDay:    req.DueDay,
		CardLimit: req.CardLimit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCardResponse(output.Card))
}

// Update handles PATCH /credit-cards/:id requests.
func (c *CreditCardController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	cardID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), creditcard.UpdateCardInput{
		CardID:    cardID,
		UserID:    userID,
		Name:      req.Name,
		DueDay:    req.DueDay,
		CardLimit: req.CardLimit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardResponse(output.Card))
}

// Deactivate handles DELETE /credit-cards/:id requests.
func (c *CreditCardController) Deactivate(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	cardID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.deactivateUseCase.Execute(ctx.Request.Context(), creditcard.DeactivateCardInput{
		CardID: cardID,
		UserID: userID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RecordPurchase handles POST /credit-cards/:id/purchases requests.
func (c *CreditCardController) RecordPurchase(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	cardID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.RecordPurchaseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	categoryID, ok := parseID(ctx, "category_id", req.CategoryID)
	if !ok {
		return
	}
	purchaseDate, ok := parseOptionalDate(ctx, "purchase_date", req.PurchaseDate)
	if !ok {
		return
	}

	output, err := c.recordPurchaseUseCase.Execute(ctx.Request.Context(), creditcard.RecordPurchaseInput{
		CardID:        cardID,
		UserID:        userID,
		CategoryID:    categoryID,
		Description:   req.Description,
		TotalAmount:   req.TotalAmount,
		Installments:  req.Installments,
		PurchaseDate:  purchaseDate,
		FirstDueMonth: req.FirstDueMonth,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPurchaseResponse(output.Purchase))
}

// ListPurchases handles GET /credit-cards/:id/purchases requests.
func (c *CreditCardController) ListPurchases(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	cardID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.listPurchasesUseCase.Execute(ctx.Request.Context(), creditcard.ListPurchasesInput{
		CardID: cardID,
		UserID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPurchaseListResponse(output))
}

// DeletePurchase handles DELETE /credit-cards/:id/purchases/:purchaseId requests.
func (c *CreditCardController) DeletePurchase(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	cardID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	purchaseID, ok := paramID(ctx, "purchaseId")
	if !ok {
		return
	}

	if _, err := c.deletePurchaseUseCase.Execute(ctx.Request.Context(), creditcard.DeletePurchaseInput{
		CardID:     cardID,
		PurchaseID: purchaseID,
		UserID:     userID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetInvoice handles GET /credit-cards/:id/invoices/:month requests.
func (c *CreditCardController) GetInvoice(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	cardID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getInvoiceUseCase.Execute(ctx.Request.Context(), creditcard.GetInvoiceInput{
		CardID: cardID,
		UserID: userID,
		Month:  ctx.Param("month"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output))
}

// PayInvoice handles POST /credit-cards/:id/invoices/:month/pay requests.
func (c *CreditCardController) PayInvoice(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	cardID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.PayInvoiceRequest
	if !bindJSON(ctx, &req) {
		return
	}
	accountID, ok := parseID(ctx, "account_id", req.AccountID)
	if !ok {
		return
	}

	output, err := c.payInvoiceUseCase.Execute(ctx.Request.Context(), creditcard.PayInvoiceInput{
		CardID:    cardID,
		UserID:    userID,
		AccountID: accountID,
		Month:     ctx.Param("month"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PayInvoiceResponse{
		TransactionID:    output.TransactionID.String(),
		InstallmentsPaid: output.InstallmentsPaid,
		Invoice:          dto.ToInvoiceResponse(output.Invoice),
	})
}
