package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase     *transaction.ListTransactionsUseCase
	createUseCase   *transaction.CreateTransactionUseCase
	transferUseCase *transaction.CreateTransferUseCase
	importUseCase   *transaction.ImportTransactionsUseCase
	updateUseCase   *transaction.UpdateTransactionUseCase
	deleteUseCase   *transaction.DeleteTransactionUseCase
	completeUseCase *transaction.CompleteTransactionUseCase
	revertUseCase   *transaction.RevertTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	transferUseCase *transaction.CreateTransferUseCase,
	importUseCase *transaction.ImportTransactionsUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	completeUseCase *transaction.CompleteTransactionUseCase,
	revertUseCase *transaction.RevertTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:     listUseCase,
		createUseCase:   createUseCase,
		transferUseCase: transferUseCase,
		importUseCase:   importUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		completeUseCase: completeUseCase,
		revertUseCase:   revertUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{UserID: userID}

	if input.AccountID, ok = parseOptionalID(ctx, "account_id", queryPtr(ctx, "account_id")); !ok {
		return
	}
	if input.CategoryID, ok = parseOptionalID(ctx, "category_id", queryPtr(ctx, "category_id")); !ok {
		return
	}
	if input.StartDate, ok = parseOptionalDate(ctx, "start_date", queryPtr(ctx, "start_date")); !ok {
		return
	}
	if input.EndDate, ok = parseOptionalDate(ctx, "end_date", queryPtr(ctx, "end_date")); !ok {
		return
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txType := entity.TransactionType(typeStr)
		input.Type = &txType
	}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.TransactionStatus(statusStr)
		input.Status = &status
	}

	// Invalid numbers fall back to the use case defaults.
	if page, err := strconv.Atoi(ctx.Query("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	accountID, ok := parseID(ctx, "account_id", req.AccountID)
	if !ok {
		return
	}
	date, ok := parseDate(ctx, "date", req.Date)
	if !ok {
		return
	}

	if entity.TransactionType(req.Type) == entity.TransactionTypeTransfer {
		c.createTransfer(ctx, userID, accountID, date, req)
		return
	}

	if req.CategoryID == nil {
		respond(ctx, http.StatusBadRequest, "category_id is required", string(domainerror.ErrCodeMissingTransactionFields))
		return
	}
	categoryID, ok := parseID(ctx, "category_id", *req.CategoryID)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        entity.TransactionType(req.Type),
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

func (c *TransactionController) createTransfer(ctx *gin.Context, userID, fromAccountID uuid.UUID, date time.Time, req dto.CreateTransactionRequest) {
	if req.ToAccountID == nil {
		respond(ctx, http.StatusBadRequest, "to_account_id is required for transfers", string(domainerror.ErrCodeMissingTransactionFields))
		return
	}
	toAccountID, ok := parseID(ctx, "to_account_id", *req.ToAccountID)
	if !ok {
		return
	}

	output, err := c.transferUseCase.Execute(ctx.Request.Context(), transaction.CreateTransferInput{
		UserID:        userID,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        req.Amount,
		Date:          date,
		Description:   req.Description,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.TransferResponse{
		TransferID: output.TransferID.String(),
		Outgoing:   dto.ToTransactionResponse(output.Outgoing),
		Incoming:   dto.ToTransactionResponse(output.Incoming),
	})
}

// Import handles POST /transactions/import requests.
func (c *TransactionController) Import(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.ImportTransactionsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	accountID, ok := parseID(ctx, "account_id", req.AccountID)
	if !ok {
		return
	}

	rows := make([]transaction.ImportRow, len(req.Rows))
	for i, row := range req.Rows {
		date, ok := parseDate(ctx, "rows["+strconv.Itoa(i)+"].date", row.Date)
		if !ok {
			return
		}
		categoryID, ok := parseOptionalID(ctx, "rows["+strconv.Itoa(i)+"].category_id", row.CategoryID)
		if !ok {
			return
		}
		rows[i] = transaction.ImportRow{
			Date:        date,
			Description: row.Description,
			Amount:      row.Amount,
			CategoryID:  categoryID,
		}
		if row.Type != nil {
			txType := entity.TransactionType(*row.Type)
			rows[i].Type = &txType
		}
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), transaction.ImportTransactionsInput{
		UserID:    userID,
		AccountID: accountID,
		Rows:      rows,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ImportTransactionsResponse{
		ImportedCount: output.ImportedCount,
		RuleMatched:   output.RuleMatched,
		Transactions:  dto.ToTransactionResponses(output.Transactions),
	})
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Amount:        req.Amount,
		Description:   req.Description,
	}
	if input.AccountID, ok = parseOptionalID(ctx, "account_id", req.AccountID); !ok {
		return
	}
	if input.CategoryID, ok = parseOptionalID(ctx, "category_id", req.CategoryID); !ok {
		return
	}
	if input.Date, ok = parseOptionalDate(ctx, "date", req.Date); !ok {
		return
	}
	if req.Type != nil {
		txType := entity.TransactionType(*req.Type)
		input.Type = &txType
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	response := dto.UpdateTransactionResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
	}
	if output.CounterLeg != nil {
		counter := dto.ToTransactionResponse(output.CounterLeg)
		response.CounterLeg = &counter
	}
	ctx.JSON(http.StatusOK, response)
}

// Delete handles DELETE /transactions/:id requests. Deleting a transfer leg
// removes both legs.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ids := make([]string, len(output.DeletedIDs))
	for i, id := range output.DeletedIDs {
		ids[i] = id.String()
	}
	ctx.JSON(http.StatusOK, dto.DeleteTransactionResponse{
		DeletedIDs:           ids,
		ReleasedInstallments: output.ReleasedInstallments,
		UnlinkedRecords:      output.UnlinkedRecords,
	})
}

// Complete handles POST /transactions/:id/complete requests.
func (c *TransactionController) Complete(ctx *gin.Context) {
	c.changeStatus(ctx, c.completeUseCase.Execute)
}

// Revert handles POST /transactions/:id/revert requests.
func (c *TransactionController) Revert(ctx *gin.Context) {
	c.changeStatus(ctx, c.revertUseCase.Execute)
}

type statusChangeFunc func(context.Context, transaction.ChangeStatusInput) (*transaction.ChangeStatusOutput, error)

func (c *TransactionController) changeStatus(ctx *gin.Context, execute statusChangeFunc) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	output, err := execute(ctx.Request.Context(), transaction.ChangeStatusInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransactionsResponse{
		Transactions: dto.ToTransactionResponses(output.Transactions),
	})
}

// queryPtr returns a pointer to a query value, or nil when absent.
func queryPtr(ctx *gin.Context, key string) *string {
	value, ok := ctx.GetQuery(key)
	if !ok {
		return nil
	}
	return &value
}
