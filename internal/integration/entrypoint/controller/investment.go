package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/investment"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// InvestmentController handles investment position and operation endpoints.
type InvestmentController struct {
	createUseCase          *investment.CreateInvestmentUseCase
	listUseCase            *investment.ListInvestmentsUseCase
	updateUseCase          *investment.UpdateInvestmentUseCase
	deleteUseCase          *investment.DeleteInvestmentUseCase
	recordOperationUseCase *investment.RecordOperationUseCase
	listOperationsUseCase  *investment.ListOperationsUseCase
}

// NewInvestmentController creates a new investment controller instance.
func NewInvestmentController(
	createUseCase *investment.CreateInvestmentUseCase,
	listUseCase *investment.ListInvestmentsUseCase,
	updateUseCase *investment.UpdateInvestmentUseCase,
	deleteUseCase *investment.DeleteInvestmentUseCase,
	recordOperationUseCase *investment.RecordOperationUseCase,
	listOperationsUseCase *investment.ListOperationsUseCase,
) *InvestmentController {
	return &InvestmentController{
		createUseCase:          createUseCase,
		listUseCase:            listUseCase,
		updateUseCase:          updateUseCase,
		deleteUseCase:          deleteUseCase,
		recordOperationUseCase: recordOperationUseCase,
		listOperationsUseCase:  listOperationsUseCase,
	}
}

// List handles GET /investments requests.
func (c *InvestmentController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), investment.ListInvestmentsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvestmentListResponse(output))
}

// Create handles POST /investments requests.
func (c *InvestmentController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateInvestmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), investment.CreateInvestmentInput{
		UserID:       userID,
		Name:         req.Name,
		Ticker:       req.Ticker,
		Type:         entity.InvestmentType(req.Type),
		Quantity:     req.Quantity,
		AveragePrice: req.AveragePrice,
		CurrentPrice: req.CurrentPrice,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvestmentResponse(output.Investment))
}

// Update handles PATCH /investments/:id requests.
func (c *InvestmentController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	investmentID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateInvestmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input := investment.UpdateInvestmentInput{
		InvestmentID: investmentID,
		UserID:       userID,
		Name:         req.Name,
		Ticker:       req.Ticker,
		CurrentPrice: req.CurrentPrice,
	}
	if req.Type != nil {
		invType := entity.InvestmentType(*req.Type)
		input.Type = &invType
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvestmentResponse(output.Investment))
}

// Delete handles DELETE /investments/:id requests.
func (c *InvestmentController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	investmentID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), investment.DeleteInvestmentInput{
		InvestmentID: investmentID,
		UserID:       userID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RecordOperation handles POST /investments/:id/operations requests.
func (c *InvestmentController) RecordOperation(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	investmentID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.RecordOperationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input := investment.RecordOperationInput{
		InvestmentID: investmentID,
		UserID:       userID,
		Type:         entity.OperationType(req.Type),
		Quantity:     req.Quantity,
		Price:        req.Price,
		Fees:         req.Fees,
	}
	if input.Date, ok = parseOptionalDate(ctx, "date", req.Date); !ok {
		return
	}
	if input.AccountID, ok = parseOptionalID(ctx, "account_id", req.AccountID); !ok {
		return
	}

	output, err := c.recordOperationUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RecordOperationResponse{
		Operation:  dto.ToOperationResponse(output.Operation),
		Investment: dto.ToInvestmentResponse(output.Investment),
	})
}

// ListOperations handles GET /investments/:id/operations requests.
func (c *InvestmentController) ListOperations(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	investmentID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.listOperationsUseCase.Execute(ctx.Request.Context(), investment.ListOperationsInput{
		InvestmentID: investmentID,
		UserID:       userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOperationListResponse(output))
}
