package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/debt"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// DebtController handles debt and debt payment endpoints.
type DebtController struct {
	createUseCase        *debt.CreateDebtUseCase
	listUseCase          *debt.ListDebtsUseCase
	getUseCase           *debt.GetDebtUseCase
	updateUseCase        *debt.UpdateDebtUseCase
	deleteUseCase        *debt.DeleteDebtUseCase
	recordPaymentUseCase *debt.RecordPaymentUseCase
	listPaymentsUseCase  *debt.ListPaymentsUseCase
	scheduleUseCase      *debt.ProjectScheduleUseCase
}

// NewDebtController creates a new debt controller instance.
func NewDebtController(
	createUseCase *debt.CreateDebtUseCase,
	listUseCase *debt.ListDebtsUseCase,
	getUseCase *debt.GetDebtUseCase,
	updateUseCase *debt.UpdateDebtUseCase,
	deleteUseCase *debt.DeleteDebtUseCase,
	recordPaymentUseCase *debt.RecordPaymentUseCase,
	listPaymentsUseCase *debt.ListPaymentsUseCase,
	scheduleUseCase *debt.ProjectScheduleUseCase,
) *DebtController {
	return &DebtController{
		createUseCase:        createUseCase,
		listUseCase:          listUseCase,
		getUseCase:           getUseCase,
		updateUseCase:        updateUseCase,
		deleteUseCase:        deleteUseCase,
		recordPaymentUseCase: recordPaymentUseCase,
		listPaymentsUseCase:  listPaymentsUseCase,
		scheduleUseCase:      scheduleUseCase,
	}
}

// List handles GET /debts requests.
func (c *DebtController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), debt.ListDebtsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDebtListResponse(output))
}

// Get handles GET /debts/:id requests.
func (c *DebtController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	debtID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), debt.GetDebtInput{
		DebtID: debtID,
		UserID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	response := dto.ToDebtResponse(output.Debt)
	response.PaymentCount = &output.PaymentCount
	ctx.JSON(http.StatusOK, response)
}

// Create handles POST /debts requests.
func (c *DebtController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateDebtRequest
	if !bindJSON(ctx, &req) {
		return
	}
	startDate, ok := parseDate(ctx, "start_date", req.StartDate)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), debt.CreateDebtInput{
		UserID:            userID,
		Name:              req.Name,
		Lender:            req.Lender,
		TotalAmount:       req.TotalAmount,
		InterestRate:      req.InterestRate,
		StartDate:         startDate,
		DueDay:            req.DueDay,
		TotalInstallments: req.TotalInstallments,
		InstallmentValue:  req.InstallmentValue,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToDebtResponse(output.Debt))
}

// Update handles PATCH /debts/:id requests.
func (c *DebtController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	debtID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDebtRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), debt.UpdateDebtInput{
		DebtID:            debtID,
		UserID:            userID,
		Name:              req.Name,
		Lender:            req.Lender,
		InterestRate:      req.InterestRate,
		DueDay:            req.DueDay,
		TotalInstallments: req.TotalInstallments,
		InstallmentValue:  req.InstallmentValue,
		CurrentBalance:    req.CurrentBalance,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDebtResponse(output.Debt))
}

// Delete handles DELETE /debts/:id requests.
func (c *DebtController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	debtID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), debt.DeleteDebtInput{
		DebtID: debtID,
		UserID: userID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RecordPayment handles POST /debts/:id/payments requests.
func (c *DebtController) RecordPayment(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	debtID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input := debt.RecordPaymentInput{
		DebtID:      debtID,
		UserID:      userID,
		Amount:      req.Amount,
		Principal:   req.Principal,
		Interest:    req.Interest,
		Description: req.Description,
	}
	if input.Date, ok = parseOptionalDate(ctx, "date", req.Date); !ok {
		return
	}
	if input.AccountID, ok = parseOptionalID(ctx, "account_id", req.AccountID); !ok {
		return
	}

	output, err := c.recordPaymentUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RecordPaymentResponse{
		Payment: dto.ToPaymentResponse(output.Payment),
		Debt:    dto.ToDebtResponse(output.Debt),
	})
}

// ListPayments handles GET /debts/:id/payments requests.
func (c *DebtController) ListPayments(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	debtID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.listPaymentsUseCase.Execute(ctx.Request.Context(), debt.ListPaymentsInput{
		DebtID: debtID,
		UserID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentListResponse(output))
}

// Schedule handles GET /debts/:id/schedule requests.
func (c *DebtController) Schedule(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	debtID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.scheduleUseCase.Execute(ctx.Request.Context(), debt.ProjectScheduleInput{
		DebtID: debtID,
		UserID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScheduleResponse(output))
}
