package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/account"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// AccountController handles account endpoints.
type AccountController struct {
	listUseCase       *account.ListAccountsUseCase
	getUseCase        *account.GetAccountUseCase
	createUseCase     *account.CreateAccountUseCase
	updateUseCase     *account.UpdateAccountUseCase
	deactivateUseCase *account.DeactivateAccountUseCase
	auditUseCase      *account.AuditBalanceUseCase
	statementUseCase  *account.GetStatementUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	listUseCase *account.ListAccountsUseCase,
	getUseCase *account.GetAccountUseCase,
	createUseCase *account.CreateAccountUseCase,
	updateUseCase *account.UpdateAccountUseCase,
	deactivateUseCase *account.DeactivateAccountUseCase,
	auditUseCase *account.AuditBalanceUseCase,
	statementUseCase *account.GetStatementUseCase,
) *AccountController {
	return &AccountController{
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deactivateUseCase: deactivateUseCase,
		auditUseCase:      auditUseCase,
		statementUseCase:  statementUseCase,
	}
}

// List handles GET /accounts requests.
func (c *AccountController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), account.ListAccountsInput{
		UserID:          userID,
		IncludeInactive: ctx.Query("include_inactive") == "true",
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountListResponse(output))
}

// Get handles GET /accounts/:id requests.
func (c *AccountController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	accountID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), account.GetAccountInput{
		AccountID: accountID,
		UserID:    userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}

// Create handles POST /accounts requests.
func (c *AccountController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), account.CreateAccountInput{
		UserID:         userID,
		Name:           req.Name,
		Kind:           entity.AccountKind(req.Kind),
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountResponse(output.Account))
}

// Update handles PATCH /accounts/:id requests.
func (c *AccountController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	accountID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input := account.UpdateAccountInput{
		AccountID: accountID,
		UserID:    userID,
		Name:      req.Name,
	}
	if req.Kind != nil {
		kind := entity.AccountKind(*req.Kind)
		input.Kind = &kind
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}

// Deactivate handles DELETE /accounts/:id requests. Accounts are never
// removed, only hidden from new movements.
func (c *AccountController) Deactivate(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	accountID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.deactivateUseCase.Execute(ctx.Request.Context(), account.DeactivateAccountInput{
		AccountID: accountID,
		UserID:    userID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Balance handles GET /accounts/:id/balance requests.
func (c *AccountController) Balance(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	accountID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.auditUseCase.Execute(ctx.Request.Context(), account.AuditBalanceInput{
		AccountID: accountID,
		UserID:    userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBalanceAuditResponse(output))
}

// Statement handles GET /statement requests.
func (c *AccountController) Statement(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	month, err := entity.ParseMonth(ctx.Query("month"))
	if err != nil {
		handleError(ctx, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidMonth,
			"month must be in YYYY-MM format",
			domainerror.ErrInvalidMonth,
		))
		return
	}

	input := account.GetStatementInput{
		UserID: userID,
		Month:  month,
	}
	if raw := ctx.Query("account_id"); raw != "" {
		id, ok := parseID(ctx, "account_id", raw)
		if !ok {
			return
		}
		input.AccountID = &id
	}

	output, err := c.statementUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementResponse(output))
}
