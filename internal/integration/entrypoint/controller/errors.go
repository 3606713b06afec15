// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// handleError translates use case errors into HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var (
		accountErr     *domainerror.AccountError
		transactionErr *domainerror.TransactionError
		categoryErr    *domainerror.CategoryError
		cardErr        *domainerror.CreditCardError
		debtErr        *domainerror.DebtError
		investmentErr  *domainerror.InvestmentError
		dashboardErr   *domainerror.DashboardError
		ruleErr        *domainerror.CategoryRuleError
	)

	switch {
	case errors.As(err, &accountErr):
		respond(ctx, getStatusCodeForAccountError(accountErr.Code), accountErr.Message, string(accountErr.Code))
	case errors.As(err, &transactionErr):
		respond(ctx, getStatusCodeForTransactionError(transactionErr.Code), transactionErr.Message, string(transactionErr.Code))
	case errors.As(err, &categoryErr):
		respond(ctx, getStatusCodeForCategoryError(categoryErr.Code), categoryErr.Message, string(categoryErr.Code))
	case errors.As(err, &cardErr):
		respond(ctx, getStatusCodeForCreditCardError(cardErr.Code), cardErr.Message, string(cardErr.Code))
	case errors.As(err, &debtErr):
		respond(ctx, getStatusCodeForDebtError(debtErr.Code), debtErr.Message, string(debtErr.Code))
	case errors.As(err, &investmentErr):
		respond(ctx, getStatusCodeForInvestmentError(investmentErr.Code), investmentErr.Message, string(investmentErr.Code))
	case errors.As(err, &dashboardErr):
		respond(ctx, http.StatusBadRequest, dashboardErr.Message, string(dashboardErr.Code))
	case errors.As(err, &ruleErr):
		respond(ctx, getStatusCodeForCategoryRuleError(ruleErr.Code), ruleErr.Message, string(ruleErr.Code))
	default:
		slog.Error("Request failed", "method", ctx.Request.Method, "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func respond(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func getStatusCodeForAccountError(code domainerror.AccountErrorCode) int {
	switch code {
	case domainerror.ErrCodeAccountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAccountInactive:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction:
		return http.StatusForbidden
	case domainerror.ErrCodeAlreadyCompleted,
		domainerror.ErrCodeAlreadyPending,
		domainerror.ErrCodeStatusChanged,
		domainerror.ErrCodeTransferLegImmutable,
		domainerror.ErrCodeTransferCounterLegMissing,
		domainerror.ErrCodeBookedTransactionImmutable:
		return http.StatusConflict
	case domainerror.ErrCodeTransferCategoriesMissing:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists,
		domainerror.ErrCodeCategoryInUse:
		return http.StatusConflict
	case domainerror.ErrCodeSystemCategory:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func getStatusCodeForCreditCardError(code domainerror.CreditCardErrorCode) int {
	switch code {
	case domainerror.ErrCodeCreditCardNotFound,
		domainerror.ErrCodePurchaseNotFound,
		domainerror.ErrCodeCardCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCreditCardInactive,
		domainerror.ErrCodePurchaseHasPaidInstallments,
		domainerror.ErrCodeInvoiceEmpty,
		domainerror.ErrCodeInvoiceChanged:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func getStatusCodeForDebtError(code domainerror.DebtErrorCode) int {
	if code == domainerror.ErrCodeDebtNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func getStatusCodeForInvestmentError(code domainerror.InvestmentErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvestmentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInsufficientQuantity:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func getStatusCodeForCategoryRuleError(code domainerror.CategoryRuleErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryRuleNotFound,
		domainerror.ErrCodeCategoryNotFoundForRule:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryRulePatternExists:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// requireUser returns the authenticated user or writes a 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// paramID parses a UUID path parameter or writes a 400.
func paramID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + name + " format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body or writes a 400.
func bindJSON(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// parseID parses an identifier from a request field or writes a 400.
func parseID(ctx *gin.Context, field, value string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + field + " format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalID parses an optional identifier field.
func parseOptionalID(ctx *gin.Context, field string, value *string) (*uuid.UUID, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	id, ok := parseID(ctx, field, *value)
	if !ok {
		return nil, false
	}
	return &id, true
}

// parseDate parses a YYYY-MM-DD field or writes a 400.
func parseDate(ctx *gin.Context, field, value string) (time.Time, bool) {
	date, err := entity.ParseDate(value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + field + " format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return time.Time{}, false
	}
	return date, true
}

// parseOptionalDate parses an optional YYYY-MM-DD field.
func parseOptionalDate(ctx *gin.Context, field string, value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	date, ok := parseDate(ctx, field, *value)
	if !ok {
		return nil, false
	}
	return &date, true
}
