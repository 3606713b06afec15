package dto

import (
	"github.com/finance-tracker/ledger/internal/application/usecase/dashboard"
)

// DashboardSummaryResponse represents the monthly financial position.
type DashboardSummaryResponse struct {
	Month            string `json:"month"`
	PeriodLabel      string `json:"period_label"`
	TotalBalance     string `json:"total_balance"`
	CompletedIncome  string `json:"completed_income"`
	CompletedExpense string `json:"completed_expense"`
	PendingIncome    string `json:"pending_income"`
	PendingExpense   string `json:"pending_expense"`
	ProjectedBalance string `json:"projected_balance"`
	OpenInvoices     string `json:"open_invoices"`
	OutstandingDebt  string `json:"outstanding_debt"`
	InvestmentValue  string `json:"investment_value"`
	AccountCount     int    `json:"account_count"`
}

// CategoryBreakdownItemResponse represents a single category in the breakdown.
type CategoryBreakdownItemResponse struct {
	CategoryID       string  `json:"category_id"`
	CategoryName     string  `json:"category_name"`
	CategoryColor    string  `json:"category_color"`
	CategoryIcon     string  `json:"category_icon"`
	Amount           string  `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transaction_count"`
}

// CategoryBreakdownResponse represents amounts grouped by category.
type CategoryBreakdownResponse struct {
	StartDate   string                          `json:"start_date"`
	EndDate     string                          `json:"end_date"`
	PeriodLabel string                          `json:"period_label"`
	Type        string                          `json:"type"`
	Total       string                          `json:"total"`
	Categories  []CategoryBreakdownItemResponse `json:"categories"`
}

// TrendPointResponse represents the totals of one month.
type TrendPointResponse struct {
	Month          string `json:"month"`
	PeriodLabel    string `json:"period_label"`
	Income         string `json:"income"`
	Expenses       string `json:"expenses"`
	Net            string `json:"net"`
	PendingIncome  string `json:"pending_income"`
	PendingExpense string `json:"pending_expense"`
}

// TrendsResponse represents monthly income/expense trends.
type TrendsResponse struct {
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Trends    []TrendPointResponse `json:"trends"`
}

// ToDashboardSummaryResponse converts a GetSummaryOutput to its DTO.
func ToDashboardSummaryResponse(output *dashboard.GetSummaryOutput) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		Month:            output.Month.Format("2006-01"),
		PeriodLabel:      output.PeriodLabel,
		TotalBalance:     Money(output.TotalBalance),
		CompletedIncome:  Money(output.CompletedIncome),
		CompletedExpense: Money(output.CompletedExpense),
		PendingIncome:    Money(output.PendingIncome),
		PendingExpense:   Money(output.PendingExpense),
		ProjectedBalance: Money(output.ProjectedBalance),
		OpenInvoices:     Money(output.OpenInvoices),
		OutstandingDebt:  Money(output.OutstandingDebt),
		InvestmentValue:  Money(output.InvestmentValue),
		AccountCount:     output.AccountCount,
	}
}

// ToCategoryBreakdownResponse converts a GetCategoryBreakdownOutput to its DTO.
func ToCategoryBreakdownResponse(output *dashboard.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	categories := make([]CategoryBreakdownItemResponse, len(output.Categories))
	for i, item := range output.Categories {
		categories[i] = CategoryBreakdownItemResponse{
			CategoryID:       item.CategoryID.String(),
			CategoryName:     item.CategoryName,
			CategoryColor:    item.CategoryColor,
			CategoryIcon:     item.CategoryIcon,
			Amount:           Money(item.Amount),
			Percentage:       item.Percentage,
			TransactionCount: item.TransactionCount,
		}
	}
	return CategoryBreakdownResponse{
		StartDate:   Date(output.StartDate),
		EndDate:     Date(output.EndDate),
		PeriodLabel: output.PeriodLabel,
		Type:        string(output.Type),
		Total:       Money(output.Total),
		Categories:  categories,
	}
}

// ToTrendsResponse converts a GetTrendsOutput to a TrendsResponse.
func ToTrendsResponse(output *dashboard.GetTrendsOutput) TrendsResponse {
	trends := make([]TrendPointResponse, len(output.Trends))
	for i, point := range output.Trends {
		trends[i] = TrendPointResponse{
			Month:          point.Month.Format("2006-01"),
			PeriodLabel:    point.PeriodLabel,
			Income:         Money(point.Income),
			Expenses:       Money(point.Expenses),
			Net:            Money(point.Net),
			PendingIncome:  Money(point.PendingIncome),
			PendingExpense: Money(point.PendingExpense),
		}
	}
	return TrendsResponse{
		StartDate: Date(output.StartDate),
		EndDate:   Date(output.EndDate),
		Trends:    trends,
	}
}
