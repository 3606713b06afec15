// Package model defines database models for persistence layer.
package model

import "github.com/shopspring/decimal"

// All returns every model in migration order.
func All() []any {
	return []any{
		&AccountModel{},
		&CategoryModel{},
		&CategoryRuleModel{},
		&TransactionModel{},
		&CreditCardModel{},
		&CreditCardPurchaseModel{},
		&InstallmentModel{},
		&DebtModel{},
		&DebtPaymentModel{},
		&InvestmentModel{},
		&InvestmentOperationModel{},
	}
}

// ByTable returns every model keyed by table name.
func ByTable() map[string]any {
	return map[string]any{
		"accounts":                &AccountModel{},
		"categories":              &CategoryModel{},
		"category_rules":          &CategoryRuleModel{},
		"transactions":            &TransactionModel{},
		"credit_cards":            &CreditCardModel{},
		"credit_card_purchases":   &CreditCardPurchaseModel{},
		"installments":            &InstallmentModel{},
		"debts":                   &DebtModel{},
		"debt_payments":           &DebtPaymentModel{},
		"investments":             &InvestmentModel{},
		"investment_transactions": &InvestmentOperationModel{},
	}
}

// money normalizes a stored monetary value to cents. SQLite keeps decimal
// columns with REAL affinity, so arithmetic done in SQL can carry float noise.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// quantity normalizes a stored quantity or unit price.
func quantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(8)
}
