// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ledger_action", validateLedgerAction)
		_ = v.RegisterValidation("ledger_category", validateLedgerCategory)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
	}
}

func validateLedgerAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "expense", "income", "check_budget", "check_debt",
		"check_patrimony", "financial_summary", "close_month":
		return true
	}
	return false
}

func validateLedgerCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fixed_survival", "debt_offensive", "kepler_growth",
		"networking_life", "stupid_expenses":
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}
