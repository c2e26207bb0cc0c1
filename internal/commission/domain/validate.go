package domain

import (
	"github.com/shopspring/decimal"
)

// ValidateInput checks the raw amount tokens against the input
// constraints and returns a validated CommissionInput. Checks run in a
// fixed order and stop at the first violation:
//
//  1. both tokens parse as numbers
//  2. sales_amount is non-negative
//  3. target_amount is greater than zero
//  4. neither amount exceeds maxAmount (the bound itself is valid)
func ValidateInput(rawSales, rawTarget string, maxAmount decimal.Decimal) (CommissionInput, *ValidationError) {
	sales, err := decimal.NewFromString(rawSales)
	if err != nil {
		return CommissionInput{}, newValidationError(FieldSalesAmount, ConstraintMustBeNumber, "sales_amount must be a number")
	}

	target, err := decimal.NewFromString(rawTarget)
	if err != nil {
		return CommissionInput{}, newValidationError(FieldTargetAmount, ConstraintMustBeNumber, "target_amount must be a number")
	}

	if sales.IsNegative() {
		return CommissionInput{}, newValidationError(FieldSalesAmount, ConstraintNonNegative, "sales_amount cannot be negative")
	}

	if !target.IsPositive() {
		return CommissionInput{}, newValidationError(FieldTargetAmount, ConstraintGreaterThanZero, "target_amount must be greater than zero")
	}

	if sales.GreaterThan(maxAmount) {
		return CommissionInput{}, newValidationError(FieldSalesAmount, ConstraintMaxAmountExceeded, "sales_amount exceeds the maximum allowed amount")
	}

	if target.GreaterThan(maxAmount) {
		return CommissionInput{}, newValidationError(FieldTargetAmount, ConstraintMaxAmountExceeded, "target_amount exceeds the maximum allowed amount")
	}

	return CommissionInput{SalesAmount: sales, TargetAmount: target}, nil
}
