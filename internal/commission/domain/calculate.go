package domain

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateCommission computes the commission for a validated input.
// Pure and deterministic; the validator guarantees TargetAmount > 0.
//
// Target achievement is compared against the threshold at full
// precision, then rounded half-up to two decimals for the result. The
// threshold is inclusive: achieving exactly thresholdPercent earns the
// commission.
func CalculateCommission(input CommissionInput, rate, thresholdPercent decimal.Decimal) CommissionResult {
	percentage := input.SalesAmount.Div(input.TargetAmount).Mul(hundred)
	eligible := percentage.GreaterThanOrEqual(thresholdPercent)

	commission := decimal.Zero
	if eligible {
		commission = input.SalesAmount.Mul(rate).Round(2)
	}

	return CommissionResult{
		Commission:         commission,
		Eligible:           eligible,
		PercentageOfTarget: percentage.Round(2),
	}
}
