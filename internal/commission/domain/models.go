package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CommissionInput is a validated pair of amounts. Constructed fresh
// per request; carries no identity beyond its values.
type CommissionInput struct {
	SalesAmount  decimal.Decimal
	TargetAmount decimal.Decimal
}

// CommissionResult is the output of a commission calculation.
// Commission and PercentageOfTarget carry at most two decimal places.
type CommissionResult struct {
	Commission         decimal.Decimal `json:"commission"`
	Eligible           bool            `json:"eligible"`
	PercentageOfTarget decimal.Decimal `json:"percentage_of_target"`
}

// CalculateRequest carries the raw amount tokens as received at the
// boundary. Tokens are parsed by the validator, not the transport, so
// unparseable input surfaces as a ValidationError rather than a
// transport failure.
type CalculateRequest struct {
	SalesAmount  string
	TargetAmount string
}

type Service interface {
	Calculate(context.Context, CalculateRequest) (CommissionResult, error)
}
