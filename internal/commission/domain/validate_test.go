package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMaxAmount = decimal.New(1, 12)

func TestValidateInput_Valid(t *testing.T) {
	input, verr := ValidateInput("100000", "120000", testMaxAmount)
	require.Nil(t, verr)
	assert.True(t, input.SalesAmount.Equal(decimal.NewFromInt(100000)))
	assert.True(t, input.TargetAmount.Equal(decimal.NewFromInt(120000)))
}

func TestValidateInput_ZeroSalesIsValid(t *testing.T) {
	input, verr := ValidateInput("0", "1000", testMaxAmount)
	require.Nil(t, verr)
	assert.True(t, input.SalesAmount.IsZero())
}

func TestValidateInput_MaxAmountIsInclusive(t *testing.T) {
	// 1e12 itself is valid; only strictly greater values are rejected.
	input, verr := ValidateInput("1000000000000", "1000000000000", testMaxAmount)
	require.Nil(t, verr)
	assert.True(t, input.SalesAmount.Equal(testMaxAmount))
}

func TestValidateInput_FirstViolationWins(t *testing.T) {
	// sales_amount is checked before target_amount, so a request that
	// violates several rules reports only the first.
	_, verr := ValidateInput("abc", "0", testMaxAmount)
	require.NotNil(t, verr)
	assert.Equal(t, FieldSalesAmount, verr.Field)
	assert.Equal(t, ConstraintMustBeNumber, verr.Constraint)

	_, verr = ValidateInput("-1", "0", testMaxAmount)
	require.NotNil(t, verr)
	assert.Equal(t, FieldSalesAmount, verr.Field)
	assert.Equal(t, ConstraintNonNegative, verr.Constraint)
}

func TestValidateInput_Violations(t *testing.T) {
	cases := []struct {
		name       string
		sales      string
		target     string
		field      string
		constraint string
	}{
		{"sales not a number", "abc", "1000", FieldSalesAmount, ConstraintMustBeNumber},
		{"sales empty", "", "1000", FieldSalesAmount, ConstraintMustBeNumber},
		{"target not a number", "1000", "12,5", FieldTargetAmount, ConstraintMustBeNumber},
		{"target empty", "1000", "", FieldTargetAmount, ConstraintMustBeNumber},
		{"negative sales", "-1", "1000", FieldSalesAmount, ConstraintNonNegative},
		{"zero target", "1000", "0", FieldTargetAmount, ConstraintGreaterThanZero},
		{"negative target", "1000", "-500", FieldTargetAmount, ConstraintGreaterThanZero},
		{"sales above max", "10000000000000", "1000", FieldSalesAmount, ConstraintMaxAmountExceeded},
		{"target above max", "1000", "1000000000000.01", FieldTargetAmount, ConstraintMaxAmountExceeded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, verr := ValidateInput(tc.sales, tc.target, testMaxAmount)
			require.NotNil(t, verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.constraint, verr.Constraint)
			assert.NotEmpty(t, verr.Message)
			assert.ErrorContains(t, verr, tc.field)
		})
	}
}
