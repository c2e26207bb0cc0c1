package domain

// Constraint identifiers reported in validation errors, in evaluation
// order. The first violated constraint wins; no aggregation.
const (
	ConstraintMustBeNumber      = "must_be_number"
	ConstraintNonNegative       = "non_negative"
	ConstraintGreaterThanZero   = "greater_than_zero"
	ConstraintMaxAmountExceeded = "max_amount_exceeded"
)

// Field identifiers used in validation errors.
const (
	FieldSalesAmount  = "sales_amount"
	FieldTargetAmount = "target_amount"
)

// ValidationError describes exactly one violated input constraint.
type ValidationError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func newValidationError(field, constraint, message string) *ValidationError {
	return &ValidationError{
		Field:      field,
		Constraint: constraint,
		Message:    message,
	}
}
