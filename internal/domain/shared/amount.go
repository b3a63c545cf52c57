package shared

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places every money column stores
const AmountScale = 2

// CheckAmount rejects negative amounts and amounts finer than AmountScale.
// field starts the error message, e.g. "Unit cost".
func CheckAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return NewValidationError(fmt.Sprintf("%s cannot be negative", field))
	}
	return CheckAmountScale(field, amount)
}

// CheckAmountScale rejects amounts with more than AmountScale decimal places.
// Trailing zeros do not count: 12.500 is accepted.
func CheckAmountScale(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return NewValidationError(fmt.Sprintf("%s cannot have more than %d decimal places", field, AmountScale))
	}
	return nil
}
