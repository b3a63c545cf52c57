package catering

import "github.com/shopspring/decimal"

// PaymentStatus is derived from an order's amounts, never set directly
type PaymentStatus string

const (
	PaymentStatusPending     PaymentStatus = "PENDING"
	PaymentStatusAdvancePaid PaymentStatus = "ADVANCE_PAID"
	PaymentStatusFullyPaid   PaymentStatus = "FULLY_PAID"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusAdvancePaid, PaymentStatusFullyPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// RemainingAmount is total minus advance. The result is not clamped:
// an advance larger than the total yields a negative remainder.
func RemainingAmount(total, advance decimal.Decimal) decimal.Decimal {
	return total.Sub(advance)
}

// DerivePaymentStatus classifies an order's balance:
// remaining <= 0 is FULLY_PAID, otherwise any advance makes it
// ADVANCE_PAID, otherwise PENDING.
func DerivePaymentStatus(remaining, advance decimal.Decimal) PaymentStatus {
	switch {
	case !remaining.IsPositive():
		return PaymentStatusFullyPaid
	case advance.IsPositive():
		return PaymentStatusAdvancePaid
	default:
		return PaymentStatusPending
	}
}
