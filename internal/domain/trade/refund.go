package trade

import "github.com/shopspring/decimal"

// CalculateNetRefund returns gross minus the discount clawback and any
// deductions. A non-positive result is returned as-is; rejecting it is the
// caller's decision.
func CalculateNetRefund(gross, discountClawback, deductions decimal.Decimal) decimal.Decimal {
	return gross.Sub(discountClawback).Sub(deductions)
}
