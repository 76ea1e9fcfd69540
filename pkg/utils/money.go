package utils

import "math"

// All amounts are stored and computed in minor currency units (kobo).
// Conversion to and from major-unit decimals happens only at the API and
// provider edges.

func ToMinor(major float64) int64 {
	return int64(math.Round(major * 100))
}

func ToMajor(minor int64) float64 {
	return float64(minor) / 100
}

// SplitInstallments returns the per-installment amount for an installment plan.
//
// Policy: floor division in minor units. Every installment bills the same
// amount, and installments*amount may undershoot the total by at most
// installments-1 kobo; the remainder is never billed. This keeps
// sum(collected) <= total under any webhook sequence and gives the provider a
// single flat figure to debit, at the cost of a sub-naira write-off per order.
func SplitInstallments(totalMinor int64, installments int) int64 {
	if installments <= 1 {
		return totalMinor
	}
	return totalMinor / int64(installments)
}
