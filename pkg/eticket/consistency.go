package eticket

import "github.com/shopspring/decimal"

// DefaultTolerance is the largest taxes difference still reported as OK.
func DefaultTolerance() decimal.Decimal {
	return decimal.New(1, -2)
}

// Validate reconciles fare + taxes against total.
//
// With fare or total missing nothing can be checked and the result is OK with
// every derived figure nil. With taxes missing the expected taxes are still
// reported so callers can fill them in.
func Validate(fare, taxes, total MonetaryAmount, tolerance decimal.Decimal) ConsistencyResult {
	res := ConsistencyResult{Status: StatusOK}
	if fare.Amount == nil || total.Amount == nil {
		return res
	}

	expected := total.Amount.Sub(*fare.Amount)
	res.TaxesAmountExpected = &expected
	if taxes.Amount == nil {
		return res
	}

	taxesDiff := taxes.Amount.Sub(expected)
	amountDiff := fare.Amount.Add(*taxes.Amount).Sub(*total.Amount)
	res.TaxesDifference = &taxesDiff
	res.AmountDifference = &amountDiff
	if taxesDiff.Abs().GreaterThan(tolerance) {
		res.Status = StatusMismatch
	}
	return res
}
