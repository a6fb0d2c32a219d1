package eticket_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eticket-service/pkg/eticket"
)

func mustDecimal(t require.TestingT, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func usd(t *testing.T, s string) eticket.MonetaryAmount {
	code := "USD"
	d := mustDecimal(t, s)
	return eticket.MonetaryAmount{Currency: &code, Amount: &d}
}

func TestValidate(t *testing.T) {
	tolerance := eticket.DefaultTolerance()

	t.Run("within tolerance", func(t *testing.T) {
		res := eticket.Validate(usd(t, "200.00"), usd(t, "49.99"), usd(t, "250.00"), tolerance)

		assert.Equal(t, eticket.StatusOK, res.Status)
		require.NotNil(t, res.TaxesDifference)
		assert.True(t, res.TaxesDifference.Equal(mustDecimal(t, "-0.01")), res.TaxesDifference.String())
		assert.True(t, res.TaxesAmountExpected.Equal(mustDecimal(t, "50.00")))
		assert.True(t, res.AmountDifference.Equal(mustDecimal(t, "-0.01")))
	})

	t.Run("mismatch", func(t *testing.T) {
		res := eticket.Validate(usd(t, "100.00"), usd(t, "40.60"), usd(t, "160.60"), tolerance)

		assert.Equal(t, eticket.StatusMismatch, res.Status)
		assert.True(t, res.TaxesAmountExpected.Equal(mustDecimal(t, "60.60")))
		assert.True(t, res.TaxesDifference.Equal(mustDecimal(t, "-20.00")))
	})

	t.Run("taxes missing are derived", func(t *testing.T) {
		res := eticket.Validate(usd(t, "100.00"), eticket.MonetaryAmount{}, usd(t, "160.60"), tolerance)

		assert.Equal(t, eticket.StatusOK, res.Status)
		assert.True(t, res.TaxesAmountExpected.Equal(mustDecimal(t, "60.60")))
		assert.Nil(t, res.TaxesDifference)
		assert.Nil(t, res.AmountDifference)
	})

	t.Run("insufficient data", func(t *testing.T) {
		for _, res := range []eticket.ConsistencyResult{
			eticket.Validate(eticket.MonetaryAmount{}, usd(t, "10.00"), usd(t, "160.60"), tolerance),
			eticket.Validate(usd(t, "100.00"), usd(t, "10.00"), eticket.MonetaryAmount{}, tolerance),
		} {
			assert.Equal(t, eticket.StatusOK, res.Status)
			assert.Nil(t, res.TaxesAmountExpected)
			assert.Nil(t, res.TaxesDifference)
			assert.Nil(t, res.AmountDifference)
		}
	})

	t.Run("zero tolerance", func(t *testing.T) {
		res := eticket.Validate(usd(t, "200.00"), usd(t, "49.99"), usd(t, "250.00"), decimal.Zero)
		assert.Equal(t, eticket.StatusMismatch, res.Status)
	})
}
