package eticket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eticket-service/pkg/eticket"
)

func TestParseCurrencyAmount(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantCurrency string
		wantAmount   string
	}{
		{name: "spaced", input: "USD 250.00", wantCurrency: "USD", wantAmount: "250.00"},
		{name: "joined", input: "USD250.00", wantCurrency: "USD", wantAmount: "250.00"},
		{name: "thousands separator", input: "COP 1,234,567.89", wantCurrency: "COP", wantAmount: "1234567.89"},
		{name: "no cents", input: "EUR 250", wantCurrency: "EUR", wantAmount: "250"},
		{name: "lower case code", input: "pen 99.90", wantCurrency: "PEN", wantAmount: "99.90"},
		{name: "label before currency", input: "TAX 49.99 USD 12.34", wantCurrency: "USD", wantAmount: "12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, amount := eticket.ParseCurrencyAmount(tt.input)
			require.NotNil(t, code)
			require.NotNil(t, amount)
			assert.Equal(t, tt.wantCurrency, *code)
			assert.Equal(t, tt.wantAmount, amount.StringFixed(-amount.Exponent()))
		})
	}
}

func TestParseCurrencyAmount_NoMatch(t *testing.T) {
	for _, input := range []string{"", "TAX 49.99", "250.00", "No encontrado", "ABC 12.00"} {
		code, amount := eticket.ParseCurrencyAmount(input)
		assert.Nil(t, code, input)
		assert.Nil(t, amount, input)
	}
}

func TestMonetaryFrom(t *testing.T) {
	m := eticket.MonetaryFrom("Total: USD 1,000.50")
	require.NotNil(t, m.Amount)
	assert.Equal(t, "USD", *m.Currency)
	assert.True(t, m.Amount.Equal(mustDecimal(t, "1000.50")))

	empty := eticket.MonetaryFrom("nothing here")
	assert.Nil(t, empty.Currency)
	assert.Nil(t, empty.Amount)
}
