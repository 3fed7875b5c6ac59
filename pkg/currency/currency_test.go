package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount string
		code   Currency
		want   string
	}{
		{name: "plain USD", amount: "79.99", code: USD, want: "$79.99"},
		{name: "thousands grouping", amount: "1234.5", code: USD, want: "$1,234.50"},
		{name: "millions grouping", amount: "1234567.89", code: USD, want: "$1,234,567.89"},
		{name: "negative", amount: "-42.1", code: USD, want: "-$42.10"},
		{name: "zero", amount: "0", code: USD, want: "$0.00"},
		{name: "euro symbol after", amount: "99.95", code: EUR, want: "99.95€"},
		{name: "pound", amount: "15", code: GBP, want: "£15.00"},
		{name: "unknown falls back to USD", amount: "10", code: Currency("XYZ"), want: "$10.00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			amount, err := decimal.NewFromString(tt.amount)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, Format(amount, tt.code))
		})
	}
}

func TestFormatUSD(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$80.00", FormatUSD(decimal.NewFromInt(80)))
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValid("USD"))
	assert.True(t, IsValid("EUR"))
	assert.False(t, IsValid("JPY"))
	assert.False(t, IsValid(""))
}
