package retailers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "plain price", input: "29.99", want: "29.99", ok: true},
		{name: "dollar sign", input: "$29.99", want: "29.99", ok: true},
		{name: "thousands grouping", input: "$1,234.56", want: "1234.56", ok: true},
		{name: "whole dollars", input: "$45", want: "45", ok: true},
		{name: "labeled", input: "Price: $45.00", want: "45", ok: true},
		{name: "surrounding text", input: "Now only 19.99 today", want: "19.99", ok: true},
		{name: "leading whitespace", input: "  $12.50 ", want: "12.5", ok: true},
		{name: "empty", input: "", ok: false},
		{name: "no digits", input: "Out of stock", ok: false},
		{name: "multiple dots", input: "1.2.3", ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParsePrice(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

// Normalizing an already-normalized price string must not change the value.
func TestParsePrice_Idempotent(t *testing.T) {
	t.Parallel()

	first, ok := ParsePrice("$1,234.56")
	assert.True(t, ok)

	second, ok := ParsePrice(first.String())
	assert.True(t, ok)
	assert.True(t, first.Equal(second))
}
