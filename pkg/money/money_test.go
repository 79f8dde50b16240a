package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/posjarabe-admin/pkg/money"
)

func TestFromCents_DecimalExacto(t *testing.T) {
	assert.True(t, money.FromCents(123456).Equal(decimal.RequireFromString("1234.56")))
	assert.True(t, money.FromCents(0).Equal(decimal.Zero))
	assert.True(t, money.FromCents(-500).Equal(decimal.RequireFromString("-5")))
}

func TestToCents_RedondeaADosDecimales(t *testing.T) {
	assert.Equal(t, int64(123456), money.ToCents(decimal.RequireFromString("1234.56")))
	assert.Equal(t, int64(100), money.ToCents(decimal.RequireFromString("1.005")))
	assert.Equal(t, int64(0), money.ToCents(decimal.Zero))
}

func TestToCents_InversaDeFromCents(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 123456, 999999999} {
		assert.Equal(t, cents, money.ToCents(money.FromCents(cents)))
	}
}

// es-CO: punto de miles, coma decimal.
func TestFormatCOP_FormatoColombiano(t *testing.T) {
	assert.Equal(t, "$ 1.234,56", money.FormatCOP(123456))
	assert.Equal(t, "$ 0,00", money.FormatCOP(0))
	assert.Equal(t, "$ 1.000.000,00", money.FormatCOP(100000000))
}
