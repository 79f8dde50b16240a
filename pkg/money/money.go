// Package money centraliza el manejo de montos: el backend transporta
// centavos de peso colombiano como enteros y aquí se convierten a decimal
// para aritmética y a texto para mostrar.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printerCO = message.NewPrinter(language.MustParse("es-CO"))

// FromCents convierte centavos a pesos como decimal exacto.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents convierte pesos decimales a centavos (redondeo bancario a 2 decimales).
func ToCents(pesos decimal.Decimal) int64 {
	return pesos.Round(2).Shift(2).IntPart()
}

// FormatCOP formatea centavos como moneda colombiana: "$ 1.234,56".
func FormatCOP(cents int64) string {
	v, _ := FromCents(cents).Float64()
	return printerCO.Sprintf("$ %v", number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
