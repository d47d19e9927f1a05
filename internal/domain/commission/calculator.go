package commission

import (
	"github.com/shopspring/decimal"

	"github.com/comprint/mualish-plus-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Amount implementa la regla de comisión (servicio de dominio):
// Monto = Σ (Cantidad_i * PrecioUnitario_i * Tasa_i / 100) sobre las líneas de la venta.
// El resultado se redondea a 2 decimales con redondeo mitad-arriba; el descuento
// de la línea NO participa en la base de la comisión.
// Una venta sin líneas (o con todas las tasas en cero) comisiona 0, no es error.
func Amount(items []*entity.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it == nil {
			continue
		}
		line := decimal.NewFromInt(int64(it.Quantity)).
			Mul(it.UnitPrice).
			Mul(it.CommissionRate).
			Div(hundred)
		total = total.Add(line)
	}
	return total.Round(2)
}

// LineTotal calcula el total de una línea de venta:
// Cantidad * PrecioUnitario * (1 - Descuento/100), redondeado a 2 decimales.
func LineTotal(quantity int, unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	gross := decimal.NewFromInt(int64(quantity)).Mul(unitPrice)
	if discountPercent.IsZero() {
		return gross.Round(2)
	}
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
	return gross.Mul(factor).Round(2)
}
