package commission_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/comprint/mualish-plus-api/internal/domain/commission"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
)

func item(qty int, price, rate float64) *entity.SaleItem {
	return &entity.SaleItem{
		Quantity:       qty,
		UnitPrice:      decimal.NewFromFloat(price),
		CommissionRate: decimal.NewFromFloat(rate),
	}
}

// TestAmount_EjemploReferencia valida el ejemplo de referencia:
// {qty:2, price:100, rate:5} + {qty:1, price:50, rate:10} = 10 + 5 = 15.00
func TestAmount_EjemploReferencia(t *testing.T) {
	items := []*entity.SaleItem{
		item(2, 100, 5),
		item(1, 50, 10),
	}
	got := commission.Amount(items)
	assert.True(t, got.Equal(decimal.NewFromInt(15)),
		"la comisión esperada es 15.00, se obtuvo %s", got)
}

// TestAmount_IndependienteDelOrden verifica que la suma no depende del orden de las líneas.
func TestAmount_IndependienteDelOrden(t *testing.T) {
	a := []*entity.SaleItem{item(2, 100, 5), item(1, 50, 10), item(3, 19.99, 7.5)}
	b := []*entity.SaleItem{item(3, 19.99, 7.5), item(2, 100, 5), item(1, 50, 10)}

	assert.True(t, commission.Amount(a).Equal(commission.Amount(b)),
		"el monto debe ser idéntico con las líneas en cualquier orden")
}

// TestAmount_SinLineas una venta sin líneas comisiona 0 (no es error).
func TestAmount_SinLineas(t *testing.T) {
	assert.True(t, commission.Amount(nil).IsZero())
	assert.True(t, commission.Amount([]*entity.SaleItem{}).IsZero())
}

// TestAmount_TasasCero todas las tasas en cero comisionan 0.
func TestAmount_TasasCero(t *testing.T) {
	items := []*entity.SaleItem{item(5, 200, 0), item(2, 99.90, 0)}
	assert.True(t, commission.Amount(items).IsZero())
}

// TestAmount_RedondeoDosDecimales el resultado siempre queda en 2 decimales (mitad-arriba).
func TestAmount_RedondeoDosDecimales(t *testing.T) {
	// 1 * 33.33 * 5% = 1.6665 → 1.67
	items := []*entity.SaleItem{item(1, 33.33, 5)}
	got := commission.Amount(items)
	assert.True(t, got.Equal(decimal.NewFromFloat(1.67)),
		"1.6665 debe redondear a 1.67, se obtuvo %s", got)
}

// TestAmount_IgnoraLineasNil una línea nil no aporta ni rompe la suma.
func TestAmount_IgnoraLineasNil(t *testing.T) {
	items := []*entity.SaleItem{item(2, 100, 5), nil}
	assert.True(t, commission.Amount(items).Equal(decimal.NewFromInt(10)))
}

// TestAmount_DescuentoNoAfectaComision el descuento de línea no reduce la base de comisión.
func TestAmount_DescuentoNoAfectaComision(t *testing.T) {
	conDescuento := item(2, 100, 5)
	conDescuento.DiscountPercent = decimal.NewFromInt(50)

	got := commission.Amount([]*entity.SaleItem{conDescuento})
	assert.True(t, got.Equal(decimal.NewFromInt(10)),
		"la comisión se calcula sobre qty*precio sin descuento")
}

// TestLineTotal_SinDescuento total = qty * precio.
func TestLineTotal_SinDescuento(t *testing.T) {
	got := commission.LineTotal(3, decimal.NewFromFloat(19.99), decimal.Zero)
	assert.True(t, got.Equal(decimal.NewFromFloat(59.97)))
}

// TestLineTotal_ConDescuento total = qty * precio * (1 - desc/100).
func TestLineTotal_ConDescuento(t *testing.T) {
	got := commission.LineTotal(2, decimal.NewFromInt(100), decimal.NewFromInt(25))
	assert.True(t, got.Equal(decimal.NewFromInt(150)),
		"2*100 con 25%% de descuento debe dar 150.00, se obtuvo %s", got)
}
