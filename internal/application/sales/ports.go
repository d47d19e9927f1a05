package sales

import (
	"context"

	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Venta, líneas y comisión se persisten juntas:
// un fallo en cualquier paso revierte los anteriores (sin filas huérfanas).
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		commissionRepo repository.CommissionRepository,
	) error) error
}

// ReceiptPDFGenerator genera el comprobante PDF de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, customer *entity.Customer, lines []ReceiptLine) ([]byte, error)
}

// ReceiptLine línea de venta enriquecida con el nombre del producto para el PDF.
type ReceiptLine struct {
	Item        *entity.SaleItem
	ProductName string
}
