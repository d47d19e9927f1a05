package sales

import (
	"context"

	"github.com/comprint/mualish-plus-api/internal/application/dto"
	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
)

// UseCase consultas y borrado de ventas, más el comprobante PDF.
type UseCase struct {
	saleRepo       repository.SaleRepository
	commissionRepo repository.CommissionRepository
	customerRepo   repository.CustomerRepository
	productRepo    repository.ProductRepository
	pdfGenerator   ReceiptPDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	saleRepo repository.SaleRepository,
	commissionRepo repository.CommissionRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	pdfGenerator ReceiptPDFGenerator,
) *UseCase {
	return &UseCase{
		saleRepo:       saleRepo,
		commissionRepo: commissionRepo,
		customerRepo:   customerRepo,
		productRepo:    productRepo,
		pdfGenerator:   pdfGenerator,
	}
}

// GetByID obtiene una venta con sus líneas.
func (uc *UseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	items, err := uc.saleRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return toSaleResponse(sale), nil
}

// List lista ventas aplicando los filtros conjuntivos (sin líneas).
func (uc *UseCase) List(filter repository.SaleFilter) ([]dto.SaleResponse, error) {
	list, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return items, nil
}

// Delete elimina una venta: la comisión asociada se borra primero y las líneas
// caen por cascada de FK.
func (uc *UseCase) Delete(id string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if err := uc.commissionRepo.DeleteBySaleID(id); err != nil {
		return err
	}
	return uc.saleRepo.Delete(id)
}

// Receipt genera el comprobante PDF de la venta.
func (uc *UseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, _ = uc.customerRepo.GetByID(sale.CustomerID)
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		name := it.ProductID
		if p, err := uc.productRepo.GetByID(it.ProductID); err == nil && p != nil {
			name = p.Name
		}
		lines = append(lines, ReceiptLine{Item: it, ProductName: name})
	}
	return uc.pdfGenerator.GenerateReceiptPDF(ctx, sale, customer, lines)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	out := &dto.SaleResponse{
		ID:             s.ID,
		InvoiceNumber:  s.InvoiceNumber,
		CustomerID:     s.CustomerID,
		SalesPersonID:  s.SalesPersonID,
		BranchID:       s.BranchID,
		SaleDate:       s.SaleDate,
		Subtotal:       s.Subtotal,
		TaxAmount:      s.TaxAmount,
		DiscountAmount: s.DiscountAmount,
		TotalAmount:    s.TotalAmount,
		PaymentStatus:  s.PaymentStatus,
		PaymentMethod:  s.PaymentMethod,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			CommissionRate:  it.CommissionRate,
			DiscountPercent: it.DiscountPercent,
			TotalPrice:      it.TotalPrice,
		})
	}
	return out
}
