package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comprint/mualish-plus-api/internal/application/dto"
	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/commission"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
)

var percentMax = decimal.NewFromInt(100)

// CreateSaleUseCase crea una venta con sus líneas y la comisión derivada en una
// sola transacción. El sistema original hacía tres escrituras independientes
// (venta, líneas, comisión) sin rollback; aquí el TxRunner las vuelve atómicas.
type CreateSaleUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
	}
}

// CreateSale valida la venta, arma líneas y totales, genera el número de
// factura del día y persiste todo vía TxRunner.
// La venta NO descuenta inventario: el stock se mueve solo con los ajustes
// explícitos de inventario, como en el sistema original.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, callerID, branchID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentStatus != "" && !entity.IsValidPaymentStatus(in.PaymentStatus) {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	salesPersonID := in.SalesPersonID
	if salesPersonID == "" {
		salesPersonID = callerID
	}
	seller, err := uc.userRepo.GetByID(salesPersonID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrNotFound
	}

	// Cliente opcional (venta de mostrador sin cliente)
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Validar líneas y resolver productos (fuera de la tx, solo lectura)
	items := make([]*entity.SaleItem, 0, len(in.Items))
	var subtotal, discountTotal decimal.Decimal
	for i := range in.Items {
		line := &in.Items[i]
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		unitPrice := line.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		if !unitPrice.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		rate := product.CommissionRate
		if line.CommissionRate != nil {
			rate = *line.CommissionRate
		}
		if !validPercent(rate) || !validPercent(line.DiscountPercent) {
			return nil, domain.ErrInvalidInput
		}

		gross := decimal.NewFromInt(int64(line.Quantity)).Mul(unitPrice)
		total := commission.LineTotal(line.Quantity, unitPrice, line.DiscountPercent)
		subtotal = subtotal.Add(gross)
		discountTotal = discountTotal.Add(gross.Sub(total))

		items = append(items, &entity.SaleItem{
			ID:              uuid.New().String(),
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       unitPrice,
			CommissionRate:  rate,
			DiscountPercent: line.DiscountPercent,
			TotalPrice:      total,
		})
	}

	now := time.Now()
	saleDate := now
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}

	// Número de factura del día: INV-YYYYMMDD-NNNN
	seq, err := uc.saleRepo.CountByDay(saleDate)
	if err != nil {
		return nil, err
	}
	invoiceNumber := fmt.Sprintf("INV-%s-%04d", saleDate.Format("20060102"), seq+1)

	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = entity.PaymentStatusPending
	}

	sale := &entity.Sale{
		ID:             uuid.New().String(),
		InvoiceNumber:  invoiceNumber,
		CustomerID:     in.CustomerID,
		SalesPersonID:  salesPersonID,
		BranchID:       branchID,
		SaleDate:       saleDate,
		Subtotal:       subtotal.Round(2),
		TaxAmount:      in.TaxAmount,
		DiscountAmount: discountTotal.Round(2),
		TotalAmount:    subtotal.Sub(discountTotal).Add(in.TaxAmount).Round(2),
		PaymentStatus:  paymentStatus,
		PaymentMethod:  in.PaymentMethod,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, it := range items {
		it.SaleID = sale.ID
	}

	// Comisión derivada de las líneas; solo se crea la fila cuando el total > 0
	commissionAmount := commission.Amount(items)

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		commissionRepo repository.CommissionRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, it := range items {
			if err := saleRepo.CreateItem(it); err != nil {
				return err
			}
		}
		if commissionAmount.GreaterThan(decimal.Zero) {
			return commissionRepo.Create(&entity.SalesCommission{
				ID:               uuid.New().String(),
				SaleID:           sale.ID,
				SalesPersonID:    salesPersonID,
				CommissionAmount: commissionAmount,
				IsPaid:           false,
				CreatedAt:        now,
				UpdatedAt:        now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sale.Items = items
	return toSaleResponse(sale), nil
}

// validPercent verifica que el porcentaje esté en [0,100].
func validPercent(p decimal.Decimal) bool {
	return !p.LessThan(decimal.Zero) && !p.GreaterThan(percentMax)
}
