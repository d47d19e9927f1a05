package sales

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comprint/mualish-plus-api/internal/application/dto"
	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
)

// ─────────────────────────────────────────────
// Fakes en memoria para la creación de ventas
// ─────────────────────────────────────────────

type fakeSaleStore struct {
	sales          map[string]*entity.Sale
	items          map[string][]*entity.SaleItem
	countByDay     int
	failCreateItem error
}

func newFakeSaleStore() *fakeSaleStore {
	return &fakeSaleStore{
		sales: make(map[string]*entity.Sale),
		items: make(map[string][]*entity.SaleItem),
	}
}

func (f *fakeSaleStore) Create(sale *entity.Sale) error {
	copia := *sale
	f.sales[sale.ID] = &copia
	return nil
}

func (f *fakeSaleStore) CreateItem(item *entity.SaleItem) error {
	if f.failCreateItem != nil {
		return f.failCreateItem
	}
	copia := *item
	f.items[item.SaleID] = append(f.items[item.SaleID], &copia)
	return nil
}

func (f *fakeSaleStore) GetByID(id string) (*entity.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	copia := *s
	return &copia, nil
}

func (f *fakeSaleStore) ListItems(saleID string) ([]*entity.SaleItem, error) {
	return f.items[saleID], nil
}

func (f *fakeSaleStore) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	return nil, nil
}

func (f *fakeSaleStore) Delete(id string) error { return nil }

func (f *fakeSaleStore) CountByDay(day time.Time) (int, error) { return f.countByDay, nil }

// fakeTxRunner emula la transacción con snapshot: si fn falla, restaura el
// estado previo (equivalente al rollback real).
type fakeTxRunner struct {
	saleStore *fakeSaleStore
	commRepo  *fakeCommissionRepo
}

func (f *fakeTxRunner) RunSale(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	commissionRepo repository.CommissionRepository,
) error) error {
	prevSales := make(map[string]*entity.Sale, len(f.saleStore.sales))
	for k, v := range f.saleStore.sales {
		prevSales[k] = v
	}
	prevItems := make(map[string][]*entity.SaleItem, len(f.saleStore.items))
	for k, v := range f.saleStore.items {
		prevItems[k] = v
	}
	prevComms := make(map[string]*entity.SalesCommission, len(f.commRepo.commissions))
	for k, v := range f.commRepo.commissions {
		prevComms[k] = v
	}

	if err := fn(f.saleStore, f.commRepo); err != nil {
		f.saleStore.sales = prevSales
		f.saleStore.items = prevItems
		f.commRepo.commissions = prevComms
		return err
	}
	return nil
}

type fakeProductCatalog struct {
	products map[string]*entity.Product
}

func (f *fakeProductCatalog) Create(p *entity.Product) error { return nil }
func (f *fakeProductCatalog) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}
func (f *fakeProductCatalog) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductCatalog) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductCatalog) Update(p *entity.Product) error                { return nil }
func (f *fakeProductCatalog) Delete(id string) error                        { return nil }
func (f *fakeProductCatalog) CountSaleItems(productID string) (int, error)  { return 0, nil }

type fakeCustomerDirectory struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerDirectory) Create(c *entity.Customer) error { return nil }
func (f *fakeCustomerDirectory) GetByID(id string) (*entity.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}
func (f *fakeCustomerDirectory) List(query string) ([]*entity.Customer, error) { return nil, nil }
func (f *fakeCustomerDirectory) Update(c *entity.Customer) error               { return nil }
func (f *fakeCustomerDirectory) Delete(id string) error                        { return nil }

type fakeUserDirectory struct {
	users map[string]*entity.User
}

func (f *fakeUserDirectory) Create(u *entity.User) error { return nil }
func (f *fakeUserDirectory) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}
func (f *fakeUserDirectory) FindByEmail(email string) (*entity.User, error) { return nil, nil }
func (f *fakeUserDirectory) List() ([]*entity.User, error)                  { return nil, nil }
func (f *fakeUserDirectory) Update(u *entity.User) error                    { return nil }
func (f *fakeUserDirectory) Delete(id string) error                         { return nil }

type createSaleEnv struct {
	uc        *CreateSaleUseCase
	saleStore *fakeSaleStore
	commRepo  *fakeCommissionRepo
	products  *fakeProductCatalog
}

func newCreateSaleEnv() *createSaleEnv {
	saleStore := newFakeSaleStore()
	commRepo := newFakeCommissionRepo()
	products := &fakeProductCatalog{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", Name: "Teclado", Price: dec("100"), CommissionRate: dec("5")},
		"prod-2": {ID: "prod-2", Name: "Mouse", Price: dec("50"), CommissionRate: dec("0")},
	}}
	customers := &fakeCustomerDirectory{customers: map[string]*entity.Customer{
		"cust-1": {ID: "cust-1", Name: "Cliente Uno"},
	}}
	users := &fakeUserDirectory{users: map[string]*entity.User{
		"vend-1": {ID: "vend-1", Role: entity.RoleSales, Status: entity.UserStatusActive},
	}}
	runner := &fakeTxRunner{saleStore: saleStore, commRepo: commRepo}
	return &createSaleEnv{
		uc:        NewCreateSaleUseCase(runner, saleStore, products, customers, users),
		saleStore: saleStore,
		commRepo:  commRepo,
		products:  products,
	}
}

// ─────────────────────────────────────────────
// Creación de venta
// ─────────────────────────────────────────────

func TestCreateSale_PersisteVentaLineasYComision(t *testing.T) {
	env := newCreateSaleEnv()

	out, err := env.uc.CreateSale(context.Background(), "vend-1", "branch-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", Quantity: 2, UnitPrice: dec("100")},
			{ProductID: "prod-2", Quantity: 1, UnitPrice: dec("50")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	// Totales: 2×100 + 1×50, sin descuento ni impuesto
	assert.True(t, out.Subtotal.Equal(dec("250")), "subtotal %s", out.Subtotal)
	assert.True(t, out.TotalAmount.Equal(dec("250")), "total %s", out.TotalAmount)
	assert.Equal(t, entity.PaymentStatusPending, out.PaymentStatus)
	assert.Len(t, out.Items, 2)
	assert.Len(t, env.saleStore.items[out.ID], 2)

	// Comisión: 2×100×5% = 10.00 (la línea de prod-2 comisiona 0)
	comm, err := env.commRepo.GetBySaleID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, comm)
	assert.True(t, comm.CommissionAmount.Equal(dec("10")), "comisión %s", comm.CommissionAmount)
	assert.Equal(t, "vend-1", comm.SalesPersonID)
	assert.False(t, comm.IsPaid)
}

func TestCreateSale_NumeroDeFacturaPorDia(t *testing.T) {
	env := newCreateSaleEnv()
	env.saleStore.countByDay = 7

	out, err := env.uc.CreateSale(context.Background(), "vend-1", "", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1, UnitPrice: dec("100")}},
	})
	require.NoError(t, err)

	esperado := fmt.Sprintf("INV-%s-0008", time.Now().Format("20060102"))
	assert.Equal(t, esperado, out.InvoiceNumber)
}

func TestCreateSale_SinComisionNoCreaFila(t *testing.T) {
	env := newCreateSaleEnv()

	out, err := env.uc.CreateSale(context.Background(), "vend-1", "", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-2", Quantity: 3, UnitPrice: dec("50")}},
	})
	require.NoError(t, err)

	comm, err := env.commRepo.GetBySaleID(out.ID)
	require.NoError(t, err)
	assert.Nil(t, comm, "una venta con comisión 0 no debe crear fila de comisión")
}

func TestCreateSale_DescuentoPorLinea(t *testing.T) {
	env := newCreateSaleEnv()

	// 2×100 con 10% de descuento → total 180, descuento 20
	out, err := env.uc.CreateSale(context.Background(), "vend-1", "", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", Quantity: 2, UnitPrice: dec("100"), DiscountPercent: dec("10")},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.Subtotal.Equal(dec("200")), "subtotal %s", out.Subtotal)
	assert.True(t, out.DiscountAmount.Equal(dec("20")), "descuento %s", out.DiscountAmount)
	assert.True(t, out.TotalAmount.Equal(dec("180")), "total %s", out.TotalAmount)
	assert.True(t, out.Items[0].TotalPrice.Equal(dec("180")))
}

func TestCreateSale_HeredaTasaDelProducto(t *testing.T) {
	env := newCreateSaleEnv()

	out, err := env.uc.CreateSale(context.Background(), "vend-1", "", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)

	// Sin UnitPrice ni CommissionRate en la línea: hereda precio 100 y tasa 5 del producto
	assert.True(t, out.Items[0].UnitPrice.Equal(dec("100")))
	assert.True(t, out.Items[0].CommissionRate.Equal(dec("5")))
}

func TestCreateSale_ValidaLineas(t *testing.T) {
	env := newCreateSaleEnv()
	ctx := context.Background()

	casos := []struct {
		nombre string
		in     dto.CreateSaleRequest
	}{
		{"sin líneas", dto.CreateSaleRequest{}},
		{"cantidad cero", dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 0, UnitPrice: dec("100")}},
		}},
		{"descuento fuera de rango", dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1, UnitPrice: dec("100"), DiscountPercent: dec("101")}},
		}},
		{"estado de pago inválido", dto.CreateSaleRequest{
			PaymentStatus: "regalada",
			Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1, UnitPrice: dec("100")}},
		}},
	}
	for _, c := range casos {
		_, err := env.uc.CreateSale(ctx, "vend-1", "", c.in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, c.nombre)
	}
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	env := newCreateSaleEnv()

	_, err := env.uc.CreateSale(context.Background(), "vend-1", "", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-999", Quantity: 1, UnitPrice: dec("100")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_FalloEnLineasRevierteTodo(t *testing.T) {
	env := newCreateSaleEnv()
	env.saleStore.failCreateItem = errors.New("disco lleno")

	_, err := env.uc.CreateSale(context.Background(), "vend-1", "", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 2, UnitPrice: dec("100")}},
	})
	require.Error(t, err)

	// La tx revierte: ni venta, ni líneas, ni comisión
	assert.Empty(t, env.saleStore.sales)
	assert.Empty(t, env.saleStore.items)
	assert.Empty(t, env.commRepo.commissions)
}

func TestCreateSale_ComisionRespetaElRedondeo(t *testing.T) {
	env := newCreateSaleEnv()
	env.products.products["prod-3"] = &entity.Product{
		ID: "prod-3", Name: "Cable", Price: dec("33.33"), CommissionRate: dec("7.5"),
	}

	// 3 × 33.33 × 7.5% = 7.49925 → 7.50
	out, err := env.uc.CreateSale(context.Background(), "vend-1", "", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "prod-3", Quantity: 3}},
	})
	require.NoError(t, err)

	comm, err := env.commRepo.GetBySaleID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, comm)
	assert.Equal(t, "7.5", comm.CommissionAmount.String())
}
