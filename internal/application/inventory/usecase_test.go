package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comprint/mualish-plus-api/internal/application/dto"
	appinventory "github.com/comprint/mualish-plus-api/internal/application/inventory"
	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	records map[string]*entity.Inventory
}

func newFakeInventoryRepo(records ...*entity.Inventory) *fakeInventoryRepo {
	m := make(map[string]*entity.Inventory)
	for _, r := range records {
		m[r.ID] = r
	}
	return &fakeInventoryRepo{records: m}
}

func (f *fakeInventoryRepo) Create(r *entity.Inventory) error {
	f.records[r.ID] = r
	return nil
}

func (f *fakeInventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	return f.records[id], nil
}

func (f *fakeInventoryRepo) GetByProductID(productID string) (*entity.Inventory, error) {
	for _, r := range f.records {
		if r.ProductID == productID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeInventoryRepo) List(lowStockOnly bool) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, r := range f.records {
		if !lowStockOnly || r.IsLowStock() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) Update(r *entity.Inventory) error {
	f.records[r.ID] = r
	return nil
}

func (f *fakeInventoryRepo) Delete(id string) error {
	delete(f.records, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(*entity.Product) error               { return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return f.products[id], nil }
func (f *fakeProductRepo) GetBySKU(string) (*entity.Product, error)   { return nil, nil }
func (f *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(*entity.Product) error       { return nil }
func (f *fakeProductRepo) Delete(string) error                { return nil }
func (f *fakeProductRepo) CountSaleItems(string) (int, error) { return 0, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Tests AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func record(id string, qty, reorder int) *entity.Inventory {
	return &entity.Inventory{ID: id, ProductID: "p-" + id, Quantity: qty, ReorderLevel: reorder}
}

// TestAdjustStock_RestockSuma en modo restock la cantidad se suma al stock actual
// y se actualiza la fecha de último restock.
func TestAdjustStock_RestockSuma(t *testing.T) {
	repo := newFakeInventoryRepo(record("inv-1", 20, 10))
	uc := appinventory.NewUseCase(repo, &fakeProductRepo{})

	out, err := uc.AdjustStock("inv-1", dto.AdjustStockRequest{Quantity: 5, Restock: true})
	require.NoError(t, err)

	assert.Equal(t, 25, out.Quantity, "restock +5 sobre 20 debe dar 25")
	assert.False(t, out.LowStock, "25 > reorder 10, no es stock bajo")
	assert.NotNil(t, out.LastRestockDate, "restock debe fijar last_restock_date")
}

// TestAdjustStock_SetReemplaza en modo set la cantidad reemplaza el valor actual;
// fijar por debajo del nivel de reorden deja el registro en stock bajo.
func TestAdjustStock_SetReemplaza(t *testing.T) {
	repo := newFakeInventoryRepo(record("inv-1", 20, 10))
	uc := appinventory.NewUseCase(repo, &fakeProductRepo{})

	out, err := uc.AdjustStock("inv-1", dto.AdjustStockRequest{Quantity: 5, Restock: false})
	require.NoError(t, err)

	assert.Equal(t, 5, out.Quantity, "set a 5 reemplaza el 20 actual")
	assert.True(t, out.LowStock, "5 <= reorder 10, queda en stock bajo")
	assert.Nil(t, out.LastRestockDate, "set no toca last_restock_date")
}

// TestAdjustStock_CantidadNoPositiva quantity <= 0 se rechaza en ambos modos.
func TestAdjustStock_CantidadNoPositiva(t *testing.T) {
	repo := newFakeInventoryRepo(record("inv-1", 20, 10))
	uc := appinventory.NewUseCase(repo, &fakeProductRepo{})

	for _, restock := range []bool{true, false} {
		_, err := uc.AdjustStock("inv-1", dto.AdjustStockRequest{Quantity: 0, Restock: restock})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = uc.AdjustStock("inv-1", dto.AdjustStockRequest{Quantity: -3, Restock: restock})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	got, _ := repo.GetByID("inv-1")
	assert.Equal(t, 20, got.Quantity, "un ajuste rechazado no debe tocar el registro")
}

// TestAdjustStock_RegistroInexistente un ID desconocido retorna ErrNotFound.
func TestAdjustStock_RegistroInexistente(t *testing.T) {
	uc := appinventory.NewUseCase(newFakeInventoryRepo(), &fakeProductRepo{})

	_, err := uc.AdjustStock("no-existe", dto.AdjustStockRequest{Quantity: 5, Restock: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestCreate_ProductoSinRegistroPrevio la relación 1:1 rechaza un segundo registro.
func TestCreate_ProductoSinRegistroPrevio(t *testing.T) {
	existing := record("inv-1", 3, 1)
	repo := newFakeInventoryRepo(existing)
	products := &fakeProductRepo{products: map[string]*entity.Product{
		existing.ProductID: {ID: existing.ProductID},
		"p-nuevo":          {ID: "p-nuevo"},
	}}
	uc := appinventory.NewUseCase(repo, products)

	_, err := uc.Create(dto.CreateInventoryRequest{ProductID: existing.ProductID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	out, err := uc.Create(dto.CreateInventoryRequest{ProductID: "p-nuevo", Quantity: 7, ReorderLevel: 2})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Quantity)
}

// TestCreate_ProductoInexistente no se crea inventario de un producto desconocido.
func TestCreate_ProductoInexistente(t *testing.T) {
	uc := appinventory.NewUseCase(newFakeInventoryRepo(), &fakeProductRepo{})

	_, err := uc.Create(dto.CreateInventoryRequest{ProductID: "fantasma", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestList_SoloStockBajo el filtro lowStockOnly devuelve solo quantity <= reorder_level.
func TestList_SoloStockBajo(t *testing.T) {
	repo := newFakeInventoryRepo(
		record("inv-bajo", 5, 10),
		record("inv-limite", 10, 10),
		record("inv-ok", 25, 10),
	)
	uc := appinventory.NewUseCase(repo, &fakeProductRepo{})

	all, err := uc.List(false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	low, err := uc.List(true)
	require.NoError(t, err)
	assert.Len(t, low, 2, "5<=10 y 10<=10 son stock bajo; 25 no")
}
