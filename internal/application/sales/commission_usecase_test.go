package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comprint/mualish-plus-api/internal/application/dto"
	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
	"github.com/comprint/mualish-plus-api/pkg/logger"
)

// ─────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────

type fakeCommissionRepo struct {
	commissions map[string]*entity.SalesCommission
	failUpdate  map[string]error
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{
		commissions: make(map[string]*entity.SalesCommission),
		failUpdate:  make(map[string]error),
	}
}

func (f *fakeCommissionRepo) Create(c *entity.SalesCommission) error {
	f.commissions[c.ID] = c
	return nil
}

func (f *fakeCommissionRepo) GetByID(id string) (*entity.SalesCommission, error) {
	c, ok := f.commissions[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (f *fakeCommissionRepo) GetBySaleID(saleID string) (*entity.SalesCommission, error) {
	for _, c := range f.commissions {
		if c.SaleID == saleID {
			copia := *c
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeCommissionRepo) List(filter repository.CommissionFilter) ([]*entity.SalesCommission, error) {
	var out []*entity.SalesCommission
	for _, c := range f.commissions {
		if filter.OnlyZero && !c.CommissionAmount.IsZero() {
			continue
		}
		if filter.SalesPersonID != "" && c.SalesPersonID != filter.SalesPersonID {
			continue
		}
		if filter.IsPaid != nil && c.IsPaid != *filter.IsPaid {
			continue
		}
		copia := *c
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeCommissionRepo) Update(c *entity.SalesCommission) error {
	if err, ok := f.failUpdate[c.ID]; ok {
		return err
	}
	if _, ok := f.commissions[c.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *c
	f.commissions[c.ID] = &copia
	return nil
}

func (f *fakeCommissionRepo) DeleteBySaleID(saleID string) error {
	for id, c := range f.commissions {
		if c.SaleID == saleID {
			delete(f.commissions, id)
		}
	}
	return nil
}

func (f *fakeCommissionRepo) Report(ctx context.Context, start, end *time.Time, salesPersonID string) ([]repository.CommissionReportRow, error) {
	return nil, nil
}

type fakeSaleItemsRepo struct {
	items    map[string][]*entity.SaleItem
	failList map[string]error
}

func newFakeSaleItemsRepo() *fakeSaleItemsRepo {
	return &fakeSaleItemsRepo{
		items:    make(map[string][]*entity.SaleItem),
		failList: make(map[string]error),
	}
}

func (f *fakeSaleItemsRepo) Create(sale *entity.Sale) error         { return nil }
func (f *fakeSaleItemsRepo) CreateItem(item *entity.SaleItem) error { return nil }
func (f *fakeSaleItemsRepo) GetByID(id string) (*entity.Sale, error) {
	return nil, nil
}

func (f *fakeSaleItemsRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	if err, ok := f.failList[saleID]; ok {
		return nil, err
	}
	return f.items[saleID], nil
}

func (f *fakeSaleItemsRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	return nil, nil
}
func (f *fakeSaleItemsRepo) Delete(id string) error                { return nil }
func (f *fakeSaleItemsRepo) CountByDay(day time.Time) (int, error) { return 0, nil }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func saleItem(qty int, price, rate string) *entity.SaleItem {
	return &entity.SaleItem{
		Quantity:       qty,
		UnitPrice:      dec(price),
		CommissionRate: dec(rate),
	}
}

// ─────────────────────────────────────────────
// Reparación individual
// ─────────────────────────────────────────────

func TestRepairOne_RecalculaDesdeLasLineas(t *testing.T) {
	commRepo := newFakeCommissionRepo()
	saleRepo := newFakeSaleItemsRepo()

	// 2×100 al 5% + 1×50 al 10% = 10.00 + 5.00 = 15.00
	saleRepo.items["sale-1"] = []*entity.SaleItem{
		saleItem(2, "100", "5"),
		saleItem(1, "50", "10"),
	}
	commRepo.commissions["com-1"] = &entity.SalesCommission{
		ID:               "com-1",
		SaleID:           "sale-1",
		SalesPersonID:    "user-1",
		CommissionAmount: decimal.Zero,
	}

	uc := NewCommissionUseCase(commRepo, saleRepo, logger.NewNop())
	report, err := uc.RepairOne("com-1")

	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Success)
	assert.Equal(t, 0, report.Failed)
	require.Len(t, report.Details, 1)
	assert.Equal(t, repairStatusRepaired, report.Details[0].Status)
	assert.True(t, report.Details[0].OldAmount.IsZero())
	assert.True(t, report.Details[0].NewAmount.Equal(dec("15.00")),
		"esperaba 15.00, obtuvo %s", report.Details[0].NewAmount)

	persistida, _ := commRepo.GetByID("com-1")
	assert.True(t, persistida.CommissionAmount.Equal(dec("15.00")))
}

func TestRepairOne_VentaSinLineasComisionaCero(t *testing.T) {
	commRepo := newFakeCommissionRepo()
	saleRepo := newFakeSaleItemsRepo()

	commRepo.commissions["com-1"] = &entity.SalesCommission{
		ID:               "com-1",
		SaleID:           "sale-huerfana",
		CommissionAmount: dec("99.99"),
	}

	uc := NewCommissionUseCase(commRepo, saleRepo, logger.NewNop())
	report, err := uc.RepairOne("com-1")

	require.NoError(t, err)
	assert.Equal(t, 1, report.Success)
	persistida, _ := commRepo.GetByID("com-1")
	assert.True(t, persistida.CommissionAmount.IsZero())
}

func TestRepairOne_ComisionInexistente(t *testing.T) {
	uc := NewCommissionUseCase(newFakeCommissionRepo(), newFakeSaleItemsRepo(), logger.NewNop())

	_, err := uc.RepairOne("no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────
// Reparación en lote
// ─────────────────────────────────────────────

func TestRepairAll_AcumulaFallosSinAbortarElLote(t *testing.T) {
	commRepo := newFakeCommissionRepo()
	saleRepo := newFakeSaleItemsRepo()

	saleRepo.items["sale-1"] = []*entity.SaleItem{saleItem(1, "200", "10")}
	saleRepo.items["sale-2"] = []*entity.SaleItem{saleItem(3, "10", "5")}
	saleRepo.failList["sale-2"] = errors.New("conexión perdida")

	commRepo.commissions["com-1"] = &entity.SalesCommission{ID: "com-1", SaleID: "sale-1"}
	commRepo.commissions["com-2"] = &entity.SalesCommission{ID: "com-2", SaleID: "sale-2", CommissionAmount: dec("7.77")}

	uc := NewCommissionUseCase(commRepo, saleRepo, logger.NewNop())
	report, err := uc.RepairAll(false)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Success)
	assert.Equal(t, 1, report.Failed)

	// La reparada quedó con el monto recalculado; la fallida no se tocó.
	com1, _ := commRepo.GetByID("com-1")
	assert.True(t, com1.CommissionAmount.Equal(dec("20.00")))
	com2, _ := commRepo.GetByID("com-2")
	assert.True(t, com2.CommissionAmount.Equal(dec("7.77")))

	for _, d := range report.Details {
		if d.CommissionID == "com-2" {
			assert.Equal(t, repairStatusFailed, d.Status)
			assert.Contains(t, d.Error, "conexión perdida")
		}
	}
}

func TestRepairAll_OnlyZeroIgnoraMontosNoCero(t *testing.T) {
	commRepo := newFakeCommissionRepo()
	saleRepo := newFakeSaleItemsRepo()

	saleRepo.items["sale-1"] = []*entity.SaleItem{saleItem(1, "100", "5")}
	saleRepo.items["sale-2"] = []*entity.SaleItem{saleItem(1, "100", "5")}

	commRepo.commissions["com-0"] = &entity.SalesCommission{ID: "com-0", SaleID: "sale-1"}
	commRepo.commissions["com-ok"] = &entity.SalesCommission{ID: "com-ok", SaleID: "sale-2", CommissionAmount: dec("5.00")}

	uc := NewCommissionUseCase(commRepo, saleRepo, logger.NewNop())
	report, err := uc.RepairAll(true)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Success)
	require.Len(t, report.Details, 1)
	assert.Equal(t, "com-0", report.Details[0].CommissionID)
}

func TestRepairAll_FalloDePersistenciaCuentaComoFallido(t *testing.T) {
	commRepo := newFakeCommissionRepo()
	saleRepo := newFakeSaleItemsRepo()

	saleRepo.items["sale-1"] = []*entity.SaleItem{saleItem(1, "100", "5")}
	commRepo.commissions["com-1"] = &entity.SalesCommission{ID: "com-1", SaleID: "sale-1"}
	commRepo.failUpdate["com-1"] = errors.New("update rechazado")

	uc := NewCommissionUseCase(commRepo, saleRepo, logger.NewNop())
	report, err := uc.RepairAll(false)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, repairStatusFailed, report.Details[0].Status)
}

// ─────────────────────────────────────────────
// Pago
// ─────────────────────────────────────────────

func TestMarkPaid_AsignaFechaDePagoPorDefecto(t *testing.T) {
	commRepo := newFakeCommissionRepo()
	commRepo.commissions["com-1"] = &entity.SalesCommission{ID: "com-1", SaleID: "sale-1"}

	uc := NewCommissionUseCase(commRepo, newFakeSaleItemsRepo(), logger.NewNop())
	paid := true
	resp, err := uc.MarkPaid("com-1", dto.UpdateCommissionRequest{IsPaid: &paid})

	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	require.NotNil(t, resp.PaymentDate)
	assert.WithinDuration(t, time.Now(), *resp.PaymentDate, time.Minute)
}

func TestMarkPaid_RevertirLimpiaLaFecha(t *testing.T) {
	commRepo := newFakeCommissionRepo()
	fecha := time.Now()
	commRepo.commissions["com-1"] = &entity.SalesCommission{
		ID: "com-1", SaleID: "sale-1", IsPaid: true, PaymentDate: &fecha,
	}

	uc := NewCommissionUseCase(commRepo, newFakeSaleItemsRepo(), logger.NewNop())
	unpaid := false
	resp, err := uc.MarkPaid("com-1", dto.UpdateCommissionRequest{IsPaid: &unpaid})

	require.NoError(t, err)
	assert.False(t, resp.IsPaid)
	assert.Nil(t, resp.PaymentDate)
}
