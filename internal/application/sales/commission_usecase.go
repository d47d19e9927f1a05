package sales

import (
	"context"
	"time"

	"github.com/comprint/mualish-plus-api/internal/application/dto"
	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/commission"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
	"github.com/comprint/mualish-plus-api/pkg/logger"
)

// CommissionUseCase consultas, pago y reparación de comisiones.
// CommissionAmount es un valor cacheado que puede derivar del contenido real de
// las líneas (ediciones directas en BD, bugs históricos); la reparación lo
// recalcula desde los SaleItems y sobreescribe la fila.
type CommissionUseCase struct {
	repo     repository.CommissionRepository
	saleRepo repository.SaleRepository
	log      *logger.Logger
}

// NewCommissionUseCase construye el caso de uso.
func NewCommissionUseCase(repo repository.CommissionRepository, saleRepo repository.SaleRepository, log *logger.Logger) *CommissionUseCase {
	return &CommissionUseCase{repo: repo, saleRepo: saleRepo, log: log}
}

// GetByID obtiene una comisión por ID.
func (uc *CommissionUseCase) GetByID(id string) (*dto.CommissionResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toCommissionResponse(c), nil
}

// List lista comisiones aplicando los filtros conjuntivos.
func (uc *CommissionUseCase) List(filter repository.CommissionFilter) ([]dto.CommissionResponse, error) {
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CommissionResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCommissionResponse(c))
	}
	return items, nil
}

// MarkPaid marca una comisión como pagada o revierte el pago.
// Al pagar sin fecha explícita se usa la fecha actual; al revertir se limpia.
func (uc *CommissionUseCase) MarkPaid(id string, in dto.UpdateCommissionRequest) (*dto.CommissionResponse, error) {
	if in.IsPaid == nil {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	c.IsPaid = *in.IsPaid
	if c.IsPaid {
		when := time.Now()
		if in.PaymentDate != nil {
			when = *in.PaymentDate
		}
		c.PaymentDate = &when
	} else {
		c.PaymentDate = nil
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return toCommissionResponse(c), nil
}

// RepairOne recalcula el monto de una comisión desde las líneas de su venta.
func (uc *CommissionUseCase) RepairOne(id string) (*dto.RepairReport, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	detail := uc.repair(c)
	report := &dto.RepairReport{Total: 1, Details: []dto.RepairDetail{detail}}
	if detail.Status == repairStatusRepaired {
		report.Success = 1
	} else {
		report.Failed = 1
	}
	return report, nil
}

// RepairAll recorre todas las comisiones (onlyZero limita a montos cero) y
// repara cada una a mejor esfuerzo: un fallo individual se acumula en el
// reporte sin abortar el lote.
func (uc *CommissionUseCase) RepairAll(onlyZero bool) (*dto.RepairReport, error) {
	list, err := uc.repo.List(repository.CommissionFilter{OnlyZero: onlyZero})
	if err != nil {
		return nil, err
	}
	report := &dto.RepairReport{Total: len(list), Details: make([]dto.RepairDetail, 0, len(list))}
	for _, c := range list {
		detail := uc.repair(c)
		if detail.Status == repairStatusRepaired {
			report.Success++
		} else {
			report.Failed++
			uc.log.Warn().
				Str("commission_id", c.ID).
				Str("sale_id", c.SaleID).
				Str("error", detail.Error).
				Msg("reparación de comisión falló, se continúa con el lote")
		}
		report.Details = append(report.Details, detail)
	}
	uc.log.Info().
		Int("total", report.Total).
		Int("success", report.Success).
		Int("failed", report.Failed).
		Bool("only_zero", onlyZero).
		Msg("reparación de comisiones terminada")
	return report, nil
}

const (
	repairStatusRepaired = "repaired"
	repairStatusFailed   = "failed"
)

// repair recalcula y persiste el monto de una comisión. Una venta inexistente
// o sin líneas no es error: comisiona 0.
func (uc *CommissionUseCase) repair(c *entity.SalesCommission) dto.RepairDetail {
	detail := dto.RepairDetail{
		CommissionID: c.ID,
		SaleID:       c.SaleID,
		OldAmount:    c.CommissionAmount,
	}
	items, err := uc.saleRepo.ListItems(c.SaleID)
	if err != nil {
		detail.Status = repairStatusFailed
		detail.Error = err.Error()
		detail.NewAmount = c.CommissionAmount
		return detail
	}
	newAmount := commission.Amount(items)
	c.CommissionAmount = newAmount
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		detail.Status = repairStatusFailed
		detail.Error = err.Error()
		detail.NewAmount = newAmount
		return detail
	}
	detail.Status = repairStatusRepaired
	detail.NewAmount = newAmount
	return detail
}

// Report agrega comisiones por vendedor en el período.
func (uc *CommissionUseCase) Report(ctx context.Context, start, end *time.Time, salesPersonID string) (*dto.CommissionReportResponse, error) {
	rows, err := uc.repo.Report(ctx, start, end, salesPersonID)
	if err != nil {
		return nil, err
	}
	out := &dto.CommissionReportResponse{Rows: make([]dto.CommissionReportRow, 0, len(rows))}
	if start != nil {
		out.StartDate = start.Format("2006-01-02")
	}
	if end != nil {
		out.EndDate = end.Format("2006-01-02")
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.CommissionReportRow{
			SalesPersonID:   r.SalesPersonID,
			SalesPersonName: r.SalesPersonName,
			SalesCount:      r.SalesCount,
			TotalCommission: r.TotalCommission,
			PaidAmount:      r.PaidAmount,
			UnpaidAmount:    r.UnpaidAmount,
		})
	}
	return out, nil
}

func toCommissionResponse(c *entity.SalesCommission) *dto.CommissionResponse {
	if c == nil {
		return nil
	}
	return &dto.CommissionResponse{
		ID:               c.ID,
		SaleID:           c.SaleID,
		SalesPersonID:    c.SalesPersonID,
		CommissionAmount: c.CommissionAmount,
		IsPaid:           c.IsPaid,
		PaymentDate:      c.PaymentDate,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
