package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
)

var _ repository.CommissionRepository = (*CommissionRepo)(nil)

// CommissionRepo implementación del puerto CommissionRepository sobre PostgreSQL (usable con pool o tx).
type CommissionRepo struct {
	q Querier
}

// NewCommissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCommissionRepository(q Querier) *CommissionRepo {
	return &CommissionRepo{q: q}
}

const commissionColumns = `id, sale_id, sales_person_id, commission_amount, is_paid, payment_date, created_at, updated_at`

func scanCommission(row pgx.Row) (*entity.SalesCommission, error) {
	var c entity.SalesCommission
	err := row.Scan(
		&c.ID, &c.SaleID, &c.SalesPersonID, &c.CommissionAmount,
		&c.IsPaid, &c.PaymentDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva comisión (a lo sumo una por venta).
func (r *CommissionRepo) Create(c *entity.SalesCommission) error {
	query := `
		INSERT INTO sales_commissions (` + commissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.SaleID, c.SalesPersonID, c.CommissionAmount,
		c.IsPaid, c.PaymentDate, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert commission: %w", err)
	}
	return nil
}

// GetByID obtiene una comisión por ID.
func (r *CommissionRepo) GetByID(id string) (*entity.SalesCommission, error) {
	c, err := scanCommission(r.q.QueryRow(context.Background(),
		`SELECT `+commissionColumns+` FROM sales_commissions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission: %w", err)
	}
	return c, nil
}

// GetBySaleID obtiene la comisión asociada a una venta.
func (r *CommissionRepo) GetBySaleID(saleID string) (*entity.SalesCommission, error) {
	c, err := scanCommission(r.q.QueryRow(context.Background(),
		`SELECT `+commissionColumns+` FROM sales_commissions WHERE sale_id = $1`, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission by sale: %w", err)
	}
	return c, nil
}

// List lista comisiones aplicando los filtros conjuntivos.
func (r *CommissionRepo) List(filter repository.CommissionFilter) ([]*entity.SalesCommission, error) {
	query := `SELECT ` + commissionColumns + ` FROM sales_commissions WHERE 1=1`
	var args []any
	if filter.SalesPersonID != "" {
		args = append(args, filter.SalesPersonID)
		query += fmt.Sprintf(` AND sales_person_id = $%d`, len(args))
	}
	if filter.IsPaid != nil {
		args = append(args, *filter.IsPaid)
		query += fmt.Sprintf(` AND is_paid = $%d`, len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}
	if filter.OnlyZero {
		query += ` AND commission_amount = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesCommission
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan commission: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza una comisión existente.
func (r *CommissionRepo) Update(c *entity.SalesCommission) error {
	query := `
		UPDATE sales_commissions SET commission_amount = $2, is_paid = $3, payment_date = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CommissionAmount, c.IsPaid, c.PaymentDate, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update commission: %w", err)
	}
	return nil
}

// DeleteBySaleID elimina la comisión asociada a una venta.
func (r *CommissionRepo) DeleteBySaleID(saleID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM sales_commissions WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete commission by sale: %w", err)
	}
	return nil
}

// Report agrega comisiones por vendedor en el período. La agregación corre en
// SQL para no cargar todas las filas en memoria.
func (r *CommissionRepo) Report(ctx context.Context, start, end *time.Time, salesPersonID string) ([]repository.CommissionReportRow, error) {
	query := `
		SELECT c.sales_person_id, u.name,
			COUNT(*) AS sales_count,
			COALESCE(SUM(c.commission_amount), 0) AS total_commission,
			COALESCE(SUM(c.commission_amount) FILTER (WHERE c.is_paid), 0) AS paid_amount,
			COALESCE(SUM(c.commission_amount) FILTER (WHERE NOT c.is_paid), 0) AS unpaid_amount
		FROM sales_commissions c
		JOIN users u ON u.id = c.sales_person_id
		WHERE 1=1`
	var args []any
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(` AND c.created_at >= $%d`, len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(` AND c.created_at <= $%d`, len(args))
	}
	if salesPersonID != "" {
		args = append(args, salesPersonID)
		query += fmt.Sprintf(` AND c.sales_person_id = $%d`, len(args))
	}
	query += ` GROUP BY c.sales_person_id, u.name ORDER BY total_commission DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("commission report: %w", err)
	}
	defer rows.Close()
	var report []repository.CommissionReportRow
	for rows.Next() {
		var row repository.CommissionReportRow
		if err := rows.Scan(&row.SalesPersonID, &row.SalesPersonName, &row.SalesCount,
			&row.TotalCommission, &row.PaidAmount, &row.UnpaidAmount); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
