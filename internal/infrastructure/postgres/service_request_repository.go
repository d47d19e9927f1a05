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

var _ repository.ServiceRequestRepository = (*ServiceRequestRepo)(nil)

// ServiceRequestRepo implementación del puerto ServiceRequestRepository sobre
// PostgreSQL (usable con pool o tx). Cubre tickets, adjuntos y notas de avance.
type ServiceRequestRepo struct {
	q Querier
}

// NewServiceRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRequestRepository(q Querier) *ServiceRequestRepo {
	return &ServiceRequestRepo{q: q}
}

const serviceRequestColumns = `id, request_number, customer_id, branch_id, title, description, category,
	priority, status, technician_id, estimated_cost, final_cost, internal_notes, completed_date,
	created_by, created_at, updated_at`

func scanServiceRequest(row pgx.Row) (*entity.ServiceRequest, error) {
	var sr entity.ServiceRequest
	var branchID, technicianID *string
	err := row.Scan(
		&sr.ID, &sr.RequestNumber, &sr.CustomerID, &branchID, &sr.Title, &sr.Description,
		&sr.Category, &sr.Priority, &sr.Status, &technicianID, &sr.EstimatedCost,
		&sr.FinalCost, &sr.InternalNotes, &sr.CompletedDate, &sr.CreatedBy,
		&sr.CreatedAt, &sr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if branchID != nil {
		sr.BranchID = *branchID
	}
	if technicianID != nil {
		sr.TechnicianID = *technicianID
	}
	return &sr, nil
}

// Create persiste un nuevo ticket.
func (r *ServiceRequestRepo) Create(sr *entity.ServiceRequest) error {
	query := `
		INSERT INTO service_requests (` + serviceRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		sr.ID, sr.RequestNumber, sr.CustomerID, nullIfEmpty(sr.BranchID), sr.Title,
		sr.Description, sr.Category, sr.Priority, sr.Status, nullIfEmpty(sr.TechnicianID),
		sr.EstimatedCost, sr.FinalCost, sr.InternalNotes, sr.CompletedDate,
		sr.CreatedBy, sr.CreatedAt, sr.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service request: %w", err)
	}
	return nil
}

// GetByID obtiene un ticket por ID.
func (r *ServiceRequestRepo) GetByID(id string) (*entity.ServiceRequest, error) {
	sr, err := scanServiceRequest(r.q.QueryRow(context.Background(),
		`SELECT `+serviceRequestColumns+` FROM service_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service request: %w", err)
	}
	return sr, nil
}

// List lista tickets aplicando los filtros conjuntivos.
func (r *ServiceRequestRepo) List(filter repository.ServiceRequestFilter) ([]*entity.ServiceRequest, error) {
	query := `SELECT ` + serviceRequestColumns + ` FROM service_requests WHERE 1=1`
	var args []any
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := fmt.Sprintf("$%d", len(args))
		query += ` AND (request_number ILIKE ` + n + ` OR title ILIKE ` + n + ` OR description ILIKE ` + n + `)`
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		query += fmt.Sprintf(` AND priority = $%d`, len(args))
	}
	if filter.TechnicianID != "" {
		args = append(args, filter.TechnicianID)
		query += fmt.Sprintf(` AND technician_id = $%d`, len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(` AND customer_id = $%d`, len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceRequest
	for rows.Next() {
		sr, err := scanServiceRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service request: %w", err)
		}
		list = append(list, sr)
	}
	return list, rows.Err()
}

// Update actualiza un ticket existente.
func (r *ServiceRequestRepo) Update(sr *entity.ServiceRequest) error {
	query := `
		UPDATE service_requests SET customer_id = $2, branch_id = $3, title = $4, description = $5,
			category = $6, priority = $7, status = $8, technician_id = $9, estimated_cost = $10,
			final_cost = $11, internal_notes = $12, completed_date = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sr.ID, sr.CustomerID, nullIfEmpty(sr.BranchID), sr.Title, sr.Description,
		sr.Category, sr.Priority, sr.Status, nullIfEmpty(sr.TechnicianID),
		sr.EstimatedCost, sr.FinalCost, sr.InternalNotes, sr.CompletedDate, sr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service request: %w", err)
	}
	return nil
}

// Delete elimina un ticket; adjuntos y notas caen por FK ON DELETE CASCADE.
func (r *ServiceRequestRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM service_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service request: %w", err)
	}
	return nil
}

// CountByDay cuenta los tickets creados el día dado (secuencia del número SR).
func (r *ServiceRequestRepo) CountByDay(day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM service_requests WHERE created_at >= $1 AND created_at < $2`,
		start, end,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count service requests by day: %w", err)
	}
	return count, nil
}

// ─────────────────────────────────────────────
// Adjuntos
// ─────────────────────────────────────────────

// CreateAttachment persiste los metadatos de un adjunto.
func (r *ServiceRequestRepo) CreateAttachment(a *entity.ServiceRequestAttachment) error {
	query := `
		INSERT INTO service_request_attachments
			(id, service_request_id, file_name, storage_path, mime_type, size_bytes, description, is_customer_visible, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ServiceRequestID, a.FileName, a.StoragePath, a.MimeType,
		a.SizeBytes, a.Description, a.IsCustomerVisible, a.UploadedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

// GetAttachment obtiene los metadatos de un adjunto por ID.
func (r *ServiceRequestRepo) GetAttachment(id string) (*entity.ServiceRequestAttachment, error) {
	query := `
		SELECT id, service_request_id, file_name, storage_path, mime_type, size_bytes, description, is_customer_visible, uploaded_by, created_at
		FROM service_request_attachments WHERE id = $1`
	var a entity.ServiceRequestAttachment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ServiceRequestID, &a.FileName, &a.StoragePath, &a.MimeType,
		&a.SizeBytes, &a.Description, &a.IsCustomerVisible, &a.UploadedBy, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attachment: %w", err)
	}
	return &a, nil
}

// ListAttachments lista los adjuntos de un ticket.
func (r *ServiceRequestRepo) ListAttachments(serviceRequestID string) ([]*entity.ServiceRequestAttachment, error) {
	query := `
		SELECT id, service_request_id, file_name, storage_path, mime_type, size_bytes, description, is_customer_visible, uploaded_by, created_at
		FROM service_request_attachments WHERE service_request_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, serviceRequestID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceRequestAttachment
	for rows.Next() {
		var a entity.ServiceRequestAttachment
		if err := rows.Scan(&a.ID, &a.ServiceRequestID, &a.FileName, &a.StoragePath, &a.MimeType,
			&a.SizeBytes, &a.Description, &a.IsCustomerVisible, &a.UploadedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// DeleteAttachment elimina los metadatos de un adjunto.
func (r *ServiceRequestRepo) DeleteAttachment(id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM service_request_attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────
// Notas de avance
// ─────────────────────────────────────────────

// CreateUpdate persiste una nota de avance.
func (r *ServiceRequestRepo) CreateUpdate(u *entity.ServiceRequestUpdate) error {
	query := `
		INSERT INTO service_request_updates (id, service_request_id, note, is_customer_visible, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.ServiceRequestID, u.Note, u.IsCustomerVisible, u.CreatedBy, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service update: %w", err)
	}
	return nil
}

// ListUpdates lista las notas de avance de un ticket.
func (r *ServiceRequestRepo) ListUpdates(serviceRequestID string) ([]*entity.ServiceRequestUpdate, error) {
	query := `
		SELECT id, service_request_id, note, is_customer_visible, created_by, created_at
		FROM service_request_updates WHERE service_request_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, serviceRequestID)
	if err != nil {
		return nil, fmt.Errorf("list service updates: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceRequestUpdate
	for rows.Next() {
		var u entity.ServiceRequestUpdate
		if err := rows.Scan(&u.ID, &u.ServiceRequestID, &u.Note, &u.IsCustomerVisible, &u.CreatedBy, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service update: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
