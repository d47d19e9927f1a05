package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/comprint/mualish-plus-api/internal/application/dto"
	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
)

// Tipos MIME aceptados para adjuntos: imágenes, PDF, texto plano y
// documentos de Office (Word/Excel).
var allowedMimeTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"application/pdf": {},
	"text/plain":      {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
}

// UploadAttachmentInput entrada para subir un adjunto a un ticket.
type UploadAttachmentInput struct {
	FileName          string
	MimeType          string
	Data              []byte
	Description       string
	IsCustomerVisible bool
}

// UploadAttachment guarda el blob en el almacenamiento de archivos y registra
// los metadatos. Si el registro falla, el blob recién guardado se elimina a
// mejor esfuerzo para no dejar huérfanos.
func (uc *UseCase) UploadAttachment(ctx context.Context, serviceRequestID, uploaderID string, in UploadAttachmentInput) (*dto.AttachmentResponse, error) {
	if in.FileName == "" || len(in.Data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if int64(len(in.Data)) > uc.maxFileBytes {
		return nil, domain.ErrInvalidInput
	}
	if _, ok := allowedMimeTypes[in.MimeType]; !ok {
		return nil, domain.ErrInvalidInput
	}

	sr, err := uc.repo.GetByID(serviceRequestID)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, domain.ErrNotFound
	}

	storagePath, err := uc.storage.Save(ctx, in.FileName, in.Data)
	if err != nil {
		return nil, err
	}

	a := &entity.ServiceRequestAttachment{
		ID:                uuid.NewString(),
		ServiceRequestID:  serviceRequestID,
		FileName:          in.FileName,
		StoragePath:       storagePath,
		MimeType:          in.MimeType,
		SizeBytes:         int64(len(in.Data)),
		Description:       in.Description,
		IsCustomerVisible: in.IsCustomerVisible,
		UploadedBy:        uploaderID,
		CreatedAt:         time.Now(),
	}
	if err := uc.repo.CreateAttachment(a); err != nil {
		_ = uc.storage.Delete(ctx, storagePath)
		return nil, err
	}
	return toAttachmentResponse(a), nil
}

// ListAttachments lista los metadatos de los adjuntos de un ticket.
func (uc *UseCase) ListAttachments(serviceRequestID string) ([]dto.AttachmentResponse, error) {
	sr, err := uc.repo.GetByID(serviceRequestID)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListAttachments(serviceRequestID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AttachmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAttachmentResponse(a))
	}
	return items, nil
}

// DeleteAttachment elimina los metadatos y luego el blob a mejor esfuerzo.
func (uc *UseCase) DeleteAttachment(ctx context.Context, id string) error {
	a, err := uc.repo.GetAttachment(id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.DeleteAttachment(id); err != nil {
		return err
	}
	_ = uc.storage.Delete(ctx, a.StoragePath)
	return nil
}

// CreateUpdate agrega una nota de avance a un ticket.
func (uc *UseCase) CreateUpdate(serviceRequestID, authorID string, in dto.CreateServiceUpdateRequest) (*dto.ServiceUpdateResponse, error) {
	if in.Note == "" {
		return nil, domain.ErrInvalidInput
	}
	sr, err := uc.repo.GetByID(serviceRequestID)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, domain.ErrNotFound
	}
	u := &entity.ServiceRequestUpdate{
		ID:                uuid.NewString(),
		ServiceRequestID:  serviceRequestID,
		Note:              in.Note,
		IsCustomerVisible: in.IsCustomerVisible,
		CreatedBy:         authorID,
		CreatedAt:         time.Now(),
	}
	if err := uc.repo.CreateUpdate(u); err != nil {
		return nil, err
	}
	return toServiceUpdateResponse(u), nil
}

// ListUpdates lista las notas de avance de un ticket.
func (uc *UseCase) ListUpdates(serviceRequestID string) ([]dto.ServiceUpdateResponse, error) {
	sr, err := uc.repo.GetByID(serviceRequestID)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListUpdates(serviceRequestID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceUpdateResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toServiceUpdateResponse(u))
	}
	return items, nil
}

func toAttachmentResponse(a *entity.ServiceRequestAttachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:                a.ID,
		ServiceRequestID:  a.ServiceRequestID,
		FileName:          a.FileName,
		MimeType:          a.MimeType,
		SizeBytes:         a.SizeBytes,
		Description:       a.Description,
		IsCustomerVisible: a.IsCustomerVisible,
		UploadedBy:        a.UploadedBy,
		CreatedAt:         a.CreatedAt,
	}
}

func toServiceUpdateResponse(u *entity.ServiceRequestUpdate) *dto.ServiceUpdateResponse {
	return &dto.ServiceUpdateResponse{
		ID:                u.ID,
		ServiceRequestID:  u.ServiceRequestID,
		Note:              u.Note,
		IsCustomerVisible: u.IsCustomerVisible,
		CreatedBy:         u.CreatedBy,
		CreatedAt:         u.CreatedAt,
	}
}
