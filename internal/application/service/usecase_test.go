package service

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
)

// ─────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────

type fakeServiceRepo struct {
	tickets        map[string]*entity.ServiceRequest
	attachments    map[string]*entity.ServiceRequestAttachment
	updates        map[string][]*entity.ServiceRequestUpdate
	failAttachment error
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{
		tickets:     make(map[string]*entity.ServiceRequest),
		attachments: make(map[string]*entity.ServiceRequestAttachment),
		updates:     make(map[string][]*entity.ServiceRequestUpdate),
	}
}

func (f *fakeServiceRepo) Create(sr *entity.ServiceRequest) error {
	f.tickets[sr.ID] = sr
	return nil
}

func (f *fakeServiceRepo) GetByID(id string) (*entity.ServiceRequest, error) {
	sr, ok := f.tickets[id]
	if !ok {
		return nil, nil
	}
	copia := *sr
	return &copia, nil
}

func (f *fakeServiceRepo) List(filter repository.ServiceRequestFilter) ([]*entity.ServiceRequest, error) {
	var out []*entity.ServiceRequest
	for _, sr := range f.tickets {
		if filter.Status != "" && sr.Status != filter.Status {
			continue
		}
		copia := *sr
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeServiceRepo) Update(sr *entity.ServiceRequest) error {
	if _, ok := f.tickets[sr.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *sr
	f.tickets[sr.ID] = &copia
	return nil
}

func (f *fakeServiceRepo) Delete(id string) error {
	delete(f.tickets, id)
	return nil
}

func (f *fakeServiceRepo) CountByDay(day time.Time) (int, error) {
	return len(f.tickets), nil
}

func (f *fakeServiceRepo) CreateAttachment(a *entity.ServiceRequestAttachment) error {
	if f.failAttachment != nil {
		return f.failAttachment
	}
	f.attachments[a.ID] = a
	return nil
}

func (f *fakeServiceRepo) GetAttachment(id string) (*entity.ServiceRequestAttachment, error) {
	a, ok := f.attachments[id]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (f *fakeServiceRepo) ListAttachments(serviceRequestID string) ([]*entity.ServiceRequestAttachment, error) {
	var out []*entity.ServiceRequestAttachment
	for _, a := range f.attachments {
		if a.ServiceRequestID == serviceRequestID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) DeleteAttachment(id string) error {
	delete(f.attachments, id)
	return nil
}

func (f *fakeServiceRepo) CreateUpdate(u *entity.ServiceRequestUpdate) error {
	f.updates[u.ServiceRequestID] = append(f.updates[u.ServiceRequestID], u)
	return nil
}

func (f *fakeServiceRepo) ListUpdates(serviceRequestID string) ([]*entity.ServiceRequestUpdate, error) {
	return f.updates[serviceRequestID], nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.customers[id], nil
}
func (f *fakeCustomerRepo) List(query string) ([]*entity.Customer, error) { return nil, nil }
func (f *fakeCustomerRepo) Update(c *entity.Customer) error               { return nil }
func (f *fakeCustomerRepo) Delete(id string) error                        { return nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) List() ([]*entity.User, error)                  { return nil, nil }
func (f *fakeUserRepo) Update(u *entity.User) error                    { return nil }
func (f *fakeUserRepo) Delete(id string) error                         { return nil }

type fakeStorage struct {
	saved   map[string][]byte
	deleted []string
	failSav error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string][]byte)}
}

func (f *fakeStorage) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	if f.failSav != nil {
		return "", f.failSav
	}
	path := "service-requests/" + fileName
	f.saved[path] = data
	return path, nil
}

func (f *fakeStorage) Delete(ctx context.Context, storagePath string) error {
	delete(f.saved, storagePath)
	f.deleted = append(f.deleted, storagePath)
	return nil
}

func newTestUseCase() (*UseCase, *fakeServiceRepo, *fakeStorage) {
	repo := newFakeServiceRepo()
	storage := newFakeStorage()
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"cust-1": {ID: "cust-1", Name: "Cliente Uno"},
	}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"tech-1": {ID: "tech-1", Role: entity.RoleTechnician},
	}}
	uc := NewUseCase(repo, customers, users, storage, 10*1024*1024)
	return uc, repo, storage
}

func strPtr(s string) *string { return &s }

// ─────────────────────────────────────────────
// Creación
// ─────────────────────────────────────────────

func TestCreate_GeneraNumeroDeTicketYEstadoPendiente(t *testing.T) {
	uc, _, _ := newTestUseCase()

	resp, err := uc.Create("user-1", dto.CreateServiceRequestRequest{
		CustomerID: "cust-1",
		Title:      "Pantalla rota",
	})

	require.NoError(t, err)
	esperado := "SR-" + time.Now().Format("20060102") + "-0001"
	assert.Equal(t, esperado, resp.RequestNumber)
	assert.Equal(t, entity.ServiceStatusPending, resp.Status)
	assert.Equal(t, entity.ServicePriorityMedium, resp.Priority)
	assert.Equal(t, "user-1", resp.CreatedBy)
}

func TestCreate_ClienteInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Create("user-1", dto.CreateServiceRequestRequest{
		CustomerID: "no-existe",
		Title:      "Pantalla rota",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────
// Autorización a nivel de campo
// ─────────────────────────────────────────────

func seedTicket(repo *fakeServiceRepo) *entity.ServiceRequest {
	sr := &entity.ServiceRequest{
		ID:            "sr-1",
		RequestNumber: "SR-20260101-0001",
		CustomerID:    "cust-1",
		Title:         "Pantalla rota",
		Priority:      entity.ServicePriorityMedium,
		Status:        entity.ServiceStatusPending,
	}
	repo.tickets[sr.ID] = sr
	return sr
}

func TestUpdate_AdminPuedeAsignarTecnico(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedTicket(repo)

	resp, err := uc.Update(entity.RoleAdmin, "sr-1", dto.UpdateServiceRequestRequest{
		TechnicianID: strPtr("tech-1"),
	})

	require.NoError(t, err)
	assert.Equal(t, "tech-1", resp.TechnicianID)
	// Asignar técnico sobre un ticket pendiente lo pasa a assigned.
	assert.Equal(t, entity.ServiceStatusAssigned, resp.Status)
}

func TestUpdate_VendedorNoPuedeAsignarTecnico(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedTicket(repo)

	_, err := uc.Update(entity.RoleSales, "sr-1", dto.UpdateServiceRequestRequest{
		Title:        strPtr("Pantalla rota (urge)"),
		TechnicianID: strPtr("tech-1"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	var permErr *FieldPermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, []string{"technician_id"}, permErr.Fields)

	// Sin aplicación parcial: el título tampoco cambió.
	sr, _ := repo.GetByID("sr-1")
	assert.Equal(t, "Pantalla rota", sr.Title)
}

func TestUpdate_TecnicoActualizaSusCampos(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedTicket(repo)
	costo := decimal.RequireFromString("120.50")

	resp, err := uc.Update(entity.RoleTechnician, "sr-1", dto.UpdateServiceRequestRequest{
		Status:        strPtr(entity.ServiceStatusInProgress),
		InternalNotes: strPtr("Se pidió repuesto"),
		FinalCost:     &costo,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ServiceStatusInProgress, resp.Status)
	assert.Equal(t, "Se pidió repuesto", resp.InternalNotes)
	require.NotNil(t, resp.FinalCost)
	assert.True(t, resp.FinalCost.Equal(costo))
}

func TestUpdate_TecnicoBloqueadoFueraDeSusCampos(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedTicket(repo)
	costo := decimal.RequireFromString("80")

	_, err := uc.Update(entity.RoleTechnician, "sr-1", dto.UpdateServiceRequestRequest{
		Status:        strPtr(entity.ServiceStatusInProgress),
		EstimatedCost: &costo,
	})

	var permErr *FieldPermissionError
	require.ErrorAs(t, err, &permErr)
	// Solo se nombran los campos fuera del alcance, no los permitidos.
	assert.Equal(t, []string{"estimated_cost"}, permErr.Fields)
}

func TestUpdate_CompletarSinFechaEstampaLaActual(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedTicket(repo)

	resp, err := uc.Update(entity.RoleTechnician, "sr-1", dto.UpdateServiceRequestRequest{
		Status: strPtr(entity.ServiceStatusCompleted),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.CompletedDate)
	assert.WithinDuration(t, time.Now(), *resp.CompletedDate, time.Minute)
}

func TestUpdate_SinCamposEsInvalido(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedTicket(repo)

	_, err := uc.Update(entity.RoleAdmin, "sr-1", dto.UpdateServiceRequestRequest{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────
// Adjuntos
// ─────────────────────────────────────────────

func TestUploadAttachment_GuardaBlobYMetadatos(t *testing.T) {
	uc, repo, storage := newTestUseCase()
	seedTicket(repo)

	resp, err := uc.UploadAttachment(context.Background(), "sr-1", "user-1", UploadAttachmentInput{
		FileName: "foto.jpg",
		MimeType: "image/jpeg",
		Data:     []byte("bytes-de-la-foto"),
	})

	require.NoError(t, err)
	assert.Equal(t, "foto.jpg", resp.FileName)
	assert.Equal(t, int64(len("bytes-de-la-foto")), resp.SizeBytes)
	assert.Len(t, storage.saved, 1)
	assert.Len(t, repo.attachments, 1)
}

func TestUploadAttachment_AceptaDocumentosDeOffice(t *testing.T) {
	uc, repo, storage := newTestUseCase()
	seedTicket(repo)

	casos := []struct {
		fileName string
		mimeType string
	}{
		{"cotizacion.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"repuestos.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"orden.doc", "application/msword"},
		{"listado.xls", "application/vnd.ms-excel"},
	}
	for _, c := range casos {
		_, err := uc.UploadAttachment(context.Background(), "sr-1", "user-1", UploadAttachmentInput{
			FileName: c.fileName,
			MimeType: c.mimeType,
			Data:     []byte("contenido"),
		})
		assert.NoError(t, err, c.fileName)
	}
	assert.Len(t, storage.saved, len(casos))
	assert.Len(t, repo.attachments, len(casos))
}

func TestUploadAttachment_RechazaMimeNoPermitido(t *testing.T) {
	uc, repo, storage := newTestUseCase()
	seedTicket(repo)

	_, err := uc.UploadAttachment(context.Background(), "sr-1", "user-1", UploadAttachmentInput{
		FileName: "virus.exe",
		MimeType: "application/x-msdownload",
		Data:     []byte{0x4d, 0x5a},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, storage.saved)
}

func TestUploadAttachment_RechazaArchivoDemasiadoGrande(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedTicket(repo)
	uc.maxFileBytes = 8

	_, err := uc.UploadAttachment(context.Background(), "sr-1", "user-1", UploadAttachmentInput{
		FileName: "grande.pdf",
		MimeType: "application/pdf",
		Data:     []byte("123456789"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUploadAttachment_CompensaElBlobSiElRegistroFalla(t *testing.T) {
	uc, repo, storage := newTestUseCase()
	seedTicket(repo)
	repo.failAttachment = errors.New("insert rechazado")

	_, err := uc.UploadAttachment(context.Background(), "sr-1", "user-1", UploadAttachmentInput{
		FileName: "foto.png",
		MimeType: "image/png",
		Data:     []byte("png"),
	})

	require.Error(t, err)
	// El blob guardado se eliminó para no dejar huérfanos.
	assert.Empty(t, storage.saved)
	assert.Len(t, storage.deleted, 1)
}

// ─────────────────────────────────────────────
// Notas de avance
// ─────────────────────────────────────────────

func TestCreateUpdate_AgregaNota(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedTicket(repo)

	resp, err := uc.CreateUpdate("sr-1", "user-1", dto.CreateServiceUpdateRequest{
		Note:              "Equipo recibido en mostrador",
		IsCustomerVisible: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Equipo recibido en mostrador", resp.Note)
	assert.True(t, resp.IsCustomerVisible)

	notas, err := uc.ListUpdates("sr-1")
	require.NoError(t, err)
	assert.Len(t, notas, 1)
}

func TestCreateUpdate_NotaVaciaEsInvalida(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedTicket(repo)

	_, err := uc.CreateUpdate("sr-1", "user-1", dto.CreateServiceUpdateRequest{Note: ""})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
