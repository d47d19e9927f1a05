package servicereq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/servicereq"
)

// TestForbiddenFields_AdminPuedeTodo el admin no tiene campos prohibidos.
func TestForbiddenFields_AdminPuedeTodo(t *testing.T) {
	requested := []string{
		servicereq.FieldStatus, servicereq.FieldTechnicianID,
		servicereq.FieldEstimatedCost, servicereq.FieldInternalNotes,
	}
	assert.Empty(t, servicereq.ForbiddenFields(entity.RoleAdmin, requested))
}

// TestForbiddenFields_SalesNoAsignaTecnico sales edita todo menos los campos solo-admin.
func TestForbiddenFields_SalesNoAsignaTecnico(t *testing.T) {
	requested := []string{servicereq.FieldStatus, servicereq.FieldTechnicianID, servicereq.FieldTitle}
	got := servicereq.ForbiddenFields(entity.RoleSales, requested)
	assert.Equal(t, []string{servicereq.FieldTechnicianID}, got,
		"la asignación de técnico es solo-admin")
}

// TestForbiddenFields_TechnicianSoloSusCampos un técnico con {status} pasa.
func TestForbiddenFields_TechnicianSoloSusCampos(t *testing.T) {
	got := servicereq.ForbiddenFields(entity.RoleTechnician, []string{servicereq.FieldStatus})
	assert.Empty(t, got, "technician puede cambiar status")

	got = servicereq.ForbiddenFields(entity.RoleTechnician, []string{
		servicereq.FieldStatus, servicereq.FieldInternalNotes,
		servicereq.FieldFinalCost, servicereq.FieldCompletedDate,
	})
	assert.Empty(t, got, "technician puede cambiar sus cuatro campos")
}

// TestForbiddenFields_TechnicianRechazoTotal un técnico enviando
// {status, estimated_cost} es rechazado por completo: el campo ofensor aparece
// y el usecase no aplica ninguno de los dos.
func TestForbiddenFields_TechnicianRechazoTotal(t *testing.T) {
	got := servicereq.ForbiddenFields(entity.RoleTechnician, []string{
		servicereq.FieldStatus, servicereq.FieldEstimatedCost,
	})
	assert.Equal(t, []string{servicereq.FieldEstimatedCost}, got)
}

// TestForbiddenFields_RolDesconocido un rol fuera del enum no edita nada.
func TestForbiddenFields_RolDesconocido(t *testing.T) {
	got := servicereq.ForbiddenFields("intern", []string{servicereq.FieldStatus})
	assert.Equal(t, []string{servicereq.FieldStatus}, got)
}

// TestForbiddenFields_OrdenEstable los campos prohibidos vienen ordenados
// para producir mensajes de error deterministas.
func TestForbiddenFields_OrdenEstable(t *testing.T) {
	got := servicereq.ForbiddenFields(entity.RoleTechnician, []string{
		servicereq.FieldTitle, servicereq.FieldCategory, servicereq.FieldCustomerID,
	})
	assert.Equal(t, []string{
		servicereq.FieldCategory, servicereq.FieldCustomerID, servicereq.FieldTitle,
	}, got)
}
