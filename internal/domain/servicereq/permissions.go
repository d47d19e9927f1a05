// Package servicereq contiene las reglas de autorización a nivel de campo para
// la actualización de tickets de servicio. La tabla de capacidades rol→campos
// se consulta de forma uniforme desde el usecase, en lugar de re-derivar el
// permiso en cada handler.
package servicereq

import (
	"sort"

	"github.com/comprint/mualish-plus-api/internal/domain/entity"
)

// Nombres de campo editables de un ServiceRequest, tal como viajan en el request.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldCategory      = "category"
	FieldPriority      = "priority"
	FieldStatus        = "status"
	FieldCustomerID    = "customer_id"
	FieldTechnicianID  = "technician_id"
	FieldEstimatedCost = "estimated_cost"
	FieldFinalCost     = "final_cost"
	FieldInternalNotes = "internal_notes"
	FieldCompletedDate = "completed_date"
)

// technicianFields campos que un técnico puede modificar.
var technicianFields = map[string]struct{}{
	FieldStatus:        {},
	FieldInternalNotes: {},
	FieldFinalCost:     {},
	FieldCompletedDate: {},
}

// adminOnlyFields campos reservados al admin aunque el rol tenga edición general.
// La asignación de técnico solo la cambia un admin.
var adminOnlyFields = map[string]struct{}{
	FieldTechnicianID: {},
}

// ForbiddenFields calcula la diferencia entre los campos solicitados y los
// permitidos para el rol. Si el resultado no es vacío, el update completo se
// rechaza (sin aplicación parcial) nombrando los campos ofensores.
// El slice retornado viene ordenado para mensajes de error estables.
func ForbiddenFields(role string, requested []string) []string {
	var forbidden []string
	for _, f := range requested {
		if !canEdit(role, f) {
			forbidden = append(forbidden, f)
		}
	}
	sort.Strings(forbidden)
	return forbidden
}

// canEdit indica si el rol puede modificar un campo individual.
func canEdit(role, field string) bool {
	switch role {
	case entity.RoleAdmin:
		return true
	case entity.RoleSales:
		_, adminOnly := adminOnlyFields[field]
		return !adminOnly
	case entity.RoleTechnician:
		_, ok := technicianFields[field]
		return ok
	}
	return false
}
