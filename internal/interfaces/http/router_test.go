package http_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	apphttp "github.com/comprint/mualish-plus-api/internal/interfaces/http"
)

// registeredRoutes devuelve el set método+ruta registrado por el router.
// Las dependencias van en cero: los handlers no se invocan, solo se registran.
func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})

	routes := make(map[string]bool)
	for _, r := range app.GetRoutes(true) {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestRouter_SuperficieHTTP(t *testing.T) {
	routes := registeredRoutes(t)

	esperadas := []string{
		"POST /api/auth/login",
		"POST /api/users/",
		"PATCH /api/users/:id",
		"POST /api/users/:id/toggle-status",
		"PATCH /api/inventory/:id/adjust-stock",
		"POST /api/sales/",
		"GET /api/sales/:id/receipt",
		"GET /api/commissions/reports",
		"POST /api/commissions/repair",
		"PATCH /api/service-requests/:id",
		"POST /api/service-requests/:id/attachments",
		"DELETE /api/service-requests/:id/attachments/:attachmentId",
		"POST /api/service-requests/:id/updates",
	}
	for _, ruta := range esperadas {
		assert.True(t, routes[ruta], "falta la ruta %s", ruta)
	}
}

func TestRouter_VerbosDeUsuariosYReportes(t *testing.T) {
	routes := registeredRoutes(t)

	// Actualización parcial de usuarios por PATCH, activación por POST,
	// reporte de comisiones en plural.
	assert.False(t, routes["PUT /api/users/:id"], "la actualización de usuarios es PATCH, no PUT")
	assert.False(t, routes["PATCH /api/users/:id/toggle-status"], "toggle-status es POST")
	assert.False(t, routes["GET /api/commissions/report"], "el reporte vive en /reports")
}
