package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vibhu2208/hrms-backend-sub007/internal/controllers"
)

func SetupReportRoutes(router fiber.Router, h *controllers.ReportController) {
	tenants := router.Group("/tenants")
	tenants.Get("/", h.ListTenants)
	tenants.Get("/:id/structure", h.TenantStructure)
	tenants.Get("/:id/quality", h.TenantQuality)
	tenants.Get("/:id/reconcile", h.TenantReconcile)
	tenants.Get("/:id/jobs", h.TenantJobs)
}
