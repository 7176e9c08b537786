package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rentcourt/ftpr/app/controllers"
	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/internal/pkg/middleware"
)

// RegisterHandlers mounts the v1 routes on router. Every route except ping
// needs a session; role gates are attached per route.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	authed := middleware.RequireAPISessionAuth
	router.Get("/me", authed, controllers.HandleGetMe)
	router.Get("/pricing", authed, controllers.HandleGetPricing)
	router.Get("/dashboard", authed, controllers.HandleGetDashboard)
	router.Get("/documents/blank/:template", authed, controllers.HandleBlankDocument)

	// Landlord records; admins see every landlord's
	owner := middleware.RequireAPIRole(models.ROLE_LANDLORD, models.ROLE_ADMIN)
	router.Get("/properties", owner, controllers.HandleListProperties)
	router.Post("/properties", owner, controllers.HandleCreateProperty)
	router.Get("/properties/:id", owner, controllers.HandleGetProperty)
	router.Patch("/properties/:id", owner, controllers.HandleUpdateProperty)
	router.Delete("/properties/:id", owner, controllers.HandleDeleteProperty)

	router.Get("/tenants", owner, controllers.HandleListTenants)
	router.Post("/tenants", owner, controllers.HandleCreateTenant)
	router.Get("/tenants/:id", owner, controllers.HandleGetTenant)
	router.Patch("/tenants/:id", owner, controllers.HandleUpdateTenant)
	router.Delete("/tenants/:id", owner, controllers.HandleDeleteTenant)

	router.Get("/cases", owner, controllers.HandleListCases)
	router.Post("/cases", owner, controllers.HandleCreateCase)
	router.Get("/cases/:id", owner, controllers.HandleGetCase)
	router.Patch("/cases/:id", owner, controllers.HandleUpdateCase)
	router.Delete("/cases/:id", owner, controllers.HandleDeleteCase)
	router.Get("/cases/:id/edit", owner, controllers.HandleEditCase)
	router.Get("/cases/:id/workflow", owner, controllers.HandleGetCaseWorkflow)
	router.Post("/cases/:id/transitions", owner, controllers.HandleTransitionCase)
	router.Get("/cases/:id/documents/:docType", owner, controllers.HandleCaseDocument)
	router.Get("/cases/:id/documents/:docType/link", owner, controllers.HandleCaseDocumentLink)

	admin := router.Group("/admin", middleware.RequireAPIRole(models.ROLE_ADMIN))
	admin.Get("/users", controllers.HandleAdminUsers)
	admin.Get("/users/:id", controllers.HandleAdminUser)
	admin.Patch("/users/:id", controllers.HandleAdminUserUpdate)
	admin.Post("/users/:id/delete", controllers.HandleAdminUserDelete)

	admin.Get("/contractors", controllers.HandleAdminContractors)
	admin.Post("/contractors", controllers.HandleAdminContractorCreate)
	admin.Get("/contractors/:id", controllers.HandleAdminContractor)
	admin.Patch("/contractors/:id", controllers.HandleAdminContractorUpdate)
	admin.Delete("/contractors/:id", controllers.HandleAdminContractorDelete)

	admin.Get("/law-firms", controllers.HandleAdminLawFirms)
	admin.Post("/law-firms", controllers.HandleAdminLawFirmCreate)
	admin.Get("/law-firms/:id", controllers.HandleAdminLawFirm)
	admin.Patch("/law-firms/:id", controllers.HandleAdminLawFirmUpdate)
	admin.Delete("/law-firms/:id", controllers.HandleAdminLawFirmDelete)

	admin.Get("/documents/downloads", controllers.HandleAdminDocumentDownloads)
	admin.Get("/queue", controllers.HandleAdminQueue)

	admin.Get("/jobs", controllers.HandleAdminJobs)
	admin.Post("/jobs/:id/assign", controllers.HandleAdminJobAssign)
	admin.Post("/jobs/:id/unassign", controllers.HandleAdminJobUnassign)

	contractor := router.Group("/contractor", middleware.RequireAPIRole(models.ROLE_CONTRACTOR))
	contractor.Get("/jobs", controllers.HandleContractorJobs)
	contractor.Get("/jobs/available", controllers.HandleAvailableJobs)
	contractor.Post("/jobs/:id/claim", controllers.HandleContractorJobClaim)
	contractor.Post("/jobs/:id/start", controllers.HandleContractorJobStart)
	contractor.Post("/jobs/:id/complete", controllers.HandleContractorJobComplete)
}
