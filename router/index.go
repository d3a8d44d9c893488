package router

import (
	"institution_manager/handler"
	"institution_manager/middleware"
	"institution_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())

	auth := api.Group("/auth")
	auth.Post("/login", validate.Login(), handler.Login)

	account := api.Group("/account")
	account.Get("/me", middleware.Protected(), handler.Me)

	dashboard := api.Group("/dashboard", middleware.Protected())
	dashboard.Get("/stats", handler.GetDashboardStats)
	dashboard.Get("/activity", handler.GetRecentActivity)

	institution := api.Group("/institutions", middleware.Protected())
	institution.Get("/", handler.GetInstitutions)
	institution.Post("/", validate.CreateInstitution(), handler.CreateInstitution)
	institution.Get("/:institutionId", validate.GetById("institutionId"), handler.GetInstitutionById)
	institution.Put("/:institutionId", validate.GetById("institutionId"), validate.UpdateInstitution(), handler.UpdateInstitution)
	institution.Delete("/:institutionId", validate.GetById("institutionId"), handler.DeleteInstitution)
	institution.Post("/:institutionId/regenerate-code", validate.GetById("institutionId"), handler.RegenerateCode)
	institution.Get("/:institutionId/usage", validate.GetById("institutionId"), handler.GetInstitutionUsage)
	institution.Get("/:institutionId/qrcode", validate.GetById("institutionId"), handler.GetInstitutionQR)
	institution.Post("/:institutionId/logo", validate.GetById("institutionId"), handler.UploadInstitutionLogo)

	api.Post("/discount-usage", middleware.Protected(), validate.CreateDiscountUsage(), handler.CreateDiscountUsage)

	api.Get("/validate-code/:code", handler.ValidateCode)
	api.Get("/public/validate-institution/:code", handler.PublicValidateInstitution)

	api.Post("/webhook/shopify/order", handler.ShopifyOrderWebhook)

	shopify := api.Group("/shopify", middleware.Protected())
	shopify.Get("/products", handler.GetShopifyProducts)
	shopify.Get("/collections", handler.GetShopifyCollections)
}
