package handler

import (
	"institution_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// Catalog proxies for the dashboard's product/collection picker. No local
// caching; an unconfigured provider yields empty lists.
func GetShopifyProducts(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, provider.ListProducts())
}

func GetShopifyCollections(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, provider.ListCollections())
}
