package handler

import (
	"errors"
	"strings"

	"institution_manager/constants"
	"institution_manager/storage"
	"institution_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// ValidateCode is the admin-facing validator: local lookup, active check,
// then an authoritative round-trip to Shopify. Checks short-circuit in that
// order.
func ValidateCode(c *fiber.Ctx) error {
	code := c.Params("code")

	inst, err := store.GetInstitutionByCode(code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CODE_INVALID, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !inst.IsActive {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.CODE_INACTIVE, nil)
	}

	if !provider.IsDiscountValid(code) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.CODE_NOT_IN_SHOPIFY, nil)
	}

	// Only public identity fields leave this endpoint.
	return c.JSON(fiber.Map{
		"valid": true,
		"institution": fiber.Map{
			"id":   inst.ID,
			"name": inst.Name,
			"code": inst.Code,
		},
	})
}

// PublicValidateInstitution is the storefront validator: case-insensitive,
// no remote round-trip, open to any origin so it can be embedded in the shop.
func PublicValidateInstitution(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))

	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Methods", "GET")
	c.Set("Access-Control-Allow-Headers", "Content-Type")

	inst, err := store.GetInstitutionByCode(code)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"valid":   false,
			"message": "Server error",
		})
	}
	if inst == nil || !inst.IsActive {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"valid":   false,
			"message": "Invalid or inactive code",
		})
	}

	return c.JSON(fiber.Map{
		"valid": true,
		"institution": fiber.Map{
			"name": inst.Name,
			"code": inst.Code,
		},
		"discount": fiber.Map{
			"type":        "free_shipping",
			"description": "Free shipping for " + inst.Name,
		},
	})
}
