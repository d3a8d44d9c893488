package handler

import (
	"errors"

	"institution_manager/constants"
	"institution_manager/model"
	"institution_manager/storage"
	"institution_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func GetInstitutions(c *fiber.Ctx) error {
	filter := new(model.InstitutionFilter)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	rows, total, err := store.ListInstitutions(filter)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	response := &model.ResponseCustom{
		Rows:       rows,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetInstitutionById(c *fiber.Ctx) error {
	id := uint(c.Locals("inputId").(int))

	inst, err := store.GetInstitution(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTITUTION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, inst)
}

func CreateInstitution(c *fiber.Ctx) error {
	input := c.Locals("createInput").(model.CreateInstitutionInput)

	result, err := institutions.Create(input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create institution", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, result)
}

func UpdateInstitution(c *fiber.Ctx) error {
	id := uint(c.Locals("inputId").(int))
	input := c.Locals("updateInput").(model.UpdateInstitutionInput)

	result, err := institutions.Update(id, input)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTITUTION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update institution", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func DeleteInstitution(c *fiber.Ctx) error {
	id := uint(c.Locals("inputId").(int))

	if err := institutions.Delete(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTITUTION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete institution", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Institution deleted successfully",
	})
}

func RegenerateCode(c *fiber.Ctx) error {
	id := uint(c.Locals("inputId").(int))

	result, err := institutions.RegenerateCode(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTITUTION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to regenerate institution code", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func GetInstitutionUsage(c *fiber.Ctx) error {
	id := uint(c.Locals("inputId").(int))

	if _, err := store.GetInstitution(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTITUTION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	rows, err := store.ListDiscountUsage(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

// CreateDiscountUsage is the manual counterpart of the order webhook,
// used by the dashboard to backfill a missed redemption.
func CreateDiscountUsage(c *fiber.Ctx) error {
	input := c.Locals("usageInput").(model.CreateDiscountUsageInput)

	if _, err := store.GetInstitution(input.InstitutionId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTITUTION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	usage := model.DiscountUsage{
		InstitutionId:  input.InstitutionId,
		OrderId:        input.OrderId,
		DiscountAmount: input.DiscountAmount,
	}
	if err := store.RecordDiscountUsage(&usage); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record discount usage", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, usage)
}

// GetInstitutionQR renders the institution code as a PNG for storefront
// material.
func GetInstitutionQR(c *fiber.Ctx) error {
	id := uint(c.Locals("inputId").(int))

	inst, err := store.GetInstitution(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTITUTION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	png, err := utils.GenerateQRCode(inst.Code, 512)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate QR code", err)
	}
	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
