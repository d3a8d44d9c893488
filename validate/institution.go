package validate

import (
	"institution_manager/constants"
	"institution_manager/model"
	"institution_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateInstitution() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateInstitutionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return validationFailed(c, err)
		}

		c.Locals("createInput", input)
		return c.Next()
	}
}

func UpdateInstitution() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateInstitutionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return validationFailed(c, err)
		}

		c.Locals("updateInput", input)
		return c.Next()
	}
}

func CreateDiscountUsage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateDiscountUsageInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return validationFailed(c, err)
		}

		c.Locals("usageInput", input)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.LoginInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, constants.MISSING_LOGIN_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return validationFailed(c, err)
		}

		c.Locals("loginInput", input)
		return c.Next()
	}
}
