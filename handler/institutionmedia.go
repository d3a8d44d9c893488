package handler

import (
	"errors"
	"fmt"
	"time"

	"institution_manager/constants"
	"institution_manager/helper"
	"institution_manager/model"
	"institution_manager/storage"
	"institution_manager/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// UploadInstitutionLogo stores a logo image on Cloudinary and saves the
// resulting URL on the institution.
func UploadInstitutionLogo(c *fiber.Ctx) error {
	id := uint(c.Locals("inputId").(int))

	if _, err := store.GetInstitution(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INSTITUTION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing logo file", err)
	}
	if file.Size > 5*1024*1024 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File exceeds 5MB", nil)
	}

	f, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot open file", err)
	}
	defer f.Close()

	cld := helper.InitCloudinary()
	publicID := fmt.Sprintf("institution_%d_logo_%d", id, time.Now().UnixNano())
	uploadResult, err := cld.Upload.Upload(c.Context(), f, uploader.UploadParams{
		Folder:       "institutions/logos",
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cloudinary upload failed", err)
	}

	inst, err := store.UpdateInstitution(id, model.InstitutionUpdate{
		LogoUrl: &uploadResult.SecureURL,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, inst)
}
