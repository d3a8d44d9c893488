package handler

import (
	"errors"
	"log"
	"math"
	"strconv"

	"institution_manager/constants"
	"institution_manager/model"
	"institution_manager/storage"
	"institution_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ShopifyOrderWebhook records one usage row per matched discount code in the
// incoming order. Unknown or inactive codes are skipped silently: Shopify
// expects a 200 acknowledgment regardless of match outcome, otherwise it
// retries the delivery.
func ShopifyOrderWebhook(c *fiber.Ctx) error {
	var order model.ShopifyOrderWebhook
	if err := c.BodyParser(&order); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	for _, entry := range order.DiscountCodes {
		inst, err := store.GetInstitutionByCode(entry.Code)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				log.Printf("webhook: lookup for code %s failed: %v", entry.Code, err)
			}
			continue
		}
		if !inst.IsActive {
			continue
		}

		usage := model.DiscountUsage{
			InstitutionId:  inst.ID,
			OrderId:        orderIdentifier(&order),
			DiscountAmount: amountToCents(entry.Amount.String()),
		}
		if err := store.RecordDiscountUsage(&usage); err != nil {
			log.Printf("webhook: failed to record usage for institution %d: %v", inst.ID, err)
			continue
		}
		log.Printf("recorded discount usage for institution %s, order %s", inst.Name, usage.OrderId)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Webhook processed successfully",
	})
}

func orderIdentifier(order *model.ShopifyOrderWebhook) string {
	if order.OrderNumber > 0 {
		return strconv.FormatInt(order.OrderNumber, 10)
	}
	if order.Id > 0 {
		return strconv.FormatInt(order.Id, 10)
	}
	return "UNKNOWN-" + uuid.New().String()[:8]
}

// amountToCents converts Shopify's decimal string amount ("12.34") to
// integer minor units. Unparseable amounts count as zero.
func amountToCents(amount string) int64 {
	if amount == "" {
		return 0
	}
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(value * 100))
}
