package service

import (
	"log"

	"institution_manager/helper"
	"institution_manager/model"
	"institution_manager/shopify"
	"institution_manager/storage"
	"institution_manager/utils"

	"github.com/jinzhu/copier"
)

// codeAttempts bounds the retry loop against the code uniqueness constraint.
// With a 3-digit suffix collisions stay rare until the table grows well past
// a few hundred rows per year.
const codeAttempts = 5

// DiscountProvider is the outbound boundary to the commerce platform. All
// methods degrade to safe defaults instead of returning errors.
type DiscountProvider interface {
	Configured() bool
	CreateShippingDiscount(code string, restrictions *shopify.DiscountRestrictions) string
	SetDiscountEnabled(discountId string, enabled bool) bool
	DeleteDiscount(discountId string) bool
	IsDiscountValid(code string) bool
	ListProducts() []model.ShopifyProduct
	ListCollections() []model.ShopifyCollection
}

// Result carries the local outcome plus an optional provider warning, so
// callers can tell full success from "saved locally, Shopify out of sync"
// without inspecting logs.
type Result struct {
	Institution *model.Institution `json:"institution"`
	Warning     string             `json:"warning,omitempty"`
}

// InstitutionService keeps the local institution row and its remote shipping
// discount in sync. The local store is the source of truth: a failed provider
// call never rolls back or fails the local mutation.
type InstitutionService struct {
	store         storage.Storage
	provider      DiscountProvider
	storefrontURL string
}

func New(store storage.Storage, provider DiscountProvider, storefrontURL string) *InstitutionService {
	return &InstitutionService{
		store:         store,
		provider:      provider,
		storefrontURL: storefrontURL,
	}
}

func (s *InstitutionService) Create(input model.CreateInstitutionInput) (*Result, error) {
	var inst model.Institution
	copier.Copy(&inst, &input)
	inst.IsActive = true

	if inst.ShopifyPageUrl == nil {
		if url := helper.DefaultPageUrl(s.storefrontURL, inst.Name); url != "" {
			inst.ShopifyPageUrl = &url
		}
	}

	var err error
	for attempt := 0; attempt < codeAttempts; attempt++ {
		inst.Code = helper.GenerateInstitutionCode()
		err = s.store.CreateInstitution(&inst)
		if err != storage.ErrDuplicateCode {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Institution: &inst}
	discountId := s.provider.CreateShippingDiscount(inst.Code, s.restrictions(&inst))
	if discountId != "" {
		updated, err := s.store.UpdateInstitution(inst.ID, model.InstitutionUpdate{
			ShopifyDiscountId: utils.Ptr(utils.StringPtr(discountId)),
		})
		if err != nil {
			return nil, err
		}
		result.Institution = updated
	} else {
		result.Warning = "shopify discount code was not created; institution saved without a discount id"
	}

	utils.SendCodeIssuedEmail(inst.Email, utils.CodeIssuedData{
		InstitutionName: inst.Name,
		Code:            result.Institution.Code,
		PageUrl:         derefOrEmpty(result.Institution.ShopifyPageUrl),
	})
	return result, nil
}

func (s *InstitutionService) Update(id uint, input model.UpdateInstitutionInput) (*Result, error) {
	result := &Result{}

	// Re-read before flipping the remote discount so we act on the current
	// external id, not a stale one.
	if input.IsActive != nil {
		current, err := s.store.GetInstitution(id)
		if err != nil {
			return nil, err
		}
		if current.ShopifyDiscountId != nil {
			if ok := s.provider.SetDiscountEnabled(*current.ShopifyDiscountId, *input.IsActive); !ok {
				result.Warning = "shopify discount status was not updated"
			}
		}
	}

	updated, err := s.store.UpdateInstitution(id, model.InstitutionUpdate{
		Name:               input.Name,
		Email:              input.Email,
		IsActive:           input.IsActive,
		ShopifyPageUrl:     input.ShopifyPageUrl,
		AllowedCollections: input.AllowedCollections,
		AllowedProducts:    input.AllowedProducts,
		RestrictToProducts: input.RestrictToProducts,
	})
	if err != nil {
		return nil, err
	}
	result.Institution = updated
	return result, nil
}

func (s *InstitutionService) Delete(id uint) error {
	inst, err := s.store.GetInstitution(id)
	if err != nil {
		return err
	}
	if inst.ShopifyDiscountId != nil {
		if ok := s.provider.DeleteDiscount(*inst.ShopifyDiscountId); !ok {
			log.Printf("shopify discount %s for institution %d was not deleted", *inst.ShopifyDiscountId, id)
		}
	}
	return s.store.DeleteInstitution(id)
}

// RegenerateCode atomically (for the local row) replaces the institution code
// and its remote discount. Name, email and everything else stay untouched.
func (s *InstitutionService) RegenerateCode(id uint) (*Result, error) {
	inst, err := s.store.GetInstitution(id)
	if err != nil {
		return nil, err
	}
	if inst.ShopifyDiscountId != nil {
		if ok := s.provider.DeleteDiscount(*inst.ShopifyDiscountId); !ok {
			log.Printf("old shopify discount %s for institution %d was not deleted", *inst.ShopifyDiscountId, id)
		}
	}

	var newCode string
	var updated *model.Institution
	for attempt := 0; attempt < codeAttempts; attempt++ {
		newCode = helper.GenerateInstitutionCode()
		updated, err = s.store.UpdateInstitution(id, model.InstitutionUpdate{Code: &newCode})
		if err != storage.ErrDuplicateCode {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Institution: updated}
	discountId := s.provider.CreateShippingDiscount(newCode, s.restrictions(updated))
	var idValue *string
	if discountId != "" {
		idValue = &discountId
	} else {
		result.Warning = "shopify discount code was not recreated for the new code"
	}
	updated, err = s.store.UpdateInstitution(id, model.InstitutionUpdate{
		ShopifyDiscountId: &idValue,
	})
	if err != nil {
		return nil, err
	}
	result.Institution = updated
	return result, nil
}

func (s *InstitutionService) restrictions(inst *model.Institution) *shopify.DiscountRestrictions {
	return &shopify.DiscountRestrictions{
		AllowedCollections: inst.AllowedCollections,
		AllowedProducts:    inst.AllowedProducts,
		RestrictToProducts: inst.RestrictToProducts,
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
