package storage

import (
	"errors"

	"institution_manager/model"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateCode = errors.New("institution code already exists")
)

// Storage is the single persistence contract. Two implementations exist, a
// GORM/Postgres one and an in-memory one, and the backend is picked once at
// process startup.
type Storage interface {
	CreateInstitution(inst *model.Institution) error
	GetInstitution(id uint) (*model.Institution, error)
	GetInstitutionByCode(code string) (*model.Institution, error)
	ListInstitutions(filter *model.InstitutionFilter) (model.Institutions, int64, error)
	UpdateInstitution(id uint, updates model.InstitutionUpdate) (*model.Institution, error)
	DeleteInstitution(id uint) error

	RecordDiscountUsage(usage *model.DiscountUsage) error
	ListDiscountUsage(institutionId uint) ([]model.DiscountUsage, error)

	DashboardStats() (*model.DashboardStats, error)
	RecentActivity(limit int) ([]model.ActivityEntry, error)

	GetAccountByUsername(username string) (*model.Account, error)
	GetAccount(id uint) (*model.Account, error)
	CreateAccount(account *model.Account) error
}

func applyInstitutionUpdate(inst *model.Institution, updates model.InstitutionUpdate) {
	if updates.Name != nil {
		inst.Name = *updates.Name
	}
	if updates.Email != nil {
		inst.Email = *updates.Email
	}
	if updates.IsActive != nil {
		inst.IsActive = *updates.IsActive
	}
	if updates.Code != nil {
		inst.Code = *updates.Code
	}
	if updates.ShopifyDiscountId != nil {
		inst.ShopifyDiscountId = *updates.ShopifyDiscountId
	}
	if updates.ShopifyPageUrl != nil {
		inst.ShopifyPageUrl = updates.ShopifyPageUrl
	}
	if updates.LogoUrl != nil {
		inst.LogoUrl = updates.LogoUrl
	}
	if updates.AllowedCollections != nil {
		inst.AllowedCollections = *updates.AllowedCollections
	}
	if updates.AllowedProducts != nil {
		inst.AllowedProducts = *updates.AllowedProducts
	}
	if updates.RestrictToProducts != nil {
		inst.RestrictToProducts = *updates.RestrictToProducts
	}
}
