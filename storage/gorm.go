package storage

import (
	"errors"
	"sort"
	"time"

	"institution_manager/model"
	"institution_manager/utils"

	"gorm.io/gorm"
)

// GormStorage backs the Storage contract with Postgres through GORM.
type GormStorage struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (s *GormStorage) CreateInstitution(inst *model.Institution) error {
	if err := s.db.Create(inst).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCode
		}
		return err
	}
	return nil
}

func (s *GormStorage) GetInstitution(id uint) (*model.Institution, error) {
	var inst model.Institution
	if err := s.db.First(&inst, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inst, nil
}

func (s *GormStorage) GetInstitutionByCode(code string) (*model.Institution, error) {
	var inst model.Institution
	if err := s.db.Where("code = ?", code).First(&inst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inst, nil
}

func (s *GormStorage) ListInstitutions(filter *model.InstitutionFilter) (model.Institutions, int64, error) {
	db := s.db.Model(&model.Institution{})
	if filter != nil {
		if filter.SearchKey != "" {
			key := "%" + filter.SearchKey + "%"
			db = db.Where("name ILIKE ? OR email ILIKE ? OR code ILIKE ?", key, key, key)
		}
		if filter.IsActive != nil {
			db = db.Where("is_active = ?", *filter.IsActive)
		}
	}

	var total int64
	db.Count(&total)

	if filter != nil {
		db = utils.ApplyPagination(db, filter.Limit, filter.Page)
	}

	var institutions model.Institutions
	if err := db.Order("created_at DESC").Find(&institutions).Error; err != nil {
		return nil, 0, err
	}
	return institutions, total, nil
}

func (s *GormStorage) UpdateInstitution(id uint, updates model.InstitutionUpdate) (*model.Institution, error) {
	inst, err := s.GetInstitution(id)
	if err != nil {
		return nil, err
	}
	applyInstitutionUpdate(inst, updates)
	if err := s.db.Save(inst).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return inst, nil
}

func (s *GormStorage) DeleteInstitution(id uint) error {
	res := s.db.Delete(&model.Institution{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStorage) RecordDiscountUsage(usage *model.DiscountUsage) error {
	if usage.UsedAt.IsZero() {
		usage.UsedAt = time.Now()
	}
	return s.db.Create(usage).Error
}

func (s *GormStorage) ListDiscountUsage(institutionId uint) ([]model.DiscountUsage, error) {
	var rows []model.DiscountUsage
	err := s.db.Where("institution_id = ?", institutionId).
		Order("used_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStorage) DashboardStats() (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := s.db.Model(&model.Institution{}).Where("is_active = ?", true).
		Count(&stats.ActiveInstitutions).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Institution{}).Count(&stats.TotalDiscountCodes).Error; err != nil {
		return nil, err
	}

	var totalCents int64
	if err := s.db.Model(&model.DiscountUsage{}).Count(&stats.TotalFreeShipments).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.DiscountUsage{}).
		Select("COALESCE(SUM(discount_amount), 0)").Scan(&totalCents).Error; err != nil {
		return nil, err
	}
	stats.TotalSavings = centsToUnits(totalCents)
	return &stats, nil
}

func (s *GormStorage) RecentActivity(limit int) ([]model.ActivityEntry, error) {
	var institutions model.Institutions
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&institutions).Error; err != nil {
		return nil, err
	}
	var usage []model.DiscountUsage
	if err := s.db.Order("used_at DESC").Limit(limit).Find(&usage).Error; err != nil {
		return nil, err
	}

	entries := make([]model.ActivityEntry, 0, len(institutions)+len(usage))
	for _, inst := range institutions {
		entries = append(entries, model.ActivityEntry{
			Type:        "institution",
			Description: inst.Name,
			CreatedAt:   inst.CreatedAt,
			Status:      inst.IsActive,
		})
	}
	for _, u := range usage {
		entries = append(entries, model.ActivityEntry{
			Type:        "usage",
			Description: u.OrderId,
			CreatedAt:   u.UsedAt,
			Status:      true,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *GormStorage) GetAccountByUsername(username string) (*model.Account, error) {
	var account model.Account
	if err := s.db.Where(&model.Account{Username: username}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (s *GormStorage) GetAccount(id uint) (*model.Account, error) {
	var account model.Account
	if err := s.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (s *GormStorage) CreateAccount(account *model.Account) error {
	return s.db.Create(account).Error
}

// centsToUnits mirrors the dashboard contract: savings reported in whole
// currency units, rounded.
func centsToUnits(cents int64) int64 {
	return (cents + 50) / 100
}
