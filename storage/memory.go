package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"institution_manager/model"
)

// MemoryStorage satisfies the same contract as GormStorage without a
// database. Used when no DB is configured and by tests.
type MemoryStorage struct {
	mu sync.RWMutex

	institutions map[uint]*model.Institution
	usage        []model.DiscountUsage
	accounts     map[uint]*model.Account

	nextInstitutionId uint
	nextUsageId       uint
	nextAccountId     uint
}

func NewMemory() *MemoryStorage {
	return &MemoryStorage{
		institutions:      map[uint]*model.Institution{},
		accounts:          map[uint]*model.Account{},
		nextInstitutionId: 1,
		nextUsageId:       1,
		nextAccountId:     1,
	}
}

func (s *MemoryStorage) CreateInstitution(inst *model.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.institutions {
		if existing.Code == inst.Code {
			return ErrDuplicateCode
		}
	}
	inst.ID = s.nextInstitutionId
	s.nextInstitutionId++
	now := time.Now()
	inst.CreatedAt = now
	inst.UpdatedAt = now

	stored := *inst
	s.institutions[inst.ID] = &stored
	return nil
}

func (s *MemoryStorage) GetInstitution(id uint) (*model.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, ok := s.institutions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *inst
	return &copied, nil
}

func (s *MemoryStorage) GetInstitutionByCode(code string) (*model.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inst := range s.institutions {
		if inst.Code == code {
			copied := *inst
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) ListInstitutions(filter *model.InstitutionFilter) (model.Institutions, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result model.Institutions
	for _, inst := range s.institutions {
		if filter != nil {
			if filter.IsActive != nil && inst.IsActive != *filter.IsActive {
				continue
			}
			if filter.SearchKey != "" {
				key := strings.ToLower(filter.SearchKey)
				if !strings.Contains(strings.ToLower(inst.Name), key) &&
					!strings.Contains(strings.ToLower(inst.Email), key) &&
					!strings.Contains(strings.ToLower(inst.Code), key) {
					continue
				}
			}
		}
		result = append(result, *inst)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	total := int64(len(result))
	if filter != nil && filter.Limit != nil && *filter.Limit > 0 && filter.Page != nil && *filter.Page >= 1 {
		start := *filter.Limit * (*filter.Page - 1)
		if start >= len(result) {
			return model.Institutions{}, total, nil
		}
		end := start + *filter.Limit
		if end > len(result) {
			end = len(result)
		}
		result = result[start:end]
	}
	return result, total, nil
}

func (s *MemoryStorage) UpdateInstitution(id uint, updates model.InstitutionUpdate) (*model.Institution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.institutions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if updates.Code != nil {
		for otherId, other := range s.institutions {
			if otherId != id && other.Code == *updates.Code {
				return nil, ErrDuplicateCode
			}
		}
	}
	applyInstitutionUpdate(inst, updates)
	inst.UpdatedAt = time.Now()

	copied := *inst
	return &copied, nil
}

func (s *MemoryStorage) DeleteInstitution(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.institutions[id]; !ok {
		return ErrNotFound
	}
	delete(s.institutions, id)

	// Mirror the Postgres ON DELETE CASCADE on discount_usages.
	kept := s.usage[:0]
	for _, u := range s.usage {
		if u.InstitutionId != id {
			kept = append(kept, u)
		}
	}
	s.usage = kept
	return nil
}

func (s *MemoryStorage) RecordDiscountUsage(usage *model.DiscountUsage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	usage.ID = s.nextUsageId
	s.nextUsageId++
	if usage.UsedAt.IsZero() {
		usage.UsedAt = time.Now()
	}
	s.usage = append(s.usage, *usage)
	return nil
}

func (s *MemoryStorage) ListDiscountUsage(institutionId uint) ([]model.DiscountUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []model.DiscountUsage
	for _, u := range s.usage {
		if u.InstitutionId == institutionId {
			rows = append(rows, u)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].UsedAt.After(rows[j].UsedAt)
	})
	return rows, nil
}

func (s *MemoryStorage) DashboardStats() (*model.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.DashboardStats{
		TotalDiscountCodes: int64(len(s.institutions)),
		TotalFreeShipments: int64(len(s.usage)),
	}
	for _, inst := range s.institutions {
		if inst.IsActive {
			stats.ActiveInstitutions++
		}
	}
	var totalCents int64
	for _, u := range s.usage {
		totalCents += u.DiscountAmount
	}
	stats.TotalSavings = centsToUnits(totalCents)
	return stats, nil
}

func (s *MemoryStorage) RecentActivity(limit int) ([]model.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]model.ActivityEntry, 0, len(s.institutions)+len(s.usage))
	for _, inst := range s.institutions {
		entries = append(entries, model.ActivityEntry{
			Type:        "institution",
			Description: inst.Name,
			CreatedAt:   inst.CreatedAt,
			Status:      inst.IsActive,
		})
	}
	for _, u := range s.usage {
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

func (s *MemoryStorage) GetAccountByUsername(username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) GetAccount(id uint) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *MemoryStorage) CreateAccount(account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.ID = s.nextAccountId
	s.nextAccountId++
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := *account
	s.accounts[account.ID] = &stored
	return nil
}
