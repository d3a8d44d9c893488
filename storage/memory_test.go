package storage

import (
	"testing"

	"institution_manager/model"
)

func TestMemoryInstitutionCRUD(t *testing.T) {
	store := NewMemory()

	inst := &model.Institution{
		Name:     "State University",
		Email:    "admin@state.edu",
		Code:     "INST-2025-001",
		IsActive: true,
	}
	if err := store.CreateInstitution(inst); err != nil {
		t.Fatalf("CreateInstitution returned error: %v", err)
	}
	if inst.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	got, err := store.GetInstitution(inst.ID)
	if err != nil {
		t.Fatalf("GetInstitution returned error: %v", err)
	}
	if got.Name != "State University" {
		t.Fatalf("expected name %q got %q", "State University", got.Name)
	}

	byCode, err := store.GetInstitutionByCode("INST-2025-001")
	if err != nil {
		t.Fatalf("GetInstitutionByCode returned error: %v", err)
	}
	if byCode.ID != inst.ID {
		t.Fatalf("expected id %d got %d", inst.ID, byCode.ID)
	}

	newName := "Tech University"
	updated, err := store.UpdateInstitution(inst.ID, model.InstitutionUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateInstitution returned error: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("expected name %q got %q", newName, updated.Name)
	}
	if updated.Email != "admin@state.edu" {
		t.Fatalf("partial update must not touch email, got %q", updated.Email)
	}

	if err := store.DeleteInstitution(inst.ID); err != nil {
		t.Fatalf("DeleteInstitution returned error: %v", err)
	}
	if _, err := store.GetInstitution(inst.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteInstitution(inst.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestMemoryDuplicateCode(t *testing.T) {
	store := NewMemory()

	first := &model.Institution{Name: "A", Email: "a@a.edu", Code: "INST-2025-007"}
	if err := store.CreateInstitution(first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	second := &model.Institution{Name: "B", Email: "b@b.edu", Code: "INST-2025-007"}
	if err := store.CreateInstitution(second); err != ErrDuplicateCode {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}

	// The same constraint applies to updates.
	third := &model.Institution{Name: "C", Email: "c@c.edu", Code: "INST-2025-008"}
	if err := store.CreateInstitution(third); err != nil {
		t.Fatalf("create third: %v", err)
	}
	dup := "INST-2025-007"
	if _, err := store.UpdateInstitution(third.ID, model.InstitutionUpdate{Code: &dup}); err != ErrDuplicateCode {
		t.Fatalf("expected ErrDuplicateCode on update, got %v", err)
	}
}

func TestMemoryDashboardStats(t *testing.T) {
	store := NewMemory()

	active := &model.Institution{Name: "A", Email: "a@a.edu", Code: "INST-2025-100", IsActive: true}
	inactive := &model.Institution{Name: "B", Email: "b@b.edu", Code: "INST-2025-101", IsActive: false}
	store.CreateInstitution(active)
	store.CreateInstitution(inactive)

	store.RecordDiscountUsage(&model.DiscountUsage{InstitutionId: active.ID, OrderId: "1001", DiscountAmount: 1000})
	store.RecordDiscountUsage(&model.DiscountUsage{InstitutionId: active.ID, OrderId: "1002", DiscountAmount: 550})

	stats, err := store.DashboardStats()
	if err != nil {
		t.Fatalf("DashboardStats returned error: %v", err)
	}
	if stats.ActiveInstitutions != 1 {
		t.Fatalf("expected 1 active institution, got %d", stats.ActiveInstitutions)
	}
	if stats.TotalDiscountCodes != 2 {
		t.Fatalf("expected 2 discount codes, got %d", stats.TotalDiscountCodes)
	}
	if stats.TotalFreeShipments != 2 {
		t.Fatalf("expected 2 shipments, got %d", stats.TotalFreeShipments)
	}
	// 1550 cents round to 16 whole units.
	if stats.TotalSavings != 16 {
		t.Fatalf("expected savings 16, got %d", stats.TotalSavings)
	}
}

func TestMemoryUsageIsAppendOnlyPerInstitution(t *testing.T) {
	store := NewMemory()

	a := &model.Institution{Name: "A", Email: "a@a.edu", Code: "INST-2025-200"}
	b := &model.Institution{Name: "B", Email: "b@b.edu", Code: "INST-2025-201"}
	store.CreateInstitution(a)
	store.CreateInstitution(b)

	store.RecordDiscountUsage(&model.DiscountUsage{InstitutionId: a.ID, OrderId: "1", DiscountAmount: 100})
	store.RecordDiscountUsage(&model.DiscountUsage{InstitutionId: b.ID, OrderId: "2", DiscountAmount: 200})
	store.RecordDiscountUsage(&model.DiscountUsage{InstitutionId: a.ID, OrderId: "3", DiscountAmount: 300})

	rows, err := store.ListDiscountUsage(a.ID)
	if err != nil {
		t.Fatalf("ListDiscountUsage returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for institution A, got %d", len(rows))
	}
	for _, row := range rows {
		if row.InstitutionId != a.ID {
			t.Fatalf("row belongs to institution %d, expected %d", row.InstitutionId, a.ID)
		}
	}
}
