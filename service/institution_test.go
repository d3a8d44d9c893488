package service

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"institution_manager/model"
	"institution_manager/shopify"
	"institution_manager/storage"
)

var codePattern = regexp.MustCompile(fmt.Sprintf(`^INST-%d-\d{3}$`, time.Now().Year()))

// stubProvider records provider calls; behavior is controlled per test.
type stubProvider struct {
	configured bool
	discountId string
	valid      bool
	enabledOK  bool

	createdCodes        []string
	createdRestrictions []*shopify.DiscountRestrictions
	enabledCalls        []string
	enabledValues       []bool
	deleted             []string
}

func (p *stubProvider) Configured() bool { return p.configured }

func (p *stubProvider) CreateShippingDiscount(code string, restrictions *shopify.DiscountRestrictions) string {
	p.createdCodes = append(p.createdCodes, code)
	p.createdRestrictions = append(p.createdRestrictions, restrictions)
	return p.discountId
}

func (p *stubProvider) SetDiscountEnabled(discountId string, enabled bool) bool {
	p.enabledCalls = append(p.enabledCalls, discountId)
	p.enabledValues = append(p.enabledValues, enabled)
	return p.enabledOK
}

func (p *stubProvider) DeleteDiscount(discountId string) bool {
	p.deleted = append(p.deleted, discountId)
	return true
}

func (p *stubProvider) IsDiscountValid(code string) bool { return p.valid }

func (p *stubProvider) ListProducts() []model.ShopifyProduct { return nil }

func (p *stubProvider) ListCollections() []model.ShopifyCollection { return nil }

func newService(provider *stubProvider) (*InstitutionService, *storage.MemoryStorage) {
	store := storage.NewMemory()
	return New(store, provider, ""), store
}

func TestCreateWithoutProviderStillPersists(t *testing.T) {
	provider := &stubProvider{} // unconfigured: CreateShippingDiscount yields ""
	svc, store := newService(provider)

	result, err := svc.Create(model.CreateInstitutionInput{
		Name:  "State University",
		Email: "contact@state.edu",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if result.Institution.ShopifyDiscountId != nil {
		t.Fatalf("expected no discount id, got %v", *result.Institution.ShopifyDiscountId)
	}
	if result.Warning == "" {
		t.Fatalf("expected a provider warning on partial success")
	}
	if !codePattern.MatchString(result.Institution.Code) {
		t.Fatalf("code %q does not match %s", result.Institution.Code, codePattern)
	}
	if !result.Institution.IsActive {
		t.Fatalf("new institutions start active")
	}

	persisted, err := store.GetInstitution(result.Institution.ID)
	if err != nil {
		t.Fatalf("institution was not persisted: %v", err)
	}
	if persisted.Code != result.Institution.Code {
		t.Fatalf("persisted code %q differs from returned %q", persisted.Code, result.Institution.Code)
	}
}

func TestCreateStoresProviderDiscountId(t *testing.T) {
	provider := &stubProvider{configured: true, discountId: "disc-42"}
	svc, store := newService(provider)

	result, err := svc.Create(model.CreateInstitutionInput{
		Name:               "Tech Institute",
		Email:              "it@tech.edu",
		AllowedProducts:    []string{"111", "222"},
		RestrictToProducts: true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if result.Warning != "" {
		t.Fatalf("unexpected warning: %q", result.Warning)
	}
	if result.Institution.ShopifyDiscountId == nil || *result.Institution.ShopifyDiscountId != "disc-42" {
		t.Fatalf("expected discount id disc-42, got %v", result.Institution.ShopifyDiscountId)
	}

	if len(provider.createdCodes) != 1 || provider.createdCodes[0] != result.Institution.Code {
		t.Fatalf("provider was called with codes %v, expected the generated code", provider.createdCodes)
	}
	restrictions := provider.createdRestrictions[0]
	if !restrictions.RestrictToProducts || len(restrictions.AllowedProducts) != 2 {
		t.Fatalf("restrictions were not forwarded: %+v", restrictions)
	}

	persisted, _ := store.GetInstitution(result.Institution.ID)
	if persisted.ShopifyDiscountId == nil || *persisted.ShopifyDiscountId != "disc-42" {
		t.Fatalf("discount id not persisted")
	}
}

// conflictingStore forces duplicate-code errors for the first n inserts.
type conflictingStore struct {
	*storage.MemoryStorage
	conflicts int
}

func (s *conflictingStore) CreateInstitution(inst *model.Institution) error {
	if s.conflicts > 0 {
		s.conflicts--
		return storage.ErrDuplicateCode
	}
	return s.MemoryStorage.CreateInstitution(inst)
}

func TestCreateRetriesOnCodeConflict(t *testing.T) {
	store := &conflictingStore{MemoryStorage: storage.NewMemory(), conflicts: 3}
	svc := New(store, &stubProvider{}, "")

	result, err := svc.Create(model.CreateInstitutionInput{Name: "Retry U", Email: "r@u.edu"})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if result.Institution.ID == 0 {
		t.Fatalf("institution was not persisted after retries")
	}
}

func TestCreateGivesUpAfterMaxConflicts(t *testing.T) {
	store := &conflictingStore{MemoryStorage: storage.NewMemory(), conflicts: codeAttempts}
	svc := New(store, &stubProvider{}, "")

	if _, err := svc.Create(model.CreateInstitutionInput{Name: "Unlucky U", Email: "u@u.edu"}); err != storage.ErrDuplicateCode {
		t.Fatalf("expected ErrDuplicateCode after exhausting retries, got %v", err)
	}
}

func TestDeactivationDisablesRemoteDiscount(t *testing.T) {
	provider := &stubProvider{configured: true, discountId: "disc-9", enabledOK: true}
	svc, store := newService(provider)

	created, err := svc.Create(model.CreateInstitutionInput{Name: "A", Email: "a@a.edu"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	inactive := false
	result, err := svc.Update(created.Institution.ID, model.UpdateInstitutionInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if result.Institution.IsActive {
		t.Fatalf("local row should be inactive")
	}
	if len(provider.enabledCalls) != 1 || provider.enabledCalls[0] != "disc-9" || provider.enabledValues[0] != false {
		t.Fatalf("provider disable call missing or wrong: %v %v", provider.enabledCalls, provider.enabledValues)
	}

	persisted, _ := store.GetInstitution(created.Institution.ID)
	if persisted.IsActive {
		t.Fatalf("deactivation was not persisted")
	}
}

func TestUpdatePersistsEvenWhenProviderFails(t *testing.T) {
	provider := &stubProvider{configured: true, discountId: "disc-1", enabledOK: false}
	svc, store := newService(provider)

	created, _ := svc.Create(model.CreateInstitutionInput{Name: "B", Email: "b@b.edu"})

	inactive := false
	result, err := svc.Update(created.Institution.ID, model.UpdateInstitutionInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("update must not fail on provider error: %v", err)
	}
	if result.Warning == "" {
		t.Fatalf("expected warning when provider disable fails")
	}

	persisted, _ := store.GetInstitution(created.Institution.ID)
	if persisted.IsActive {
		t.Fatalf("local update must win despite provider failure")
	}
}

func TestRegenerateCodeReplacesCodeAndDiscount(t *testing.T) {
	provider := &stubProvider{configured: true, discountId: "disc-old", enabledOK: true}
	svc, store := newService(provider)

	created, err := svc.Create(model.CreateInstitutionInput{Name: "Keep Name U", Email: "keep@u.edu"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldCode := created.Institution.Code

	provider.discountId = "disc-new"
	result, err := svc.RegenerateCode(created.Institution.ID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}

	if !codePattern.MatchString(result.Institution.Code) {
		t.Fatalf("regenerated code %q does not match %s", result.Institution.Code, codePattern)
	}
	if result.Institution.Name != "Keep Name U" || result.Institution.Email != "keep@u.edu" {
		t.Fatalf("regeneration must not touch name/email: %+v", result.Institution)
	}
	if len(provider.deleted) != 1 || provider.deleted[0] != "disc-old" {
		t.Fatalf("old discount was not deleted: %v", provider.deleted)
	}
	if result.Institution.ShopifyDiscountId == nil || *result.Institution.ShopifyDiscountId != "disc-new" {
		t.Fatalf("new discount id not stored: %v", result.Institution.ShopifyDiscountId)
	}

	persisted, _ := store.GetInstitution(created.Institution.ID)
	if persisted.Code == oldCode {
		t.Fatalf("code was not replaced")
	}
}

func TestRegenerateWithoutProviderClearsDiscountId(t *testing.T) {
	provider := &stubProvider{configured: true, discountId: "disc-first"}
	svc, store := newService(provider)

	created, _ := svc.Create(model.CreateInstitutionInput{Name: "C", Email: "c@c.edu"})

	provider.discountId = "" // provider goes dark before regeneration
	result, err := svc.RegenerateCode(created.Institution.ID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if result.Warning == "" {
		t.Fatalf("expected warning when the new discount could not be created")
	}
	persisted, _ := store.GetInstitution(created.Institution.ID)
	if persisted.ShopifyDiscountId != nil {
		t.Fatalf("stale discount id must be cleared, got %v", *persisted.ShopifyDiscountId)
	}
}

func TestDeleteRemovesRowAndRemoteDiscount(t *testing.T) {
	provider := &stubProvider{configured: true, discountId: "disc-del"}
	svc, store := newService(provider)

	created, _ := svc.Create(model.CreateInstitutionInput{Name: "D", Email: "d@d.edu"})

	if err := svc.Delete(created.Institution.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(provider.deleted) != 1 || provider.deleted[0] != "disc-del" {
		t.Fatalf("remote discount was not deleted: %v", provider.deleted)
	}
	if _, err := store.GetInstitution(created.Institution.ID); err != storage.ErrNotFound {
		t.Fatalf("row should be gone, got %v", err)
	}
}

func TestDeleteUnknownInstitution(t *testing.T) {
	svc, _ := newService(&stubProvider{})
	if err := svc.Delete(9999); err != storage.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
