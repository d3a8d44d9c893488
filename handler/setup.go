package handler

import (
	"institution_manager/config"
	"institution_manager/service"
	"institution_manager/storage"
)

var (
	store        storage.Storage
	provider     service.DiscountProvider
	institutions *service.InstitutionService
)

// Setup wires the handlers to the storage backend and provider client picked
// at startup. Tests call it with the in-memory store and a stub provider.
func Setup(s storage.Storage, p service.DiscountProvider) {
	store = s
	provider = p
	institutions = service.New(s, p, config.Config("STOREFRONT_URL"))
}
