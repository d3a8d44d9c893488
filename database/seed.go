package database

import (
	"log"

	"institution_manager/config"
	"institution_manager/constants"
	"institution_manager/model"
	"institution_manager/storage"

	"golang.org/x/crypto/bcrypt"
)

// SeedData makes sure the dashboard admin account exists.
func SeedData(store storage.Storage) {
	username := config.Config("ADMIN_USERNAME")
	if username == "" {
		username = "Administration"
	}
	password := config.Config("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	}

	if _, err := store.GetAccountByUsername(username); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("failed to hash admin password:", err)
		return
	}
	account := model.Account{
		Username: username,
		Password: string(hash),
		Active:   true,
		Role:     constants.ROLE_ADMIN,
	}
	if err := store.CreateAccount(&account); err != nil {
		log.Println("failed to seed admin account:", err)
	}
}
