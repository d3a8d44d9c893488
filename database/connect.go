package database

import (
	"fmt"
	"log"
	"strconv"

	"institution_manager/config"
	"institution_manager/model"
	"institution_manager/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Store is the persistence backend picked once at startup: Postgres when
// DB_HOST is configured, in-memory otherwise.
var Store storage.Storage

func ConnectDB() {
	host := config.Config("DB_HOST")
	if host == "" {
		log.Println("DB_HOST not set, running with in-memory storage")
		Store = storage.NewMemory()
		SeedData(Store)
		return
	}

	port, err := strconv.ParseUint(config.Config("DB_PORT"), 10, 32)
	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
	DB.AutoMigrate(
		&model.Account{},
		&model.Institution{},
		&model.DiscountUsage{},
	)
	fmt.Println("Database Migrated")

	Store = storage.NewGorm(DB)
	SeedData(Store)
}
