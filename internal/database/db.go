package database

import (
	"log"

	"canteen-backend/internal/config"
	"canteen-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Recipe{},
		&models.CustomerOrder{},
		&models.OrderItem{},
		&models.Supplier{},
		&models.SupplierIngredient{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderLine{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("database connection established, migration complete")
}
