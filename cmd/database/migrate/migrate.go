package migration

import (
	"ExpenseSnap-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Receipt{}); err != nil {
		log.Fatalf("Error migrating receipt database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Expense{}); err != nil {
		log.Fatalf("Error migrating expense database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ExpenseItem{}); err != nil {
		log.Fatalf("Error migrating expense item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Category{}); err != nil {
		log.Fatalf("Error migrating category database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CategoryCorrection{}); err != nil {
		log.Fatalf("Error migrating category correction database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
