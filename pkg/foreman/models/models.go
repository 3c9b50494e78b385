package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: ChitGroup and Subscriber must come before the tables that reference them
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&ChitGroup{},
		&Subscriber{},
		&Enrollment{},
		&Installment{},
		&InstallmentPayment{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
