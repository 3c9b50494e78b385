package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect initializes the database connection. When postgresDSN is non-empty
// it connects to PostgreSQL with a bounded connection pool; otherwise it opens
// (or creates) a local SQLite file, which keeps development and tests
// self-contained. The pooled handle is shared by every component for the
// lifetime of the process.
func Connect(postgresDSN, sqlitePath string) error {
	var err error
	if postgresDSN != "" {
		DB, err = gorm.Open(postgres.Open(postgresDSN), &gorm.Config{})
		if err != nil {
			return err
		}
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		return nil
	}

	DB, err = gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
	return err
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
