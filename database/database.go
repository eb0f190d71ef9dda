package database

import (
	"caselab/config"
	"caselab/models"
	"caselab/models/clinical"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance. Db stays nil when the store is
// unreachable at startup; the server keeps running and handlers answer 503.
var Database DbInstance

// ConnectDb establishes a connection to the configured backend
func ConnectDb() {
	dialector, err := openDialector()
	if err != nil {
		log.Fatalf("Database configuration error: %v", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Server will keep running without a database.")
		return
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get database instance: %v", err)
		return
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0) // No timeout

	runMigrations(db)

	Database = DbInstance{Db: db}

	SeedAdminUser(db)
	SeedDemoCase(db)
}

// openDialector picks the GORM driver from configuration. One service core,
// three interchangeable storage backends.
func openDialector() (gorm.Dialector, error) {
	cfg := config.AppConfig
	switch cfg.DBDriver {
	case "sqlite", "":
		return sqlite.Open(cfg.DBName), nil
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.WebsiteContent{},
		&clinical.Case{},
		&clinical.CaseStep{},
		&clinical.StepOption{},
		&clinical.Investigation{},
		&clinical.Xray{},
		&clinical.Progress{},
		&clinical.CaseCursor{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}
