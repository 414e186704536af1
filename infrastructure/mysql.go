package infrastructure

import (
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"resume-engine/domain"
)

// NewMySQLConnection opens the generation-history database. Callers are
// expected to have checked DB_DSN is set; the async subsystem is
// skipped entirely when it is not.
func NewMySQLConnection(log *logrus.Logger) *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set in environment")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Generation{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Info("connected to MySQL and migrated schema")
	return db
}
