package db

import (
	"errors"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Nikusik161/giftprizes-webapp/internal/config"
)

// SeedButtons are the front-end buttons whose flags exist from first boot.
var SeedButtons = []string{"search", "budget", "sell", "catalog"}

// Connect opens a GORM database connection using APP_DATABASE_URL (PostgreSQL URL).
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := strings.TrimSpace(cfg.DatabaseURL)
	if dsn == "" {
		return nil, errors.New("APP_DATABASE_URL is required (PostgreSQL URL)")
	}
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil, errors.New("APP_DATABASE_URL must be a postgres:// or postgresql:// URL")
	}

	// PrepareStmt: true prevents the GORM postgres migrator from forcing simple protocol
	// for "SELECT * FROM table LIMIT 1", which would otherwise trigger "insufficient arguments".
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{PrepareStmt: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	return gdb, nil
}

// Migrate creates the statistics tables and seeds the well-known button
// flags. Split out of Connect so tests can run it against other dialectors.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&User{}, &OnlineUser{}, &Purchase{},
		&PopularGift{}, &DailyStat{}, &ButtonSetting{},
	); err != nil {
		return err
	}
	return seedButtonSettings(gdb)
}

// seedButtonSettings makes sure every well-known button has a flag row,
// enabled by default. Existing rows are left as-is so operator toggles
// survive restarts.
func seedButtonSettings(gdb *gorm.DB) error {
	now := time.Now()
	for _, id := range SeedButtons {
		var count int64
		if err := gdb.Model(&ButtonSetting{}).Where("button_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		row := &ButtonSetting{ButtonID: id, Enabled: true, LastUpdated: now}
		if err := gdb.Create(row).Error; err != nil {
			return err
		}
	}
	return nil
}
