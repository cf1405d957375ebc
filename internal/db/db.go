package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wastewise/internal/model"
)

// Supported values for DB_DRIVER.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Open connects to the database selected by driver.
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case DriverMySQL:
		return NewMySQL(dsn)
	case DriverSQLite:
		return NewSQLite(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn)),
	}
}

// newGormLogger reports slow queries and failures. Lookups that find no row
// are normal control flow and stay quiet.
func newGormLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Tables lists every model managed by Migrate, parents first.
func Tables() []interface{} {
	return []interface{}{
		&model.User{},
		&model.WasteEntry{},
		&model.WasteCollection{},
		&model.FoodDonation{},
		&model.ActivityLog{},
	}
}

// Migrate creates or updates the schema. With reset set, existing tables are
// dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		slog.Warn("RESET_DB set, dropping all tables")
		tables := Tables()
		for i := len(tables) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(tables[i]); err != nil {
				slog.Warn("drop table failed", "error", err)
			}
		}
	}
	if err := db.AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
