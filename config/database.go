package config

import (
	"fmt"

	"github.com/Govind-619/BuyMeAChai/models"
	"github.com/Govind-619/BuyMeAChai/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// contributionPairIndex enforces one contribution per (order, payment) pair
const contributionPairIndex = "idx_chai_messages_order_payment"

// OpenDB connects to the configured database
func OpenDB(config *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(config.DBPath)
	default:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSSLMode)
		dialector = postgres.Open(dsn)
	}

	logLevel := logger.Warn
	if config.IsProduction() {
		logLevel = logger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	utils.LogInfo("Connected to %s database", config.DBDriver)
	return db, nil
}

// Migrate creates or updates the contribution table. With dedupe enabled a
// unique index on (order_id, payment_id) is added.
func Migrate(db *gorm.DB, dedupe bool) error {
	if err := db.AutoMigrate(&models.Contribution{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if dedupe {
		err := db.Exec(fmt.Sprintf(
			"CREATE UNIQUE INDEX IF NOT EXISTS %s ON chai_messages (order_id, payment_id)",
			contributionPairIndex,
		)).Error
		if err != nil {
			return fmt.Errorf("failed to create contribution pair index: %w", err)
		}
		utils.LogInfo("Contribution dedupe index ensured")
	}
	return nil
}
