package config

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the postgres connection described by the config and sets up
// the connection pool. It exits the process on failure.
func InitDB(cfg DatabaseConfig, logLevel string) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger(logLevel),
	})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("database handle: %v", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}

func gormLogger(level string) logger.Interface {
	switch level {
	case "debug":
		return logger.Default.LogMode(logger.Info)
	case "error":
		return logger.Default.LogMode(logger.Error)
	case "silent":
		return logger.Default.LogMode(logger.Silent)
	default:
		return logger.Default.LogMode(logger.Warn)
	}
}
