package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medrecords-backend/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectRetryDelay is how long ConnectDB waits before its single retry.
var ConnectRetryDelay = 5 * time.Second

// Dialector picks the gorm driver from the DATABASE_URL scheme:
// postgres:// and postgresql:// go to Postgres, sqlite:// and file: go to
// SQLite, mysql:// or a bare DSN go to MySQL.
func Dialector(dsn string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(dsn, "sqlite://"))), nil
	case strings.HasPrefix(dsn, "file:"):
		return sqlite.Open(sqliteDSN(dsn)), nil
	case strings.HasPrefix(dsn, "mysql://"):
		return mysql.Open(strings.TrimPrefix(dsn, "mysql://")), nil
	case dsn == "":
		return nil, fmt.Errorf("empty database url")
	default:
		return mysql.Open(dsn), nil
	}
}

// sqlite only enforces foreign keys when asked to.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// ConnectDB opens the connection pool shared by all requests. A failed first
// attempt is retried once after ConnectRetryDelay.
func ConnectDB(cfg *Config, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger: logger.New(gormWriter{log: log}, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	db, err := open(dialector, gormCfg)
	if err != nil {
		log.Warn().Err(err).Dur("retry_in", ConnectRetryDelay).Msg("database connection failed")
		time.Sleep(ConnectRetryDelay)
		db, err = open(dialector, gormCfg)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBMaxConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxConns)
	}
	if cfg.DBMinConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DBMinConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info().Msg("database connected")
	return db, nil
}

func open(dialector gorm.Dialector, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Dependent{},
		&models.Form{},
		&models.Test{},
		&models.DerivedHealthData{},
	)
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Str("component", "gorm").Msgf(format, args...)
}
