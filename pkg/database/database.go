package database

import (
	"fmt"
	"strings"
	"time"

	"myShop/domain"
	"myShop/pkg/config"
	"myShop/pkg/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Dialector picks the gorm driver for the configured store. A postgres URL or
// DB_HOST selects PostgreSQL, anything else opens a SQLite file.
func Dialector(cfg config.DatabaseConfig) gorm.Dialector {
	switch {
	case strings.HasPrefix(cfg.URL, "postgres://"), strings.HasPrefix(cfg.URL, "postgresql://"):
		return postgres.Open(cfg.URL)
	case strings.HasPrefix(cfg.URL, "sqlite://"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(cfg.URL, "sqlite://")))
	case strings.HasPrefix(cfg.URL, "file:"):
		return sqlite.Open(cfg.URL)
	case cfg.URL != "":
		// bare keyword DSN, e.g. "host=... user=..."
		return postgres.Open(cfg.URL)
	case cfg.Host != "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
		)
		return postgres.Open(dsn)
	default:
		return sqlite.Open(sqliteDSN(cfg.SQLitePath))
	}
}

// sqliteDSN accepts both "sqlite:///abs/path" and "sqlite://./rel" spellings.
func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "//") {
		path = path[1:]
	}
	if strings.Contains(path, "?") {
		return path + "&" + sqlitePragmas
	}
	return path + "?" + sqlitePragmas
}

func InitDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector := Dialector(cfg)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if dialector.Name() == "sqlite" {
		// one writer at a time, transactions must not wait on a second connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database opened", "dialect", dialector.Name())

	return db, nil
}

// Migrate creates or updates the shop tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
	)
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
