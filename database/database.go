package database

import (
	"database/sql"
	"fmt"
	"goodreads/config"
	"goodreads/logger"
	"goodreads/models"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqliteDriver is go-sqlite3 with LOWER() replaced by a Unicode-aware
// version; the builtin one folds ASCII only.
const sqliteDriver = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, runs migrations and stores the
// connection globally. Failures are fatal.
func ConnectDb() {
	cfg := config.AppConfig

	db, err := Open(cfg.DBDriver, DSN(cfg))
	if err != nil {
		logger.Log.Fatalf("Failed to connect to %s: %v", cfg.DBDriver, err)
	}

	if err := RunMigrations(db); err != nil {
		logger.Log.Fatalf("Migration failed: %v", err)
	}

	Database = DbInstance{Db: db}
}

// DSN builds the connection string for the configured driver. For sqlite
// DB_NAME is used as the file name.
func DSN(cfg *config.Config) string {
	switch cfg.DBDriver {
	case "sqlite":
		return fmt.Sprintf("file:%s?_foreign_keys=on", cfg.DBName)
	case "mysql":
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)
}

// Open connects to postgres, mysql or sqlite and sets up connection pooling.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.New(sqlite.Config{DriverName: sqliteDriver, DSN: dsn})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}

	if driver == "sqlite" {
		// in-memory databases live and die with a single connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// TableOptions returns the CREATE TABLE options for a dialect. MySQL gets a
// binary collation so usernames compare and index case-sensitively.
func TableOptions(dialect string) string {
	if dialect == "mysql" {
		return "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"
	}
	return ""
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	logger.Log.Info("Running Migrations...")

	if opts := TableOptions(db.Dialector.Name()); opts != "" {
		db = db.Set("gorm:table_options", opts)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Review{},
	)
	if err != nil {
		return err
	}

	logger.Log.Info("Migrations completed successfully.")
	return nil
}
