package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql" // mysql driver, selected via DB_DRIVER=mysql
	_ "modernc.org/sqlite"             // pure-Go sqlite driver, the local default

	"github.com/filmhub/swapper-api/internal/config"
)

// Open connects to the configured database and verifies the
// connection.  The sqlite driver keeps a single connection open
// because the database is a local file; MySQL gets a regular pool.
func Open(cfg config.Config) (*sql.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		auth := cfg.DBUser
		if cfg.DBPass != "" {
			auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
		}
		// DATETIME columns are scanned as strings, so parseTime stays off.
		dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&loc=UTC",
			auth, cfg.DBHost, cfg.DBPort, cfg.DBName)
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(30 * time.Minute)
		return ping(db)
	case "sqlite":
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		db, err := sql.Open("sqlite", cfg.DBPath)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1)
		return ping(db)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func ping(db *sql.DB) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the three application tables when they do not yet
// exist.  The username unique constraint lives in the schema so the
// database, not the pre-check in the repository, is the authority on
// duplicate registrations.  Timestamps are written from Go as
// "2006-01-02 15:04:05" strings, which both drivers store and order
// identically.
func Migrate(db *sql.DB, driver string) error {
	var stmts []string
	if driver == "mysql" {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
				username VARCHAR(191) NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				created_at DATETIME NOT NULL,
				PRIMARY KEY (id),
				UNIQUE KEY uq_users_username (username)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS swapper_images (
				id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
				storage_path VARCHAR(512) NOT NULL,
				created_at DATETIME NOT NULL,
				PRIMARY KEY (id)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS cinemas (
				id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
				name VARCHAR(255) NOT NULL,
				address VARCHAR(512) NOT NULL,
				price DOUBLE NOT NULL,
				tags TEXT NOT NULL,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL,
				PRIMARY KEY (id)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		}
	} else {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS swapper_images (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				storage_path TEXT NOT NULL,
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS cinemas (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				address TEXT NOT NULL,
				price REAL NOT NULL,
				tags TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
		}
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
