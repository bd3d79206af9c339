package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"easyapply/config"
)

// Connect opens and pings a postgres connection.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the application history table if missing.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS job_applications (
			id SERIAL PRIMARY KEY,
			application_code VARCHAR(8) UNIQUE NOT NULL,
			job_url TEXT NOT NULL,
			mode VARCHAR(32) NOT NULL,
			status VARCHAR(32) NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			steps INTEGER NOT NULL DEFAULT 0,
			fingerprint TEXT NOT NULL DEFAULT '',
			applied_at TIMESTAMP NOT NULL DEFAULT NOW(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_job_applications_job_url ON job_applications (job_url);
	`)
	if err != nil {
		return fmt.Errorf("create job_applications table: %w", err)
	}
	return nil
}
