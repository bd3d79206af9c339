package models

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// JobApplication is the persisted record of one application attempt.
type JobApplication struct {
	ID              int               `json:"id"`
	ApplicationCode string            `json:"application_code"`
	JobURL          string            `json:"job_url"`
	Mode            ApplyMode         `json:"mode"`
	Status          ApplicationStatus `json:"status"`
	Reason          string            `json:"reason,omitempty"`
	Steps           int               `json:"steps"`
	Fingerprint     string            `json:"fingerprint,omitempty"`
	AppliedAt       time.Time         `json:"applied_at"`
	CreatedAt       time.Time         `json:"created_at"`
}

type JobApplicationModel struct {
	DB *sql.DB
}

func NewJobApplicationModel(db *sql.DB) *JobApplicationModel {
	return &JobApplicationModel{DB: db}
}

// generateApplicationCode generates a unique 8-character alphanumeric code
func generateApplicationCode() string {
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return strings.ToUpper(hex.EncodeToString(bytes))
}

// Create records the terminal result of one application attempt.
func (m *JobApplicationModel) Create(jobURL string, mode ApplyMode, result ApplicationResult) (*JobApplication, error) {
	code := generateApplicationCode()
	for {
		var exists bool
		err := m.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM job_applications WHERE application_code = $1)", code).Scan(&exists)
		if err != nil || !exists {
			break
		}
		code = generateApplicationCode()
	}

	query := `
		INSERT INTO job_applications (application_code, job_url, mode, status, reason, steps, fingerprint, applied_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, application_code, job_url, mode, status, reason, steps, fingerprint, applied_at, created_at
	`
	app := &JobApplication{}
	err := m.DB.QueryRow(query, code, jobURL, string(mode), string(result.Status), result.Reason, result.Steps, result.Fingerprint, time.Now()).Scan(
		&app.ID, &app.ApplicationCode, &app.JobURL, &app.Mode, &app.Status,
		&app.Reason, &app.Steps, &app.Fingerprint, &app.AppliedAt, &app.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job application: %w", err)
	}
	return app, nil
}

// HasApplied reports whether a submitted application already exists for
// the job URL, so the same posting is never applied to twice.
func (m *JobApplicationModel) HasApplied(jobURL string) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM job_applications WHERE job_url = $1 AND status = $2)",
		jobURL, string(StatusSubmitted),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check applied: %w", err)
	}
	return exists, nil
}

// List returns the most recent application records.
func (m *JobApplicationModel) List(limit int) ([]JobApplication, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := m.DB.Query(`
		SELECT id, application_code, job_url, mode, status, reason, steps, fingerprint, applied_at, created_at
		FROM job_applications ORDER BY applied_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	defer rows.Close()

	var apps []JobApplication
	for rows.Next() {
		var app JobApplication
		if err := rows.Scan(
			&app.ID, &app.ApplicationCode, &app.JobURL, &app.Mode, &app.Status,
			&app.Reason, &app.Steps, &app.Fingerprint, &app.AppliedAt, &app.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
