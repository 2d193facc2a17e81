package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNoSettings = errors.New("settings not initialized")

// Settings is the service-level configuration row.
type Settings struct {
	Host      string
	Port      int
	Timezone  string
	UpdatedAt time.Time
}

// Address returns the API listen address (host:port).
func (s *Settings) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Settings loads the single settings row.
func (db *DB) Settings(ctx context.Context) (*Settings, error) {
	s := &Settings{}
	var updatedAt string
	err := db.QueryRowContext(ctx, `
		SELECT host, port, timezone, updated_at
		FROM settings WHERE id = 1
	`).Scan(&s.Host, &s.Port, &s.Timezone, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoSettings
	}
	if err != nil {
		return nil, err
	}
	s.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return s, nil
}

// UpdateSettings writes the settings row.
func (db *DB) UpdateSettings(ctx context.Context, s *Settings) error {
	_, err := db.ExecContext(ctx, `
		UPDATE settings SET host = ?, port = ?, timezone = ?, updated_at = datetime('now')
		WHERE id = 1
	`, s.Host, s.Port, s.Timezone)
	return err
}
