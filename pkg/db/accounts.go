package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrAccountNotFound = errors.New("account not found")

// Account represents a cloud account whose tokens authenticate speakers.
type Account struct {
	ID           int64
	Mail         string
	PersonID     string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountStore provides account CRUD and token persistence.
type AccountStore interface {
	Get(ctx context.Context, id int64) (*Account, error)
	GetByMail(ctx context.Context, mail string) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	Create(ctx context.Context, a *Account) error
	UpdateTokens(ctx context.Context, id int64, accessToken, refreshToken string, expiresAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

// Accounts returns an AccountStore for this database.
func (db *DB) Accounts() AccountStore {
	return &accountStore{db: db}
}

type accountStore struct {
	db *DB
}

func scanAccount(row *sql.Row) (*Account, error) {
	a := &Account{}
	var expiresAt sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&a.ID, &a.Mail, &a.PersonID, &a.AccessToken, &a.RefreshToken,
		&expiresAt, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		a.ExpiresAt, _ = time.Parse(time.RFC3339, expiresAt.String)
	}
	a.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	a.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return a, nil
}

const accountColumns = `id, mail, person_id, access_token, refresh_token, expires_at, created_at, updated_at`

func (s *accountStore) Get(ctx context.Context, id int64) (*Account, error) {
	return scanAccount(s.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE id = ?
	`, id))
}

func (s *accountStore) GetByMail(ctx context.Context, mail string) (*Account, error) {
	return scanAccount(s.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE mail = ?
	`, mail))
}

func (s *accountStore) List(ctx context.Context) ([]*Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+accountColumns+` FROM accounts ORDER BY mail
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		a := &Account{}
		var expiresAt sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&a.ID, &a.Mail, &a.PersonID, &a.AccessToken, &a.RefreshToken,
			&expiresAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if expiresAt.Valid {
			a.ExpiresAt, _ = time.Parse(time.RFC3339, expiresAt.String)
		}
		a.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
		a.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *accountStore) Create(ctx context.Context, a *Account) error {
	var expiresAt any
	if !a.ExpiresAt.IsZero() {
		expiresAt = a.ExpiresAt.Format(time.RFC3339)
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (mail, person_id, access_token, refresh_token, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.Mail, a.PersonID, a.AccessToken, a.RefreshToken, expiresAt)
	if err != nil {
		return err
	}
	a.ID, err = result.LastInsertId()
	return err
}

func (s *accountStore) UpdateTokens(ctx context.Context, id int64, accessToken, refreshToken string, expiresAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET access_token = ?, refresh_token = ?, expires_at = ?, updated_at = datetime('now')
		WHERE id = ?
	`, accessToken, refreshToken, expiresAt.Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *accountStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}
