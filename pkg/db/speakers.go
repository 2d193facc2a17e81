package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrSpeakerNotFound = errors.New("speaker not found")

// Speaker represents a registered speaker and its last known address.
type Speaker struct {
	GUID      string
	AccountID sql.NullInt64
	Name      string
	IP        string
	Product   string
	LastSeen  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SpeakerStore provides speaker CRUD operations.
type SpeakerStore interface {
	Get(ctx context.Context, guid string) (*Speaker, error)
	List(ctx context.Context) ([]*Speaker, error)
	Upsert(ctx context.Context, sp *Speaker) error
	UpdateIP(ctx context.Context, guid, ip string) error
	Touch(ctx context.Context, guid string) error
	Delete(ctx context.Context, guid string) error
}

// Speakers returns a SpeakerStore for this database.
func (db *DB) Speakers() SpeakerStore {
	return &speakerStore{db: db}
}

type speakerStore struct {
	db *DB
}

const speakerColumns = `guid, account_id, name, ip, product, last_seen, created_at, updated_at`

func scanSpeaker(scan func(...any) error) (*Speaker, error) {
	sp := &Speaker{}
	var lastSeen sql.NullString
	var createdAt, updatedAt string
	err := scan(&sp.GUID, &sp.AccountID, &sp.Name, &sp.IP, &sp.Product,
		&lastSeen, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSpeakerNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastSeen.Valid {
		sp.LastSeen, _ = time.Parse(time.DateTime, lastSeen.String)
	}
	sp.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	sp.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return sp, nil
}

func (s *speakerStore) Get(ctx context.Context, guid string) (*Speaker, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+speakerColumns+` FROM speakers WHERE guid = ?
	`, guid)
	return scanSpeaker(row.Scan)
}

func (s *speakerStore) List(ctx context.Context) ([]*Speaker, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+speakerColumns+` FROM speakers ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var speakers []*Speaker
	for rows.Next() {
		sp, err := scanSpeaker(rows.Scan)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, sp)
	}
	return speakers, rows.Err()
}

// Upsert inserts the speaker or, if the GUID exists, refreshes its
// name, IP and product.
func (s *speakerStore) Upsert(ctx context.Context, sp *Speaker) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO speakers (guid, account_id, name, ip, product, last_seen)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(guid) DO UPDATE SET
			name = excluded.name,
			ip = excluded.ip,
			product = excluded.product,
			last_seen = excluded.last_seen,
			updated_at = datetime('now')
	`, sp.GUID, sp.AccountID, sp.Name, sp.IP, sp.Product)
	return err
}

func (s *speakerStore) UpdateIP(ctx context.Context, guid, ip string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE speakers SET ip = ?, last_seen = datetime('now'), updated_at = datetime('now')
		WHERE guid = ?
	`, ip, guid)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSpeakerNotFound
	}
	return nil
}

// Touch updates last_seen for a speaker that answered a probe.
func (s *speakerStore) Touch(ctx context.Context, guid string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE speakers SET last_seen = datetime('now') WHERE guid = ?
	`, guid)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSpeakerNotFound
	}
	return nil
}

func (s *speakerStore) Delete(ctx context.Context, guid string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM speakers WHERE guid = ?`, guid)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSpeakerNotFound
	}
	return nil
}
