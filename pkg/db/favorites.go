package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("favorite already exists")
)

// Favorite is a locally pinned content item that can be replayed on any
// speaker, independent of the six hardware preset slots.
type Favorite struct {
	ID            string
	Name          string
	Source        string
	SourceAccount string
	ItemType      string
	Location      string
	ContainerArt  string
	Presetable    bool
	CreatedAt     time.Time
}

// FavoriteStore provides favorite CRUD operations.
type FavoriteStore interface {
	Get(ctx context.Context, id string) (*Favorite, error)
	List(ctx context.Context) ([]*Favorite, error)
	Create(ctx context.Context, f *Favorite) error
	Delete(ctx context.Context, id string) error
}

// Favorites returns a FavoriteStore for this database.
func (db *DB) Favorites() FavoriteStore {
	return &favoriteStore{db: db}
}

type favoriteStore struct {
	db *DB
}

const favoriteColumns = `id, name, source, source_account, item_type, location, container_art, presetable, created_at`

func scanFavorite(scan func(...any) error) (*Favorite, error) {
	f := &Favorite{}
	var createdAt string
	err := scan(&f.ID, &f.Name, &f.Source, &f.SourceAccount, &f.ItemType,
		&f.Location, &f.ContainerArt, &f.Presetable, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrFavoriteNotFound
	}
	if err != nil {
		return nil, err
	}
	f.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	return f, nil
}

func (s *favoriteStore) Get(ctx context.Context, id string) (*Favorite, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+favoriteColumns+` FROM favorites WHERE id = ?
	`, id)
	return scanFavorite(row.Scan)
}

func (s *favoriteStore) List(ctx context.Context) ([]*Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+favoriteColumns+` FROM favorites ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []*Favorite
	for rows.Next() {
		f, err := scanFavorite(rows.Scan)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// Create inserts a favorite, assigning a fresh ID when none is given.
// Duplicate (source, location) pairs are rejected.
func (s *favoriteStore) Create(ctx context.Context, f *Favorite) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, name, source, source_account, item_type, location, container_art, presetable)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.Name, f.Source, f.SourceAccount, f.ItemType, f.Location, f.ContainerArt, f.Presetable)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrFavoriteExists
		}
		return err
	}
	return nil
}

func (s *favoriteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
