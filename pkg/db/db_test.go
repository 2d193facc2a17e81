package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.Migrate(context.Background()))
	return database
}

func TestBootstrap_SeedsDefaultSettings(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	needed, err := database.NeedsBootstrap(ctx)
	require.NoError(t, err)
	require.True(t, needed)

	require.NoError(t, database.Bootstrap(ctx))

	needed, err = database.NeedsBootstrap(ctx)
	require.NoError(t, err)
	require.False(t, needed)

	settings, err := database.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", settings.Address())
	require.NotEmpty(t, settings.Timezone)
}

func TestUpdateSettings_Roundtrip(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, database.Bootstrap(ctx))

	require.NoError(t, database.UpdateSettings(ctx, &Settings{
		Host: "127.0.0.1", Port: 9090, Timezone: "Europe/Zurich",
	}))

	settings, err := database.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", settings.Address())
	require.Equal(t, "Europe/Zurich", settings.Timezone)
}

func TestSpeakerStore_UpsertAndUpdateIP(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	store := database.Speakers()

	_, err := store.Get(ctx, "g1")
	require.ErrorIs(t, err, ErrSpeakerNotFound)

	require.NoError(t, store.Upsert(ctx, &Speaker{
		GUID: "g1", Name: "Living Room", IP: "10.0.0.5", Product: "Soundbar 900",
	}))

	// Upserting the same GUID replaces, not duplicates.
	require.NoError(t, store.Upsert(ctx, &Speaker{
		GUID: "g1", Name: "Living Room", IP: "10.0.0.6", Product: "Soundbar 900",
	}))

	speakers, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, speakers, 1)
	require.Equal(t, "10.0.0.6", speakers[0].IP)

	require.NoError(t, store.UpdateIP(ctx, "g1", "10.0.0.9"))
	sp, err := store.Get(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, "10.0.0.9", sp.IP)

	require.ErrorIs(t, store.UpdateIP(ctx, "missing", "10.0.0.1"), ErrSpeakerNotFound)
}

func TestAccountStore_TokenPersistence(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	store := database.Accounts()

	account := &Account{Mail: "user@example.com", PersonID: "p1"}
	require.NoError(t, store.Create(ctx, account))
	require.NotZero(t, account.ID)

	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, store.UpdateTokens(ctx, account.ID, "access", "refresh", expires))

	loaded, err := store.GetByMail(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, "access", loaded.AccessToken)
	require.Equal(t, "refresh", loaded.RefreshToken)
	require.Equal(t, expires, loaded.ExpiresAt.UTC())

	require.ErrorIs(t, store.UpdateTokens(ctx, 999, "a", "r", expires), ErrAccountNotFound)
}

func TestFavoriteStore_RejectsDuplicates(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	store := database.Favorites()

	favorite := &Favorite{Name: "Jazz24", Source: "TUNEIN", Location: "/station/s1"}
	require.NoError(t, store.Create(ctx, favorite))
	require.NotEmpty(t, favorite.ID)

	err := store.Create(ctx, &Favorite{Name: "Dup", Source: "TUNEIN", Location: "/station/s1"})
	require.ErrorIs(t, err, ErrFavoriteExists)

	favorites, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	require.NoError(t, store.Delete(ctx, favorite.ID))
	require.ErrorIs(t, store.Delete(ctx, favorite.ID), ErrFavoriteNotFound)
}
