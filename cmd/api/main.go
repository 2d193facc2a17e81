package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/db"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/entity"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker/schema"

	_ "github.com/salimbeni/soundtouch-homeassistant-integration/docs"
)

// @title           SoundTouch API
// @version         1.0
// @description     REST API for controlling Bose smart speakers

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/soundtouch/soundtouch.db)")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Bootstrap if needed (first run)
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap database")
		}
		log.Info().Msg("Database bootstrapped successfully")
	}

	// Load configuration
	settings, err := database.Settings(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load settings")
	}

	log.Info().
		Str("timezone", settings.Timezone).
		Str("api_address", settings.Address()).
		Msg("Configuration loaded")

	// Connect the configured speakers
	registry := entity.NewRegistry()
	fleet := buildFleet(ctx, database, registry)

	validator := schema.NewValidator()

	// Create and start API router
	router := api.NewRouter(fleet, database.Favorites(), validator)

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		fleet.Close()
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	addr := settings.Address()
	log.Info().Str("address", addr).Msg("Starting API server")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// buildFleet dials every speaker stored in the database. Unreachable
// speakers come up offline and are retried by their reconnection
// monitors.
func buildFleet(ctx context.Context, database *db.DB, registry *entity.Registry) *conn.Fleet {
	fleet := conn.NewFleet()

	speakers, err := database.Speakers().List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list speakers")
	}
	if len(speakers) == 0 {
		log.Warn().Msg("No speakers configured")
		return fleet
	}

	dial := speakerDialer
	discoverer := speaker.NullDiscoverer{}

	for _, sp := range speakers {
		cfg := conn.Config{GUID: sp.GUID, Name: sp.Name, IP: sp.IP}
		tokens := tokensFor(ctx, database, sp)

		dialCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		m, err := conn.Connect(dialCtx, cfg, dial, tokens, discoverer, registry)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("guid", sp.GUID).Msg("Speaker unreachable, starting offline")
			m = conn.Offline(cfg, dial, tokens, discoverer, registry)
		}
		fleet.Add(m)
	}

	return fleet
}

// tokensFor builds the token source for a speaker's account, falling
// back to an empty static token when no account is linked.
func tokensFor(ctx context.Context, database *db.DB, sp *db.Speaker) speaker.TokenSource {
	if !sp.AccountID.Valid {
		return speaker.NewStaticTokens(speaker.Token{})
	}

	account, err := database.Accounts().Get(ctx, sp.AccountID.Int64)
	if err != nil {
		log.Warn().Err(err).Str("guid", sp.GUID).Msg("Failed to load account, using empty tokens")
		return speaker.NewStaticTokens(speaker.Token{})
	}

	static := speaker.NewStaticTokens(speaker.Token{
		AccessToken:  account.AccessToken,
		RefreshToken: account.RefreshToken,
		ExpiresAt:    account.ExpiresAt,
	})
	return conn.NewPersistentTokens(static, database.Accounts(), account.ID)
}

// speakerDialer is the transport seam. The wire client ships as a
// separate adapter; without one every dial reports the speaker as
// unreachable and the fleet runs offline.
func speakerDialer(ctx context.Context, ip string, tokens speaker.TokenSource) (speaker.Client, error) {
	return nil, fmt.Errorf("%w: no transport adapter for %s", speaker.ErrNotConnected, ip)
}
