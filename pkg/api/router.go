package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/api/handlers"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/db"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker/schema"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine    *gin.Engine
	fleet     *conn.Fleet
	favorites db.FavoriteStore
	validator *schema.Validator
}

// NewRouter creates a new API router
func NewRouter(fleet *conn.Fleet, favorites db.FavoriteStore, validator *schema.Validator) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:    engine,
		fleet:     fleet,
		favorites: favorites,
		validator: validator,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.fleet)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		// Health
		v1.GET("/health", healthHandler.Health)

		// Speakers
		speakersHandler := handlers.NewSpeakersHandler(r.fleet, r.validator)
		playbackHandler := handlers.NewPlaybackHandler(r.fleet)
		groupingHandler := handlers.NewGroupingHandler(r.fleet)
		telemetryHandler := handlers.NewTelemetryHandler(r.fleet)
		audioHandler := handlers.NewAudioHandler(r.fleet, r.validator)
		presetsHandler := handlers.NewPresetsHandler(r.fleet)
		bluetoothHandler := handlers.NewBluetoothHandler(r.fleet)
		powerHandler := handlers.NewPowerHandler(r.fleet)
		speakers := v1.Group("/speakers")
		{
			speakers.GET("", speakersHandler.ListSpeakers)
			speakers.GET("/:id", speakersHandler.GetSpeaker)

			// State
			speakers.GET("/:id/state", speakersHandler.GetState)
			speakers.POST("/:id/state", speakersHandler.SetState)
			speakers.GET("/:id/sources", speakersHandler.GetSources)

			// Transport
			speakers.POST("/:id/playback/:action", playbackHandler.Command)

			// Multi-room grouping
			speakers.POST("/:id/group", groupingHandler.Join)
			speakers.DELETE("/:id/group", groupingHandler.Leave)

			// Telemetry
			speakers.GET("/:id/telemetry", telemetryHandler.Telemetry)

			// Audio settings
			speakers.GET("/:id/audio", audioHandler.ListSettings)
			speakers.PUT("/:id/audio/:option", audioHandler.SetSetting)

			// Presets
			speakers.GET("/:id/presets", presetsHandler.ListPresets)
			speakers.POST("/:id/presets/:slot/play", presetsHandler.PlayPreset)

			// Bluetooth
			speakers.POST("/:id/bluetooth/pair", bluetoothHandler.Pair)
			speakers.DELETE("/:id/bluetooth/:mac", bluetoothHandler.Remove)

			// Power settings
			speakers.GET("/:id/power", powerHandler.GetSettings)
			speakers.PUT("/:id/power/standby", powerHandler.SetStandby)
			speakers.PUT("/:id/power/accessories/:name", powerHandler.SetAccessory)
		}

		// Favorites
		favoritesHandler := handlers.NewFavoritesHandler(r.favorites)
		favorites := v1.Group("/favorites")
		{
			favorites.GET("", favoritesHandler.ListFavorites)
			favorites.POST("", favoritesHandler.CreateFavorite)
			favorites.DELETE("/:id", favoritesHandler.DeleteFavorite)
		}
	}
}

// Engine exposes the underlying Gin engine, mainly for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
