package bootstrap

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/emre/hardwarehub/internal/app/controllers"
	"github.com/emre/hardwarehub/internal/app/directory"
	"github.com/emre/hardwarehub/internal/app/editor"
	"github.com/emre/hardwarehub/internal/app/feed"
	"github.com/emre/hardwarehub/internal/app/gateway"
	"github.com/emre/hardwarehub/internal/app/routes"
	"github.com/emre/hardwarehub/internal/app/session"
	"github.com/emre/hardwarehub/internal/config"
	"github.com/emre/hardwarehub/internal/middleware"
	"github.com/emre/hardwarehub/internal/pkg/logger"
)

// Dependencies holds the wired application components
type Dependencies struct {
	Gateway   *gateway.Client
	Sessions  *session.Store
	Directory *directory.Directory
	Editor    *editor.Editor
	Feed      *feed.Feed
	Logger    zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("apiBaseUrl", cfg.API.BaseURL).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies wires the gateway, the stateful core components
// and their shared logger.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) *Dependencies {
	gw := gateway.NewClient(cfg.API.BaseURL, cfg.APITimeout(), logger.With("gateway"))

	sessions := session.NewStore(gw, cfg.API.DefaultAvatar, logger.With("session"))
	dir := directory.New(gw, logger.With("directory"))
	ed := editor.New(gw, sessions, dir, logger.With("editor"))
	fd := feed.New(gw, logger.With("feed"))

	return &Dependencies{
		Gateway:   gw,
		Sessions:  sessions,
		Directory: dir,
		Editor:    ed,
		Feed:      fd,
		Logger:    lgr,
	}
}

// SetupRouter configures the gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	sessionMw := middleware.NewSessionMiddleware(deps.Sessions)
	routes.SetupRoutes(router, routes.Controllers{
		Auth:    controllers.NewAuthController(deps.Sessions, deps.Editor, lgr),
		Review:  controllers.NewReviewController(deps.Feed, deps.Sessions, lgr),
		Admin:   controllers.NewAdminController(deps.Directory, deps.Editor, lgr),
		Session: sessionMw,
	})

	if cfg.Server.StaticDir != "" {
		router.Static("/assets", cfg.Server.StaticDir)
		lgr.Info().Str("path", cfg.Server.StaticDir).Msg("Static asset serving configured")
	}

	return router
}
