// Package bootstrap assembles the application: configuration, logger,
// upstream client, services, controllers, and the router.
package bootstrap

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ecemk/classboard/internal/app/controllers"
	appRoutes "github.com/ecemk/classboard/internal/app/routes"
	appServices "github.com/ecemk/classboard/internal/app/services"
	"github.com/ecemk/classboard/internal/config"
	appMiddleware "github.com/ecemk/classboard/internal/middleware"
	pkgAuth "github.com/ecemk/classboard/internal/pkg/auth"
	"github.com/ecemk/classboard/internal/pkg/backend"
	"github.com/ecemk/classboard/internal/pkg/logger"
)

// Dependencies holds all the application dependencies.
type Dependencies struct {
	Services            *appServices.Services
	AuthController      *appControllers.AuthController
	DashboardController *appControllers.DashboardController
	RoomController      *appControllers.RoomController
	UserController      *appControllers.UserController
	AcademicsController *appControllers.AcademicsController
	ContentController   *appControllers.ContentController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies wires the upstream client, services, controllers,
// and middleware together.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	client := backend.NewClient(backend.Config{
		BaseURL:      cfg.Upstream.BaseURL,
		Timeout:      cfg.UpstreamTimeout(),
		LoginTimeout: cfg.UpstreamLoginTimeout(),
	}, lgr)

	session := pkgAuth.NewSessionService(pkgAuth.SessionConfig{
		SecretKey:  cfg.Session.Secret,
		Expiration: cfg.SessionExpiration(),
		Issuer:     cfg.Session.Issuer,
	})

	services := appServices.NewServices(client, session, lgr)

	cookieMaxAge := int(cfg.SessionExpiration().Seconds())
	cookieSecure := strings.ToLower(cfg.Server.Mode) == "production"

	deps := &Dependencies{
		Services:            services,
		AuthController:      appControllers.NewAuthController(services.Auth, cfg.Session.CookieName, cookieMaxAge, cookieSecure),
		DashboardController: appControllers.NewDashboardController(services.Dashboard),
		RoomController:      appControllers.NewRoomController(services.Rooms),
		UserController:      appControllers.NewUserController(services.Users, services.Students, services.Provision),
		AcademicsController: appControllers.NewAcademicsController(services.Academics),
		ContentController:   appControllers.NewContentController(services.Feedback, services.Announcements),
		AuthMiddleware:      appMiddleware.NewAuthMiddleware(session, cfg.Session.CookieName),
		Logger:              lgr,
	}
	return deps, nil
}

// SetupRouter builds the gin engine with the global middleware and all
// application routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DashboardController,
		deps.RoomController,
		deps.UserController,
		deps.AcademicsController,
		deps.ContentController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
