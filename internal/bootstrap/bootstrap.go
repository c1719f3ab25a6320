package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/coursequest/internal/app/controllers"
	appMigrations "github.com/yigit/coursequest/internal/app/migrations"
	appRepos "github.com/yigit/coursequest/internal/app/repositories"
	appRoutes "github.com/yigit/coursequest/internal/app/routes"
	appServices "github.com/yigit/coursequest/internal/app/services"
	"github.com/yigit/coursequest/internal/config"
	"github.com/yigit/coursequest/internal/db"
	appMiddleware "github.com/yigit/coursequest/internal/middleware"
	"github.com/yigit/coursequest/internal/pkg/logger"
	"github.com/yigit/coursequest/internal/pkg/nlfilter"
	"github.com/yigit/coursequest/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	Migrator    *appMigrations.Migrator
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and, when enabled,
// applies pending migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, *appMigrations.Migrator, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}

	migrator, err := appMigrations.NewMigrator(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		lgr.Info().Msg("Running database migrations...")
		if err := migrator.MigrateUp(ctx); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
	}

	return database, migrator, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, migrator *appMigrations.Migrator, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Migrator: migrator}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.Services = appServices.NewServices(deps.Repos, migrator, database, nlfilter.NewRuleExtractor())
	deps.Controllers = appRoutes.Controllers{
		Course: appControllers.NewCourseController(deps.Services.CourseService),
		Ask:    appControllers.NewAskController(deps.Services.AskService),
		Ingest: appControllers.NewIngestController(deps.Services.IngestService),
		System: appControllers.NewSystemController(deps.Services.SystemService),
	}

	if cfg.Ingest.SeedSample {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seed.SampleCourses(ctx, deps.Repos.CourseRepository, deps.Services.IngestService, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to load sample courses, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
		appMiddleware.Recovery(),
		appMiddleware.CORS(cfg.Server.CORSOrigins),
	)

	appRoutes.SetupRouter(router, deps.Controllers, cfg.Ingest.Token, cfg.Server.MaxUploadBytes)

	return router
}
