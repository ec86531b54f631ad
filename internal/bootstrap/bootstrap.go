package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	appControllers "github.com/yigit/academictwin/internal/app/controllers"
	appJobs "github.com/yigit/academictwin/internal/app/jobs"
	appMigrations "github.com/yigit/academictwin/internal/app/migrations"
	appRepos "github.com/yigit/academictwin/internal/app/repositories"
	appRoutes "github.com/yigit/academictwin/internal/app/routes"
	appServices "github.com/yigit/academictwin/internal/app/services"
	"github.com/yigit/academictwin/internal/config"
	"github.com/yigit/academictwin/internal/db"
	appMiddleware "github.com/yigit/academictwin/internal/middleware"
	pkgAuth "github.com/yigit/academictwin/internal/pkg/auth"
	"github.com/yigit/academictwin/internal/pkg/evolution"
	"github.com/yigit/academictwin/internal/pkg/helpers"
	"github.com/yigit/academictwin/internal/pkg/logger"
	"github.com/yigit/academictwin/internal/pkg/validation"
	"github.com/yigit/academictwin/internal/seed"
	"github.com/yigit/academictwin/internal/simulation"
)

// DefaultConfigPath is read unless CONFIG_PATH says otherwise.
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos     *appRepos.Repositories
	Engine    *simulation.Engine
	Optimizer *simulation.Optimizer
	Services  *appServices.Services

	HealthController     *appControllers.HealthController
	StudentController    *appControllers.StudentController
	CourseController     *appControllers.CourseController
	SimulationController *appControllers.SimulationController
	ScenarioController   *appControllers.ScenarioController

	JWTService      *pkgAuth.JWTService           // nil when the guard is off
	AuthMiddleware  *appMiddleware.AuthMiddleware // nil when the guard is off
	OptimizeLimiter *rate.Limiter
	Pruner          *appJobs.RunPruner
	Logger          zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", DefaultConfigPath)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.FromSettings(cfg.Logging.Level, cfg.Logging.Format))

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// optionally seeds the demo student.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.Migrate(ctx, appMigrations.Source(cfg.Database.MigrationsDir)); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Database.Seed {
		if err := seed.CreateDemoData(ctx, database, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return database, nil
}

// NewEngine builds the simulation engine from configuration.
func NewEngine(cfg *config.Config, lgr zerolog.Logger) *simulation.Engine {
	return simulation.NewEngine(simulation.EngineOptions{
		CourseWorkers: cfg.Simulation.CourseWorkers,
		Logger:        lgr.With().Str("component", "engine").Logger(),
	})
}

// NewOptimizer builds the schedule optimizer over runner from configuration.
func NewOptimizer(cfg *config.Config, runner simulation.Runner, lgr zerolog.Logger) *simulation.Optimizer {
	return simulation.NewOptimizer(runner, simulation.OptimizerOptions{
		Search: evolution.Config{
			PopulationSize: cfg.Simulation.PopulationSize,
			MaxGenerations: cfg.Simulation.MaxGenerations,
			Tolerance:      cfg.Simulation.Tolerance,
			Seed:           cfg.Simulation.Seed,
			Workers:        cfg.Simulation.OptimizerWorkers,
		},
		Logger: lgr.With().Str("component", "optimizer").Logger(),
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	if err := validation.RegisterGinValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.Engine = NewEngine(cfg, lgr)
	deps.Optimizer = NewOptimizer(cfg, deps.Engine, lgr)

	deps.Services = appServices.NewServices(deps.Repos, deps.Engine, deps.Optimizer, appServices.Options{
		BatchWorkers: cfg.Simulation.BatchWorkers,
		MaxBatchSize: cfg.Simulation.MaxBatchSize,
	})

	if cfg.AuthEnabled() {
		deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
			SecretKey:      cfg.JWT.Secret,
			AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
			TokenIssuer:    cfg.JWT.Issuer,
		})
		deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
		lgr.Info().Msg("Bearer token guard enabled")
	} else {
		lgr.Warn().Msg("JWT secret not set, API routes are unauthenticated")
	}

	deps.OptimizeLimiter = appMiddleware.NewLimiter(cfg.RateLimit.OptimizeRPS, cfg.RateLimit.OptimizeBurst)

	if cfg.Retention.PruneSchedule != "" {
		deps.Pruner = appJobs.NewRunPruner(
			deps.Repos.SimulationRunRepository,
			cfg.Retention.PruneSchedule,
			config.MustDuration(cfg.Retention.MaxAge),
			lgr,
		)
	}

	deps.HealthController = appControllers.NewHealthController(database.Pool)
	deps.StudentController = appControllers.NewStudentController(deps.Services.StudentService)
	deps.CourseController = appControllers.NewCourseController(deps.Services.CourseService)
	deps.SimulationController = appControllers.NewSimulationController(deps.Services.SimulationService)
	deps.ScenarioController = appControllers.NewScenarioController(deps.Services.OptimizationService)

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
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.HealthController,
		deps.StudentController,
		deps.CourseController,
		deps.SimulationController,
		deps.ScenarioController,
		deps.AuthMiddleware,
		deps.OptimizeLimiter,
	)

	return router
}
