package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/gradesphere/gradesphere/internal/app/controllers"
	appMigrations "github.com/gradesphere/gradesphere/internal/app/migrations"
	appRepos "github.com/gradesphere/gradesphere/internal/app/repositories"
	appRoutes "github.com/gradesphere/gradesphere/internal/app/routes"
	appServices "github.com/gradesphere/gradesphere/internal/app/services"
	"github.com/gradesphere/gradesphere/internal/config"
	"github.com/gradesphere/gradesphere/internal/db"
	appMiddleware "github.com/gradesphere/gradesphere/internal/middleware"
	pkgAuth "github.com/gradesphere/gradesphere/internal/pkg/auth"
	"github.com/gradesphere/gradesphere/internal/pkg/helpers"
	"github.com/gradesphere/gradesphere/internal/pkg/logger"
	"github.com/gradesphere/gradesphere/internal/pkg/provider"
	"github.com/gradesphere/gradesphere/internal/queue"
	"github.com/gradesphere/gradesphere/internal/queue/redisclient"
	"github.com/gradesphere/gradesphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	Services          *appServices.Services
	JWTService        *pkgAuth.JWTService
	Redis             *redisclient.Client
	Queue             *queue.Queue
	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	CourseController  *appControllers.CourseController
	GradeController   *appControllers.GradeController
	UserController    *appControllers.UserController
	EmailController   *appControllers.EmailController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Logger            zerolog.Logger
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

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the first administrator.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), database.Pool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// SetupRedis connects the redis client backing the notification queue.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) (*redisclient.Client, error) {
	client := redisclient.New(redisclient.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to redis")
		client.Close()
		return nil, err
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return client, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, redisClient *redisclient.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.Redis = redisClient
	deps.Queue = queue.New(redisClient.Raw())

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 168*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, database, deps.JWTService, deps.Queue, lgr)

	sessionVerifier := provider.NewClient(provider.Config{
		APIBaseURL: cfg.Provider.APIBaseURL,
		APIKey:     cfg.Provider.APIKey,
	})

	webhookVerifier, err := provider.NewSvixWebhookVerifier(cfg.Provider.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize webhook verifier: %w", err)
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		sessionVerifier,
		deps.JWTService,
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
	)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.Services.StudentService)
	deps.CourseController = appControllers.NewCourseController(deps.Services.CourseService)
	deps.GradeController = appControllers.NewGradeController(deps.Services.GradeService)
	deps.UserController = appControllers.NewUserController(deps.Services.UserService, webhookVerifier)
	deps.EmailController = appControllers.NewEmailController(deps.Services.MessagingService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.CourseController,
		deps.GradeController,
		deps.UserController,
		deps.EmailController,
		deps.AuthMiddleware,
	)

	return router
}
