package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telehealth-api/config"
	deliveryHttp "telehealth-api/internal/delivery/http"
	"telehealth-api/internal/delivery/http/handler"
	"telehealth-api/internal/delivery/http/middleware"
	"telehealth-api/internal/infrastructure/cache"
	"telehealth-api/internal/infrastructure/database"
	"telehealth-api/internal/repository"
	"telehealth-api/internal/service"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/jwt"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config        *config.Config
	Log           *logrus.Logger
	DB            *gorm.DB
	RedisClient   *redis.Client
	Server        *http.Server
	ExpiryService *service.AlertExpiryService
}

type Options struct {
	// Migrate applies pending migrations before serving
	Migrate bool
}

// NewLogger configures the logrus logger shared by every command.
func NewLogger(env string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	if env == config.EnvDevelopment {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// LoadConfig loads configuration and the logger for a command.
func LoadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := NewLogger(cfg.App.Env)
	log.Info("Configuration loaded successfully")
	return cfg, log, nil
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, log, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Log: log}

	response.ExposeErrors(cfg.App.IsDevelopment())

	if opts.Migrate {
		if err := database.RunMigrations(cfg.DB, database.MigrateUp); err != nil {
			return nil, err
		}
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	app.initializeServer()

	return app, nil
}

// initializeServer wires repositories, services, usecases and handlers into the HTTP server
func (app *App) initializeServer() {
	cfg, log, db := app.Config, app.Log, app.DB

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	reportRepo := repository.NewSymptomReportRepository(db)
	consultationRepo := repository.NewConsultationRepository(db)
	labResultRepo := repository.NewLabResultRepository(db)

	// Services
	auditService := service.NewAuditService(log, auditLogRepo)
	sessionStore := service.NewRedisSessionStore(app.RedisClient)
	app.ExpiryService = service.NewAlertExpiryService(alertRepo, auditService, log, cfg.Alert)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, jwtService, sessionStore, auditService)
	profileUsecase := usecase.NewProfileUsecase(log, userRepo, auditService)
	alertUsecase := usecase.NewAlertUsecase(log, alertRepo, auditService)
	reportUsecase := usecase.NewSymptomReportUsecase(log, reportRepo, auditService)
	consultationUsecase := usecase.NewConsultationUsecase(log, consultationRepo, userRepo, auditService)
	labResultUsecase := usecase.NewLabResultUsecase(log, labResultRepo, userRepo, auditService)
	doctorUsecase := usecase.NewDoctorProfileUsecase(log, userRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, profileUsecase, customValidator)
	alertHandler := handler.NewAlertHandler(alertUsecase, customValidator)
	reportHandler := handler.NewSymptomReportHandler(reportUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)
	labResultHandler := handler.NewLabResultHandler(labResultUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, customValidator)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, jwtService, sessionStore)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)

	router := deliveryHttp.NewRouter(
		log,
		authHandler,
		alertHandler,
		reportHandler,
		consultationHandler,
		labResultHandler,
		doctorHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the expiry sweeper and the HTTP server, then blocks until shutdown
func (app *App) Run() {
	app.ExpiryService.Start()

	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.ExpiryService.Stop()
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

// SweepExpiredAlerts runs a single expiry sweep outside the server.
func SweepExpiredAlerts(ctx context.Context) (int64, error) {
	cfg, log, err := LoadConfig()
	if err != nil {
		return 0, err
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return 0, err
	}
	defer closeDB(db)

	alertRepo := repository.NewAlertRepository(db)
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository(db))
	sweeper := service.NewAlertExpiryService(alertRepo, auditService, log, cfg.Alert)

	return sweeper.SweepOnce(ctx)
}

// Seed fills the database with demo data.
func Seed(ctx context.Context, opts database.SeedOptions) error {
	cfg, log, err := LoadConfig()
	if err != nil {
		return err
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return err
	}
	defer closeDB(db)

	return database.Seed(ctx, db, log, opts)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
