package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hospital-management/config"
	deliveryHttp "go-hospital-management/internal/delivery/http"
	"go-hospital-management/internal/delivery/http/handler"
	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/infrastructure/cache"
	"go-hospital-management/internal/infrastructure/database"
	"go-hospital-management/internal/repository"
	"go-hospital-management/internal/service"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// authorityPasswordMinLen is stricter than the regular minimum of 6.
const authorityPasswordMinLen = 10

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	if err := seed(cfg, db); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// seed inserts the closed role set and the bootstrap authority account.
func seed(cfg *config.Config, db *gorm.DB) error {
	ctx := context.Background()

	roleRepo := repository.NewRoleRepository(db)
	if err := roleRepo.Seed(ctx, []entity.Role{
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDHospital, RoleName: entity.RoleHospital},
		{ID: entity.RoleIDAuthority, RoleName: entity.RoleAuthority},
	}); err != nil {
		return err
	}

	if cfg.Authority.Username == "" {
		logrus.Warn("No authority account configured; administrative routes will be unreachable")
		return nil
	}

	userRepo := repository.NewUserRepository(db)
	existing, err := userRepo.FindByUsername(ctx, cfg.Authority.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if !validator.PasswordAllowed(cfg.Authority.Password, authorityPasswordMinLen) {
		return errors.New("authority password must be at least 10 characters of letters, numbers, and @$!%*?&")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Authority.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := cfg.Authority.Name
	if name == "" {
		name = "Health Authority"
	}

	authority := &entity.User{
		RoleID:   entity.RoleIDAuthority,
		Username: cfg.Authority.Username,
		Password: string(hashedPassword),
		Name:     name,
	}
	if err := userRepo.Create(ctx, authority); err != nil {
		return err
	}

	logrus.Infof("Authority account %q created", cfg.Authority.Username)
	return nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	bedRequestRepo := repository.NewBedRequestRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	sessionStore := service.NewRedisSessionStore(redisClient, log, cfg.Session.TTL)
	auditService := service.NewAuditService(log, auditRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, sessionStore, auditService)
	profileUsecase := usecase.NewProfileUsecase(log, userRepo, auditService)
	requestUsecase := usecase.NewRequestUsecase(log, userRepo, bedRequestRepo, auditService)
	adminUsecase := usecase.NewAdminUsecase(log, userRepo, auditRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, sessionStore, customValidator, cfg.Session.CookieName, cfg.Session.TTL)
	profileHandler := handler.NewProfileHandler(profileUsecase, customValidator)
	hospitalHandler := handler.NewHospitalHandler(requestUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(adminUsecase)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore, cfg.Session.CookieName)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, profileHandler, hospitalHandler, adminHandler, sessionMiddleware, corsMiddleware, log)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
