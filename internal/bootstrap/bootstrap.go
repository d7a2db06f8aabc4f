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

	appAuth "github.com/edutrack/schoolms/internal/app/auth"
	appControllers "github.com/edutrack/schoolms/internal/app/controllers"
	appMigrations "github.com/edutrack/schoolms/internal/app/migrations"
	appRepos "github.com/edutrack/schoolms/internal/app/repositories"
	appRoutes "github.com/edutrack/schoolms/internal/app/routes"
	appServices "github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/config"
	"github.com/edutrack/schoolms/internal/db"
	appMiddleware "github.com/edutrack/schoolms/internal/middleware"
	pkgAuth "github.com/edutrack/schoolms/internal/pkg/auth"
	"github.com/edutrack/schoolms/internal/pkg/email"
	"github.com/edutrack/schoolms/internal/pkg/filestorage"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
	"github.com/edutrack/schoolms/internal/pkg/logger"
	"github.com/edutrack/schoolms/internal/pkg/websocket"
	"github.com/edutrack/schoolms/internal/seed"
)

const (
	mailSendTimeout      = 30 * time.Second
	tokenCleanupInterval = time.Hour
	// CSV imports may be larger than images
	importSizeFactor = 5
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	AuthzService   *appAuth.AuthorizationService
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Hub            *websocket.Hub
	Logger         zerolog.Logger
}

// ConfigPath returns the YAML config location, overridable with SCHOOLMS_CONFIG
func ConfigPath() string {
	if p := os.Getenv("SCHOOLMS_CONFIG"); p != "" {
		return p
	}
	return filepath.Join("configs", "config.yaml")
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	baseURL := strings.TrimRight(cfg.Server.PublicBaseURL, "/") + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	notifier, err := email.NewNotifier(email.Config{
		Provider:       cfg.Mail.Provider,
		FromName:       cfg.Mail.FromName,
		FromEmail:      cfg.Mail.FromEmail,
		LoginURL:       cfg.Mail.LoginURL,
		SMTPHost:       cfg.Mail.SMTPHost,
		SMTPPort:       cfg.Mail.SMTPPort,
		SMTPUsername:   cfg.Mail.SMTPUsername,
		SMTPPassword:   cfg.Mail.SMTPPassword,
		SMTPUseTLS:     cfg.Mail.SMTPUseTLS,
		SendGridAPIKey: cfg.Mail.SendGridAPIKey,
	}, logger.Component("mail"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mail notifier: %w", err)
	}

	deps.Hub = websocket.NewHub(logger.Component("events"))

	serviceDeps := appServices.DepsFromRepositories(database, deps.Repos)
	serviceDeps.Notifier = email.NewAsyncNotifier(notifier, mailSendTimeout, lgr)
	serviceDeps.Events = deps.Hub
	serviceDeps.Policy = appServices.Policy{
		PasswordLength:  cfg.Registration.PasswordLength,
		MaxVoucherBatch: cfg.Registration.MaxVoucherBatch,
		ImportMaxRows:   cfg.Import.MaxRows,
		ImportMinAge:    cfg.Import.MinAge,
		ImportMaxAge:    cfg.Import.MaxAge,
	}
	serviceDeps.Logger = lgr

	maxUpload := int64(cfg.Server.MaxUploadMB) << 20
	deps.Services = appServices.NewServices(serviceDeps, deps.JWTService, deps.FileStorage, maxUpload)

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.SchoolRepository)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	if err := appMiddleware.RegisterValidator(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	svcs := deps.Services
	deps.Controllers = &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(svcs.Auth, lgr),
		School:       appControllers.NewSchoolController(svcs.School),
		Programme:    appControllers.NewProgrammeController(svcs.Programme),
		Subject:      appControllers.NewSubjectController(svcs.Subject),
		Class:        appControllers.NewClassController(svcs.Class),
		Academic:     appControllers.NewAcademicController(svcs.Academic),
		Student:      appControllers.NewStudentController(svcs.Student, maxUpload*importSizeFactor, lgr),
		Teacher:      appControllers.NewTeacherController(svcs.Teacher),
		Guardian:     appControllers.NewGuardianController(svcs.Guardian),
		Voucher:      appControllers.NewVoucherController(svcs.Voucher),
		Registration: appControllers.NewRegistrationController(svcs.Registration, lgr),
		Dashboard:    appControllers.NewDashboardController(svcs.Dashboard),
		Events: websocket.NewHandler(
			deps.Hub,
			websocket.NewUpgrader(cfg.Server.AllowedOrigins),
			subscriberFromContext,
			logger.Component("events"),
		),
	}

	return deps, nil
}

// subscriberFromContext reads the caller and the school resolved by SchoolScope
func subscriberFromContext(c *gin.Context) (websocket.Subscriber, bool) {
	p, ok := appMiddleware.GetPrincipal(c)
	if !ok {
		return websocket.Subscriber{}, false
	}
	schoolID := appMiddleware.SchoolID(c)
	if schoolID == 0 {
		return websocket.Subscriber{}, false
	}
	return websocket.Subscriber{UserID: p.UserID, SchoolID: schoolID}, true
}

// SeedDefaultData creates the superuser and the optional demo school.
// Failures are logged; startup continues.
func SeedDefaultData(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	err := seed.CreateDefaultData(ctx, deps.Services,
		seed.Stores{Users: deps.Repos.UserRepository, Schools: deps.Repos.SchoolRepository},
		seed.Options{
			SuperuserUsername: cfg.Seed.SuperuserUsername,
			SuperuserPassword: cfg.Seed.SuperuserPassword,
			SuperuserEmail:    cfg.Seed.SuperuserEmail,
			DemoSchool:        cfg.Seed.DemoSchool,
		}, deps.Logger)
	if err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// StartBackground runs the event hub and the expired-token cleanup until ctx ends.
func StartBackground(ctx context.Context, deps *Dependencies) {
	go deps.Hub.Run(ctx)
	go cleanupTokens(ctx, deps.Services.Auth, tokenCleanupInterval, deps.Logger)
}

func cleanupTokens(ctx context.Context, authService *appServices.AuthService, interval time.Duration, lgr zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := authService.CleanupExpiredTokens(ctx)
			if err != nil {
				lgr.Error().Err(err).Msg("Failed to clean up expired tokens")
				continue
			}
			if n > 0 {
				lgr.Info().Int64("removed", n).Msg("Expired tokens cleaned up")
			}
		}
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, health appRoutes.HealthCheck, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.MaxMultipartMemory = (int64(cfg.Server.MaxUploadMB) << 20) * importSizeFactor
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(logger.Component("http")),
		gin.Recovery(),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, health)

	return router
}
