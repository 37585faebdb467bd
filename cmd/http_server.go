package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/auth"
	authPostgres "github.com/frahmantamala/ld-portal/internal/auth/postgres"
	"github.com/frahmantamala/ld-portal/internal/certificate"
	certificatePostgres "github.com/frahmantamala/ld-portal/internal/certificate/postgres"
	"github.com/frahmantamala/ld-portal/internal/core/events"
	"github.com/frahmantamala/ld-portal/internal/enrollment"
	enrollmentPostgres "github.com/frahmantamala/ld-portal/internal/enrollment/postgres"
	"github.com/frahmantamala/ld-portal/internal/gamification"
	gamificationPostgres "github.com/frahmantamala/ld-portal/internal/gamification/postgres"
	"github.com/frahmantamala/ld-portal/internal/profile"
	profilePostgres "github.com/frahmantamala/ld-portal/internal/profile/postgres"
	"github.com/frahmantamala/ld-portal/internal/report"
	reportPostgres "github.com/frahmantamala/ld-portal/internal/report/postgres"
	"github.com/frahmantamala/ld-portal/internal/training"
	trainingPostgres "github.com/frahmantamala/ld-portal/internal/training/postgres"
	"github.com/frahmantamala/ld-portal/internal/transport"
	"github.com/frahmantamala/ld-portal/internal/transport/middleware"
	"github.com/frahmantamala/ld-portal/internal/transport/rest"
	"github.com/frahmantamala/ld-portal/internal/transport/swagger"
	"github.com/frahmantamala/ld-portal/internal/user"
	userPostgres "github.com/frahmantamala/ld-portal/internal/user/postgres"
	"github.com/frahmantamala/ld-portal/pkg/logger"
	"github.com/frahmantamala/ld-portal/pkg/monitoring"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

// Dependencies are the process wide resources shared by every handler.
type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Bus    *events.EventBus
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	monitoring.Init()
	gamification.NewEventHandler(deps.Logger).RegisterEventHandlers(deps.Bus)

	if path := deps.Config.Server.OpenAPIPath; path != "" {
		if _, err := swagger.LoadSpec(context.Background(), path); err != nil {
			deps.Logger.Error("openapi spec rejected", "error", err)
			os.Exit(1)
		}
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		// let in-flight event handlers finish before the pool goes away
		deps.Bus.Wait()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

// NewRouter wires repositories, services and handlers onto a chi router.
func NewRouter(deps *Dependencies) chi.Router {
	cfg := deps.Config
	lg := deps.Logger
	db := deps.Gorm

	userService := user.NewService(userPostgres.NewUserRepository(db), cfg.Security.BCryptCost, lg)
	authService := auth.NewService(
		authPostgres.NewRepository(db),
		auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenTTL()),
		lg,
	)

	enrollmentRepo := enrollmentPostgres.NewEnrollmentRepository(db)
	trainingRepo := trainingPostgres.NewTrainingRepository(db)
	trainingService := training.NewService(trainingRepo, enrollmentRepo, lg)

	profileService := profile.NewService(profilePostgres.NewProfileRepository(db), userService, lg)
	certificateService := certificate.NewService(certificatePostgres.NewCertificateRepository(db), lg)
	badgeService := gamification.NewBadgeService(gamificationPostgres.NewBadgeRepository(db), certificateService, lg)
	quizService := gamification.NewQuizService(gamificationPostgres.NewQuizRepository(db), trainingService, lg)

	enrollmentService := enrollment.NewService(
		enrollmentRepo,
		trainingRepo,
		enrollmentPostgres.NewCompletionTransactor(db, lg),
		deps.Bus,
		lg,
	)

	reportService := report.NewService(reportPostgres.NewReportRepository(deps.DB), lg)

	base := transport.NewBaseHandler(lg)
	handlers := rest.Handlers{
		Auth:         auth.NewHandler(base, authService),
		User:         user.NewHandler(base, userService),
		Training:     training.NewHandler(base, trainingService),
		Enrollment:   enrollment.NewHandler(base, enrollmentService),
		Profile:      profile.NewHandler(base, profileService, auth.NewABACPolicy(userService)),
		Gamification: gamification.NewHandler(base, quizService, badgeService),
		Certificate:  certificate.NewHandler(base, certificateService),
		Report:       report.NewHandler(base, reportService),
	}

	var limiter *middleware.IPRateLimiter
	if cfg.Security.LoginRateLimit > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.Security.LoginRateLimit, cfg.Security.LoginBurst, cfg.Security.LoginLimiterTTL)
	}

	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, deps.DB.DB, handlers, auth.NewRBACAuthorization(auth.NewRoleChecker(), lg), rest.Options{
		AllowedOrigins: cfg.Server.Origins(),
		OpenAPIPath:    cfg.Server.OpenAPIPath,
		MetricsPath:    metricsPath,
		LoginLimiter:   limiter,
	})
	return router
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := setupLogger(config)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		DB:     db,
		Gorm:   gdb,
		Bus:    events.NewEventBus(lg),
		Logger: lg,
	}, nil
}

func setupLogger(cfg *internal.Config) *slog.Logger {
	lc := cfg.Observability.Logging
	return logger.Setup(logger.Options{
		Level:      lc.Level,
		Format:     lc.Format,
		File:       lc.File,
		MaxSizeMB:  lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAgeDays: lc.MaxAgeDays,
	})
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm shares the sqlx pool with gorm so both see the same connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
}
