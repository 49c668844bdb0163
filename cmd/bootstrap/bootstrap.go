package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-telemedicine/config"
	deliveryHttp "go-telemedicine/internal/delivery/http"
	"go-telemedicine/internal/delivery/http/handler"
	"go-telemedicine/internal/delivery/http/middleware"
	domainRepo "go-telemedicine/internal/domain/repository"
	"go-telemedicine/internal/infrastructure/cache"
	"go-telemedicine/internal/infrastructure/database"
	"go-telemedicine/internal/infrastructure/mail"
	"go-telemedicine/internal/infrastructure/storage"
	"go-telemedicine/internal/repository"
	"go-telemedicine/internal/service"
	"go-telemedicine/internal/usecase"
	"go-telemedicine/pkg/hash"
	"go-telemedicine/pkg/jwt"
	"go-telemedicine/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	MongoClient *mongo.Client
	Server      *http.Server
}

// repositories groups the ledger stores selected by STORE_DRIVER
type repositories struct {
	doctor       domainRepo.DoctorRepository
	patient      domainRepo.PatientRepository
	consultation domainRepo.ConsultationRepository
	auditLog     domainRepo.AuditLogRepository
	session      domainRepo.SessionRepository
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{Log: logrus.StandardLogger()}

	setupLogger(app.Log)

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		app.Log.SetLevel(level)
	}
	app.Log.Info("Configuration loaded successfully")

	repos, err := app.initRepositories()
	if err != nil {
		app.Close()
		return nil, err
	}

	fileStore, err := app.initFileStore()
	if err != nil {
		app.Close()
		return nil, err
	}

	server, err := app.initializeServer(repos, fileStore)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(log *logrus.Logger) {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
}

func (app *App) initRepositories() (*repositories, error) {
	cfg := app.Config
	repos := &repositories{}

	switch cfg.Storage.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		app.Log.Info("Database connected successfully")

		repos.doctor = repository.NewDoctorRepository(db)
		repos.patient = repository.NewPatientRepository(db)
		repos.consultation = repository.NewConsultationRepository(db)
		repos.auditLog = repository.NewAuditLogRepository(db)
	case config.StoreDriverMemory:
		repos.doctor = repository.NewMemoryDoctorRepository()
		repos.patient = repository.NewMemoryPatientRepository()
		repos.consultation = repository.NewMemoryConsultationRepository()
		repos.auditLog = repository.NewMemoryAuditLogRepository()
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Storage.Driver)
	}

	switch cfg.Storage.SessionStore {
	case config.SessionStoreRedis:
		redisClient, err := cache.NewRedisClient(cfg.Redis, app.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		repos.session = repository.NewRedisSessionRepository(redisClient)
	case config.SessionStoreMemory:
		repos.session = repository.NewMemorySessionRepository()
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.Storage.SessionStore)
	}

	return repos, nil
}

func (app *App) initFileStore() (storage.FileStore, error) {
	cfg := app.Config

	switch cfg.Storage.FileStore {
	case config.FileStoreGridFS:
		client, bucket, err := storage.NewMongoClient(cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		app.MongoClient = client
		app.Log.Info("GridFS bucket ready")
		return storage.NewGridFSFileStore(bucket), nil
	case config.FileStoreLocal:
		store, err := storage.NewLocalFileStore(cfg.Storage.PrescriptionDir)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare %s: %w", cfg.Storage.PrescriptionDir, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown FILE_STORE %q", cfg.Storage.FileStore)
	}
}

// initializeServer wires usecases, handlers and middleware into the HTTP server
func (app *App) initializeServer(repos *repositories, fileStore storage.FileStore) (*http.Server, error) {
	cfg := app.Config
	log := app.Log

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	hasher := hash.NewBcryptHasher(cfg.App.BcryptCost)

	mailer := mail.NewNoopMailer()
	if cfg.SMTP.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
		log.Infof("Prescriptions will be mailed from %s", cfg.SMTP.From)
	}

	// Services
	auditService := service.NewAuditService(log, repos.auditLog)
	renderer := service.NewPrescriptionRenderer()

	// Usecases
	identityUsecase := usecase.NewIdentityUsecase(log, repos.doctor, repos.patient, hasher, auditService)
	sessionUsecase := usecase.NewSessionUsecase(log, repos.session, repos.doctor, repos.patient, jwtService, auditService)
	consultationUsecase := usecase.NewConsultationUsecase(log, repos.consultation, repos.doctor, repos.patient, auditService)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(log, repos.consultation, renderer, fileStore, mailer, auditService,
		usecase.PrescriptionConfig{
			RenderTimeout:  cfg.App.RenderTimeout,
			MaxUploadBytes: cfg.Storage.UploadMaxBytes,
			MailEnabled:    cfg.SMTP.Enabled(),
		})
	seedUsecase := usecase.NewSeedUsecase(log, repos.doctor, repos.patient, repos.consultation, hasher)

	seedUsecase.Seed(context.Background(), cfg.Seed)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, sessionUsecase, cfg.App.CookieSecure)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Handlers
	authHandler := handler.NewAuthHandler(log, identityUsecase, sessionUsecase, authMiddleware, customValidator)
	doctorHandler := handler.NewDoctorHandler(log, consultationUsecase)
	patientHandler := handler.NewPatientHandler(log, identityUsecase, consultationUsecase)
	prescriptionHandler := handler.NewPrescriptionHandler(log, prescriptionUsecase, cfg.Storage.UploadMaxBytes)
	auditLogHandler := handler.NewAuditLogHandler(auditService)

	router := deliveryHttp.NewRouter(
		authHandler,
		doctorHandler,
		patientHandler,
		prescriptionHandler,
		auditLogHandler,
		authMiddleware,
		cfg.App.StaticDir,
	)

	var httpHandler http.Handler = router.Setup()
	httpHandler = corsMiddleware.Handle(httpHandler)
	httpHandler = middleware.RequestLogger(log)(httpHandler)
	httpHandler = middleware.Recover(log)(httpHandler)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
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

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, mongo)
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

	if app.MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		app.MongoClient.Disconnect(ctx)
	}
}
