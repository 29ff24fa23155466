package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/classpulse/backend/pkg/validator"

	_ "github.com/classpulse/backend/docs"
	"github.com/classpulse/backend/internal/adapter/handler"
	"github.com/classpulse/backend/internal/adapter/repository"
	"github.com/classpulse/backend/internal/infrastructure/cache"
	"github.com/classpulse/backend/internal/infrastructure/database"
	"github.com/classpulse/backend/internal/infrastructure/external/oauth"
	"github.com/classpulse/backend/internal/infrastructure/storage"
	"github.com/classpulse/backend/internal/usecase/attendance"
	"github.com/classpulse/backend/internal/usecase/auth"
	"github.com/classpulse/backend/internal/usecase/course"
	"github.com/classpulse/backend/internal/usecase/engagement"
	"github.com/classpulse/backend/internal/usecase/lecture"
	"github.com/classpulse/backend/internal/usecase/live"
	"github.com/classpulse/backend/internal/usecase/student"
	"github.com/classpulse/backend/pkg/config"
	"github.com/classpulse/backend/pkg/detection"
	"github.com/classpulse/backend/pkg/jwt"
)

// @title           ClassPulse API
// @version         1.0
// @description     Classroom management backend: live-session activity relay, attendance, engagement scoring, and lecture lifecycle.

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize cache store: Redis in production, in-memory fallback
	var store cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(&cfg.Redis, cfg.GetRedisAddr(), logger)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		log.Println("📦 Redis disabled; using in-memory cache store")
		store = cache.NewMemoryStore()
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	lectureRepo := repository.NewLectureRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)

	// Initialize OAuth provider
	var googleProvider *oauth.GoogleProvider
	if cfg.OAuth.Google.Enabled {
		log.Println("🔐 Initializing Google OAuth provider...")
		googleProvider = oauth.NewGoogleProvider(
			cfg.OAuth.Google.ClientID,
			cfg.OAuth.Google.ClientSecret,
			cfg.OAuth.Google.RedirectURL,
		)
	} else {
		log.Println("🔐 Google OAuth disabled; credentials login only")
	}

	// State manager for OAuth CSRF protection
	stateManager := oauth.NewStateManager(store)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize services
	log.Println("✨ Initializing services...")
	authService := auth.NewService(userRepo, sessionRepo, googleProvider, stateManager, jwtManager)
	courseService := course.NewService(courseRepo, studentRepo, userRepo, logger)
	studentService := student.NewService(studentRepo, logger)
	attendanceService := attendance.NewService(attendanceRepo, lectureRepo, studentRepo, courseRepo, cfg.Live.LateGracePeriod, logger)
	engagementService := engagement.NewService(engagementRepo, lectureRepo, studentRepo, store, logger)

	// Detection upstream client
	detector := detection.NewClient(&cfg.Detection)
	if cfg.Detection.UseMock {
		log.Println("⚠️  Detection client running in MOCK mode (no real detector needed)")
	} else {
		log.Printf("✅ Detection upstream: %s", cfg.Detection.BaseURL)
	}

	// Live pipeline: relay, per-lecture feed, frame ingestion
	log.Println("📡 Initializing live relay service...")
	liveService := live.NewService(&cfg.Live, detector, lectureRepo, studentRepo, attendanceService, engagementService, logger)

	sweepCtx, stopSweepers := context.WithCancel(context.Background())
	defer stopSweepers()
	liveService.StartSweepers(sweepCtx, cfg.Live.SweepInterval, cfg.Live.SessionTTL)

	lectureService := lecture.NewService(lectureRepo, courseRepo, attendanceService, liveService, logger)

	// Snapshot storage (optional)
	var snapshotHandler *handler.Snapshot
	if cfg.Storage.Enabled {
		log.Println("🗄️  Initializing snapshot storage...")
		snapshotStore, err := storage.NewSnapshotStore(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize snapshot storage: %v", err)
		}
		snapshotHandler = handler.NewSnapshot(snapshotStore, logger)
	} else {
		log.Println("🗄️  Snapshot storage disabled (STORAGE_ENABLED=false)")
	}

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	authHandler := handler.NewAuth(authService, logger)
	courseHandler := handler.NewCourse(courseService, logger)
	studentHandler := handler.NewStudent(studentService, logger)
	lectureHandler := handler.NewLecture(lectureService, logger)
	attendanceHandler := handler.NewAttendance(attendanceService, logger)
	engagementHandler := handler.NewEngagement(engagementService, logger)
	liveHandler := handler.NewLive(liveService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		authService,
		authHandler,
		courseHandler,
		studentHandler,
		lectureHandler,
		attendanceHandler,
		engagementHandler,
		liveHandler,
		snapshotHandler,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	stopSweepers()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
