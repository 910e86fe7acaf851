package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/booktrack/internal/handlers"
	"github.com/sbilibin2017/booktrack/internal/jwt"
	"github.com/sbilibin2017/booktrack/internal/logger"
	"github.com/sbilibin2017/booktrack/internal/middlewares"
	"github.com/sbilibin2017/booktrack/internal/repositories"
	"github.com/sbilibin2017/booktrack/internal/services"
	"github.com/sbilibin2017/booktrack/migrations"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const shutdownTimeout = 10 * time.Second

// config holds everything read from the environment.
type config struct {
	AppHost     string
	AppPort     string
	LogLevel    string
	LogEncoding string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	JWTSecretKey string
	JWTExpSecond int

	KafkaBrokers []string
	KafkaTopic   string

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// @title BookTrack API
// @version 1.0.0
// @description Personal reading list: books, reading status and collection statistics
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, JWT, Kafka and rate limit configuration.
// Variables already set in the environment win over the file.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogEncoding = getEnv("APP_LOG_ENCODING", "json")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "booktrack")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "86400"); err != nil {
		return
	}

	// Kafka config, no brokers disables publishing
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "book-events")

	// Rate limit for /api/auth
	if cfg.AuthRateLimitRPS, err = strconv.ParseFloat(getEnv("AUTH_RATE_LIMIT_RPS", "1"), 64); err != nil {
		err = fmt.Errorf("AUTH_RATE_LIMIT_RPS: %w", err)
		return
	}
	if cfg.AuthRateLimitBurst, err = getInt("AUTH_RATE_LIMIT_BURST", "10"); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Kafka writer and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, cfg.LogEncoding); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}

	if err := applyMigrations(ctx, db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Kafka writer, left nil when no brokers are configured
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infow("Kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           newRouter(ctxShutdown, cfg, db, tokens, kafkaWriter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// applyMigrations brings the schema up to date before the server accepts traffic.
func applyMigrations(ctx context.Context, db *sqlx.DB) error {
	group, err := migrations.BringUpToDate(ctx, db.DB)
	if err != nil {
		return err
	}
	if group.IsZero() {
		logger.Log.Info("Database schema is up to date")
		return nil
	}
	logger.Log.Infow("Applied migrations", "group", group.String())
	return nil
}

// newRouter wires repositories, services and handlers into the HTTP routes.
// ctx bounds background work started by middlewares.
func newRouter(
	ctx context.Context,
	cfg config,
	db *sqlx.DB,
	tokens *jwt.JWT,
	kafkaWriter services.KafkaWriter,
) http.Handler {
	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	bookReadRepo := repositories.NewBookReadRepository(db, middlewares.GetTxFromContext)
	bookWriteRepo := repositories.NewBookWriteRepository(db, middlewares.GetTxFromContext)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens)
	bookService := services.NewBookService(bookReadRepo, bookWriteRepo, kafkaWriter)

	userID := middlewares.UserIDFromContext

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	verifyHandler := handlers.NewVerifyHandler(authService, userID)
	createBookHandler := handlers.NewCreateBookHandler(bookService, userID)
	listBooksHandler := handlers.NewListBooksHandler(bookService, userID)
	statisticsHandler := handlers.NewStatisticsHandler(bookService, userID)
	getBookHandler := handlers.NewGetBookHandler(bookService, userID)
	updateBookHandler := handlers.NewUpdateBookHandler(bookService, userID)
	deleteBookHandler := handlers.NewDeleteBookHandler(bookService, userID)
	notFoundHandler := handlers.NewNotFoundHandler()

	authMiddleware := middlewares.AuthMiddleware(tokens)
	txMiddleware := middlewares.TxMiddleware(db)
	bookIDPattern := "/{" + handlers.BookIDParam + "}"

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	r.Get("/health", handlers.NewHealthHandler(time.Now))

	// Public routes, rate limited per client IP
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(middlewares.RateLimitMiddleware(ctx, cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst))
		r.Post("/register", registerHandler)
		r.Post("/login", loginHandler)
		r.With(authMiddleware).Get("/verify", verifyHandler)
	})

	// Protected routes with JWT middleware
	r.Route("/api/books", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", createBookHandler)
		r.Get("/", listBooksHandler)
		r.Get("/statistics", statisticsHandler)
		r.Get(bookIDPattern, getBookHandler)
		r.With(txMiddleware).Put(bookIDPattern, updateBookHandler)
		r.With(txMiddleware).Delete(bookIDPattern, deleteBookHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	return r
}
