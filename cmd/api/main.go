package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"moviereview/internal/cache"
	"moviereview/internal/data"
	"moviereview/internal/mailer"
)

type rateLimitConfig struct {
	rps      float64
	burst    int
	disabled bool
}

type dbConfig struct {
	dsn             string
	maxOpenConns    int
	maxIdleConns    int
	maxIdleLifeTime string
}

type cacheConfig struct {
	redisAddr     string
	redisPassword string
	ttl           time.Duration
}

type smtp struct {
	host     string
	port     int
	username string
	password string
	sender   string
}

type config struct {
	port    int
	env     string
	db      dbConfig
	cache   cacheConfig
	limiter rateLimitConfig
	smtp    smtp
}

type application struct {
	config config
	logger *slog.Logger
	models data.Models
	mailer mailer.Mailer
	cache  *cache.Cache
	wg     sync.WaitGroup
}

var (
	version   = "1.0.0"
	buildTime string
)

// httpErrorHandler shapes every error response as {"message": ...}, the one
// body format clients are promised for non-2xx answers.
func httpErrorHandler(err error, c echo.Context) {
	var status int
	var message interface{}

	switch e := err.(type) {
	case *echo.HTTPError:
		status = e.Code
		message = e.Message
	default:
		status = http.StatusInternalServerError
		message = "the server encountered a problem and could not process your request"
	}

	if !c.Response().Committed {
		c.JSON(status, map[string]interface{}{"message": message})
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	port, _ := strconv.Atoi(os.Getenv("PORT"))
	rps, _ := strconv.ParseFloat(os.Getenv("RPS"), 64)
	burst, _ := strconv.Atoi(os.Getenv("BURST"))
	disabled, _ := strconv.ParseBool(os.Getenv("DISABLED"))
	cacheTTL, _ := time.ParseDuration(os.Getenv("CACHE_TTL"))
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	cfg := config{
		port: port,
		db: dbConfig{
			dsn:             os.Getenv("DSN"),
			maxOpenConns:    25,
			maxIdleConns:    25,
			maxIdleLifeTime: "15m",
		},
		cache: cacheConfig{
			redisAddr:     os.Getenv("REDIS_ADDR"),
			redisPassword: os.Getenv("REDIS_PASSWORD"),
			ttl:           cacheTTL,
		},
		limiter: rateLimitConfig{
			rps:      rps,
			burst:    burst,
			disabled: disabled,
		},
		smtp: smtp{
			host:     os.Getenv("SMTP_HOST"),
			port:     smtpPort,
			username: os.Getenv("SMTP_USERNAME"),
			password: os.Getenv("SMTP_PASSWORD"),
			sender:   os.Getenv("SMTP_SENDER"),
		},
	}
	flag.StringVar(&cfg.env, "env", "development", "Environment(development|staging|production)")
	displayVersion := flag.Bool("version", false, "Display version and exit")
	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		fmt.Printf("Build time:\t%s\n", buildTime)
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := openDB(cfg)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connection pool established")

	app := &application{
		config: cfg,
		logger: logger,
		models: data.NewModels(db),
		mailer: mailer.New(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password, cfg.smtp.sender),
		cache:  cache.New(openRedis(cfg, logger), cfg.cache.ttl),
	}

	e := echo.New()

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:        true,
		LogURI:           true,
		LogError:         true,
		LogMethod:        true,
		LogContentLength: true,
		HandleError:      true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				logger.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("content_length", v.ContentLength),
					slog.String("err", v.Error.Error()),
				)
			} else {
				logger.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("content_length", v.ContentLength),
				)
			}
			return nil
		},
	}))

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return cfg.limiter.disabled
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(cfg.limiter.rps), Burst: cfg.limiter.burst, ExpiresIn: 3 * time.Minute},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{"message": "Forbidden"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "Too many requests"})
		},
	}

	e.Use(echoprometheus.NewMiddleware("moviereview"))
	e.GET("/metrics", echoprometheus.NewHandler())

	e.Use(app.CustomRecover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))
	e.Use(middleware.CORS())
	e.Use(app.Authenticate())

	e.HTTPErrorHandler = httpErrorHandler
	app.routes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal(err)
	}

	logger.Info("completing background tasks...")
	app.wg.Wait()
}

func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConns)
	db.SetMaxIdleConns(cfg.db.maxIdleConns)

	duration, err := time.ParseDuration(cfg.db.maxIdleLifeTime)
	if err != nil {
		return nil, err
	}

	db.SetConnMaxLifetime(duration)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// openRedis connects the response cache. A missing or unreachable Redis is
// not fatal: the cache degrades to a pass-through.
func openRedis(cfg config, logger *slog.Logger) *redis.Client {
	if cfg.cache.redisAddr == "" {
		logger.Info("response cache disabled, no REDIS_ADDR configured")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.cache.redisAddr,
		Password: cfg.cache.redisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("response cache disabled, redis unreachable", "err", err.Error())
		return nil
	}

	logger.Info("response cache connected")
	return client
}
