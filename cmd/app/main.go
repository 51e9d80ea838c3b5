package main

import (
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/chaow95/storefront-backend/internal/cart"
	"github.com/chaow95/storefront-backend/internal/catalog"
	"github.com/chaow95/storefront-backend/internal/category"
	"github.com/chaow95/storefront-backend/internal/checkout"
	"github.com/chaow95/storefront-backend/internal/config"
	"github.com/chaow95/storefront-backend/internal/embedding"
	"github.com/chaow95/storefront-backend/internal/order"
	"github.com/chaow95/storefront-backend/internal/seller"
	"github.com/chaow95/storefront-backend/internal/user"
	"github.com/chaow95/storefront-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "storefront-backend",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	db := mustOpenDB(cfg, log)
	defer db.Close()

	if err := runMigrations(db, cfg.MigrationsDir); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(log))

	// catalog reads go through redis when an address is configured
	var catalogRepo catalog.Repository = catalog.NewPostgresRepository(db)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		catalogRepo = catalog.NewCachedRepository(catalogRepo, rdb, cfg.CacheTTL, log)
	}

	embedder := embedding.NewHTTPClient(cfg.EmbeddingsURL, cfg.EmbeddingsAPIKey, cfg.EmbedTimeout)
	catalogService := catalog.NewService(catalogRepo, embedder)

	userService := user.NewService(user.NewPostgresRepository(db))

	cartManager := cart.NewManager()
	orderRepo := order.NewPostgresRepository(db)
	orchestrator := checkout.NewOrchestrator(orderRepo, cartManager, checkout.Config{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
		TaxRate:               cfg.TaxRate,
		Timeout:               cfg.CheckoutTimeout,
	}, log)

	userHandler := user.NewHandler(userService, cfg.JWTSecret, cartManager, orchestrator)
	catalogHandler := catalog.NewHandler(catalogService)
	categoryHandler := category.NewHandler(category.NewPostgresRepository(db))
	cartHandler := cart.NewHandler(cartManager, catalogService)
	orderHandler := order.NewHandler(order.NewService(orderRepo))
	checkoutHandler := checkout.NewHandler(orchestrator)
	sellerHandler := seller.NewHandler(seller.NewService(seller.NewPostgresRepository(db)), userService)

	// public routes go on before the JWT middleware
	userHandler.RegisterPublicRoutes(app)
	catalogHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)
	sellerHandler.RegisterProtectedRoutes(app)

	log.Info("listening", "addr", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug("request",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start))
		return err
	}
}

func mustOpenDB(cfg config.Config, log *slog.Logger) *sql.DB {
	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Error("open database", "err", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Error("ping database", "err", err)
		os.Exit(1)
	}

	return db
}

func runMigrations(db *sql.DB, dir string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
