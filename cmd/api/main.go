package main

import (
	"database/sql"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/cleancart/cart-backend/internal/cart"
	"github.com/cleancart/cart-backend/internal/config"
	"github.com/cleancart/cart-backend/internal/coupon"
	"github.com/cleancart/cart-backend/internal/notification"
	"github.com/cleancart/cart-backend/internal/order"
	"github.com/cleancart/cart-backend/internal/product"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)

	db := mustOpenDB(cfg)
	defer db.Close()

	bootstrapSchema(db)

	notifications := notification.NewStore(notification.DefaultTTL)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService, notifications)

	cartRepo := cart.NewPostgresRepository(db)

	couponRepo := coupon.NewPostgresRepository(db)
	couponService := coupon.NewService(couponRepo, cartRepo)
	couponHandler := coupon.NewHandler(couponService, notifications)

	cartService := cart.NewService(cartRepo, productRepo, couponRepo)
	cartHandler := cart.NewHandler(cartService, notifications)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, cartService)
	orderHandler := order.NewHandler(orderService, notifications)

	notificationHandler := notification.NewHandler(notifications)

	seedCatalog(productRepo, couponRepo)

	// public surface first, then the JWT gate, then everything session-bound
	productHandler.RegisterPublicRoutes(app)
	couponHandler.RegisterPublicRoutes(app)

	setupJWT(app, cfg)

	productHandler.RegisterProtectedRoutes(app)
	couponHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	notificationHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func setupJWT(app *fiber.App, cfg config.Config) {
	secret := cfg.JWTSecret
	if secret == "" {
		secret = "dev-secret"
		log.Printf("warning: JWT_SECRET not set, using dev secret")
	}

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		Filter: func(c *fiber.Ctx) bool {
			p := c.Path()
			// shop browsing stays public; carts, orders and admin edits need a token
			if c.Method() == fiber.MethodGet &&
				(p == "/products" || p == "/coupons" || strings.HasPrefix(p, "/product/")) {
				return true
			}
			return p == "/dev/reset-products"
		},
	}))
}

func mustOpenDB(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func bootstrapSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            price INT NOT NULL DEFAULT 0,
            stock INT NOT NULL DEFAULT 0,
            description TEXT NOT NULL DEFAULT '',
            "isRecommended" BOOLEAN NOT NULL DEFAULT FALSE,
            discounts jsonb NOT NULL DEFAULT '[]'
        )`,
		`CREATE TABLE IF NOT EXISTS coupons (
            code TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            "discountType" TEXT NOT NULL,
            "discountValue" INT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            "userID" INT PRIMARY KEY,
            cart jsonb NOT NULL DEFAULT '[]',
            "couponCode" TEXT,
            "updatedAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            "orderID" SERIAL PRIMARY KEY,
            "orderNumber" TEXT NOT NULL,
            "userID" INT NOT NULL,
            cart jsonb NOT NULL DEFAULT '{}',
            "totalBeforeDiscount" INT NOT NULL DEFAULT 0,
            "totalAfterDiscount" INT NOT NULL DEFAULT 0,
            "couponCode" TEXT,
            "createdAt" TEXT
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

// seedCatalog inserts the sample products and coupons when the tables are
// empty, so a fresh database serves a browsable shop.
func seedCatalog(products *product.PostgresRepository, coupons *coupon.PostgresRepository) {
	existing, err := products.List()
	if err != nil {
		log.Printf("warning: could not check products for seeding: %v", err)
	} else if len(existing) == 0 {
		for _, p := range product.SampleProducts() {
			if _, err := products.Create(p); err != nil {
				log.Printf("warning: could not seed product %s: %v", p.ID, err)
			}
		}
	}

	existingCoupons, err := coupons.List()
	if err != nil {
		log.Printf("warning: could not check coupons for seeding: %v", err)
	} else if len(existingCoupons) == 0 {
		for _, c := range coupon.SampleCoupons() {
			if _, err := coupons.Create(c); err != nil {
				log.Printf("warning: could not seed coupon %s: %v", c.Code, err)
			}
		}
	}
}
