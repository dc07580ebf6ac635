package main

import (
	"context"
	"log"
	"time"
	_ "time/tzdata"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/rivaleats-api/auth"
	"github.com/junaidrashid-git/rivaleats-api/checkout"
	"github.com/junaidrashid-git/rivaleats-api/config"
	adminController "github.com/junaidrashid-git/rivaleats-api/controllers/admin"
	menuControllers "github.com/junaidrashid-git/rivaleats-api/controllers/menu"
	orderControllers "github.com/junaidrashid-git/rivaleats-api/controllers/order"
	subscribeControllers "github.com/junaidrashid-git/rivaleats-api/controllers/subscribe"
	"github.com/junaidrashid-git/rivaleats-api/monitoring"
	"github.com/junaidrashid-git/rivaleats-api/notify"
	"github.com/junaidrashid-git/rivaleats-api/routes"
	"github.com/junaidrashid-git/rivaleats-api/store"
)

const sessionTTL = 12 * time.Hour

func main() {
	log.Println("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	rules, err := cfg.Rules()
	if err != nil {
		log.Fatalf("❌ Invalid checkout rules: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("❌ Invalid BUSINESS_TIMEZONE: %v", err)
	}
	engine := checkout.NewEngine(rules, checkout.NewZoneClock(loc, nil))

	var (
		orders      store.OrderStore
		menu        store.MenuStore
		subscribers store.SubscriberStore
		admins      store.AdminStore
	)
	if cfg.DatabaseConfigured() {
		db, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		orders, menu, subscribers, admins = db, db, db, db
		log.Println("✅ Database ready")
	} else {
		log.Println("⚠️ No database configured, orders and signups run in dry-run mode")
	}

	var issuer *auth.Issuer
	if cfg.JWTSecret != "" {
		if issuer, err = auth.NewIssuer(cfg.JWTSecret, sessionTTL); err != nil {
			log.Fatalf("❌ Invalid JWT_SECRET: %v", err)
		}
	} else {
		log.Println("⚠️ JWT_SECRET not set, admin routes are disabled")
	}

	var verifier auth.IDTokenVerifier
	if cfg.FirebaseCredentialsJSON != "" || cfg.FirebaseProjectID != "" {
		fv, err := auth.NewFirebaseVerifier(context.Background(), cfg.FirebaseCredentialsJSON, cfg.FirebaseProjectID)
		if err != nil {
			log.Printf("❌ Firebase init failed, admin login disabled: %v", err)
		} else {
			verifier = fv
		}
	}

	feed := orderControllers.NewFeed()
	notifiers := notify.Fanout{feed}
	if cfg.RabbitMQURL != "" {
		pool, err := notify.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize)
		if err != nil {
			log.Printf("❌ RabbitMQ unavailable, events are not published: %v", err)
		} else {
			defer pool.Close()
			notifiers = append(notifiers, notify.NewRabbitPublisher(pool, cfg.RabbitMQQueue))
		}
	}

	metrics := monitoring.NewMetrics()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{SkipPaths: []string{routes.OrderFeedPath}}), gin.Recovery())
	r.MaxMultipartMemory = 32 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Export-Truncated"},
		AllowCredentials: !allowsAnyOrigin(cfg.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		Orders: &orderControllers.Handler{
			Engine:   engine,
			Orders:   orders,
			Notifier: notifiers,
			Metrics:  metrics,
		},
		Feed: feed,
		Menu: menuControllers.NewHandler(menu),
		Subscribe: &subscribeControllers.Handler{
			Subscribers: subscribers,
			Notifier:    notifiers,
			Metrics:     metrics,
		},
		Admins: &adminController.Handler{Admins: admins},
		Login: &auth.LoginHandler{
			Verifier:        verifier,
			Admins:          admins,
			Issuer:          issuer,
			SuperAdminEmail: cfg.SuperAdminEmail,
		},
		Issuer:  issuer,
		Metrics: metrics,
		APIKey:  cfg.AdminAPIKey,
	})

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
