package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"

	"summit-ticketing/internal/auth"
	authapi "summit-ticketing/internal/auth/api"
	"summit-ticketing/internal/config"
	"summit-ticketing/internal/contact"
	contactapi "summit-ticketing/internal/contact/api"
	"summit-ticketing/internal/content"
	contentapi "summit-ticketing/internal/content/api"
	contentdb "summit-ticketing/internal/content/db"
	"summit-ticketing/internal/database"
	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/middleware"
	"summit-ticketing/internal/order"
	orderapi "summit-ticketing/internal/order/api"
	orderdb "summit-ticketing/internal/order/db"
	orderkafka "summit-ticketing/internal/order/kafka"
	"summit-ticketing/internal/order/qr"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	// --- PostgreSQL ---
	bunDB, err := database.Connect(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("STARTUP", fmt.Sprintf("Failed to connect to Postgres: %v", err))
	}
	defer bunDB.Close()

	if err := database.Migrate(ctx, bunDB, cfg, log); err != nil {
		log.Fatal("STARTUP", fmt.Sprintf("Migration failed: %v", err))
	}

	// --- Redis (rate limiting only; absence degrades to a local window) ---
	var redisClient *redis.Client
	rc := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := rc.Ping(ctx).Err(); err != nil {
		log.Warn("STARTUP", fmt.Sprintf("Redis unavailable at %s, using local rate limit windows: %v", cfg.Redis.Addr, err))
	} else {
		redisClient = rc
		log.Info("STARTUP", "Redis connected")
	}

	// --- Kafka order events ---
	var events order.EventPublisher
	if cfg.Kafka.Enabled {
		producer := orderkafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic, cfg.Kafka.MockMode, log)
		defer producer.Close()
		events = producer
	}

	// --- Payment provider ---
	var payments order.PaymentClient
	if cfg.PaymentConfigured() {
		payments = order.NewRazorpayClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, log)
		log.Info("STARTUP", "Razorpay payment links enabled")
	} else {
		log.Warn("STARTUP", "Payment provider not configured, orders run in test mode")
	}

	// --- Services ---
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime)
	authService := auth.NewService(&auth.DB{Bun: bunDB}, tokens, log)
	orderService := order.NewOrderService(&orderdb.DB{Bun: bunDB}, payments, events, log,
		cfg.Razorpay.KeySecret, cfg.Frontend.BackendURL, cfg.Frontend.BaseURL)
	contentService := content.NewContentService(&contentdb.DB{Bun: bunDB}, log)
	contactService := contact.NewContactService(&contact.DB{Bun: bunDB}, log)

	// --- Handlers ---
	authHandler := authapi.NewHandler(authService, log, cfg.IsProduction())
	orderHandler := orderapi.NewHandler(orderService, qr.NewGenerator(cfg.Auth.JWTSecret), log, cfg.Frontend.BaseURL)
	contentHandler := contentapi.NewHandler(contentService, log)
	contactHandler := contactapi.NewHandler(contactService, log)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, redisClient, log)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Frontend.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Admin-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(rateLimiter.Handler)

	// Public routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/event", contentHandler.GetEvent)
		r.Get("/packages", contentHandler.ListPackages)
		r.Get("/speakers", contentHandler.ListSpeakers)
		r.Get("/content", contentHandler.ListContent)
		r.Get("/content/{section}", contentHandler.GetContent)
		r.Get("/contact-info", contentHandler.GetContactInfo)
		r.Post("/contact", contactHandler.Submit)

		r.Post("/orders", orderHandler.CreateOrder)
		r.Post("/verify-payment", orderHandler.VerifyPayment)
		r.Get("/payment-success", orderHandler.PaymentSuccess)
		r.Post("/razorpay-webhook", orderHandler.Webhook)

		r.Post("/admin/login", authHandler.Login)
		r.Post("/admin/logout", authHandler.Logout)

		// Admin routes behind the token gate
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.Middleware(tokens, log))

			r.Get("/me", authHandler.Me)

			r.Get("/orders", orderHandler.ListOrders)
			r.Get("/orders/{orderId}/pass", orderHandler.OrderPass)

			r.Get("/packages", contentHandler.ListAllPackages)
			r.Post("/packages", contentHandler.CreatePackage)
			r.Put("/packages/{id}", contentHandler.UpdatePackage)
			r.Delete("/packages/{id}", contentHandler.DeletePackage)

			r.Get("/speakers", contentHandler.ListAllSpeakers)
			r.Post("/speakers", contentHandler.CreateSpeaker)
			r.Put("/speakers/{id}", contentHandler.UpdateSpeaker)
			r.Delete("/speakers/{id}", contentHandler.DeleteSpeaker)

			r.Post("/stats", contentHandler.CreateStat)
			r.Put("/stats/{id}", contentHandler.UpdateStat)
			r.Delete("/stats/{id}", contentHandler.DeleteStat)

			r.Put("/content", contentHandler.SaveContent)
			r.Put("/contact-info", contentHandler.SaveContactInfo)
			r.Put("/event", contentHandler.SaveEvent)

			r.Get("/contact-forms", contactHandler.List)
			r.Get("/contact-forms/export", contactHandler.Export)
			r.Delete("/contact-forms/{id}", contactHandler.Delete)
		})
	})

	// --- HTTP server ---
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("STARTUP", fmt.Sprintf("Summit backend listening on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("STARTUP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("SHUTDOWN", "Shutdown signal received")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("SHUTDOWN", fmt.Sprintf("Server forced to shutdown: %v", err))
	}
	log.Info("SHUTDOWN", "Server exited gracefully")
}
