package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vj-tring/SalesBoostAI-V1/internal/ai"
	"github.com/vj-tring/SalesBoostAI-V1/internal/commerce"
	"github.com/vj-tring/SalesBoostAI-V1/internal/config"
	"github.com/vj-tring/SalesBoostAI-V1/internal/handler"
	"github.com/vj-tring/SalesBoostAI-V1/internal/jobs"
	"github.com/vj-tring/SalesBoostAI-V1/internal/metrics"
	"github.com/vj-tring/SalesBoostAI-V1/internal/middleware"
	"github.com/vj-tring/SalesBoostAI-V1/internal/redis"
	"github.com/vj-tring/SalesBoostAI-V1/internal/service"
	"github.com/vj-tring/SalesBoostAI-V1/internal/sse"
	"github.com/vj-tring/SalesBoostAI-V1/internal/store"
	"github.com/vj-tring/SalesBoostAI-V1/internal/webhook"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("ENVIRONMENT") == "production"
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	appMetrics := metrics.Registry("salesboost")
	st := store.New()

	broker := sse.NewBroker(redisClient)
	defer broker.Close()

	dispatcher := webhook.NewDispatcher(st, appMetrics)
	aiClient := ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, appMetrics)
	commerceClient := commerce.NewClient(cfg.CommerceAPIURL, cfg.CommerceAPIKey)

	chatService := service.NewChatService(st, aiClient, dispatcher, broker, appMetrics)
	productService := service.NewProductService(st, commerceClient, appMetrics)
	orderService := service.NewOrderService(st, commerceClient, dispatcher, broker)
	webhookService := service.NewWebhookService(st, dispatcher)

	rateLimiter := service.NewRateLimiter(redisClient.Client)
	chatRateLimit := middleware.NewChatRateLimitMiddleware(
		rateLimiter, cfg.ChatRateLimitPerMin, config.ChatRateLimitWindow,
	)
	signatureMiddleware := middleware.NewWebhookSignatureMiddleware()

	chatHandler := handler.NewChatHandler(chatService)
	conversationsHandler := handler.NewConversationsHandler(chatService)
	productsHandler := handler.NewProductsHandler(productService, st)
	ordersHandler := handler.NewOrdersHandler(orderService)
	recommendationsHandler := handler.NewRecommendationsHandler(chatService)
	webhooksHandler := handler.NewWebhooksHandler(webhookService)
	dashboardHandler := handler.NewDashboardHandler(st)
	eventsHandler := handler.NewEventsHandler(broker)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(middleware.BodyLimit)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Webhook-Signature", "X-Webhook-Secret"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(chatRateLimit.Handler).Mount("/chat", chatHandler.Routes())

		r.Route("/webhook", func(r chi.Router) {
			r.Use(signatureMiddleware.Handler)
			r.Post("/chat", chatHandler.Inbound)
		})

		r.Mount("/conversations", conversationsHandler.Routes())
		r.Mount("/products", productsHandler.Routes())
		r.Mount("/orders", ordersHandler.Routes())
		r.Mount("/recommendations", recommendationsHandler.Routes())
		r.Mount("/webhooks", webhooksHandler.Routes())
		r.Get("/metrics/business", dashboardHandler.Metrics)
		r.Get("/events", eventsHandler.ServeHTTP)
	})

	syncJob := jobs.NewSyncJob(productService, cfg.SyncInterval())
	if commerceClient.Enabled() {
		syncJob.Start()
		defer syncJob.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
