package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eticket-service/internal/domain/repository"
	"eticket-service/internal/infrastructure/cache"
	"eticket-service/internal/infrastructure/config"
	"eticket-service/internal/infrastructure/oauth"
	"eticket-service/internal/infrastructure/persistence"
	"eticket-service/internal/infrastructure/ratelimit"
	"eticket-service/internal/infrastructure/router"
	"eticket-service/internal/interface/api"
	"eticket-service/internal/interface/gmail"
	repo "eticket-service/internal/interface/repository"
	"eticket-service/internal/usecase"
	"eticket-service/pkg/eticket"
	"eticket-service/pkg/logger"
	"eticket-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	log := logger.NewLoggerWithLevel(cfg.Debug)
	defer log.Sync()
	log.Info("Starting E-Ticket Service", "version", cfg.AppVersion)

	var rules *config.ParserRules
	if cfg.ParserRulesFile != "" {
		rules, err = config.LoadParserRules(cfg.ParserRulesFile)
		if err != nil {
			log.Fatal("Failed to load parser rules", "error", err)
		}
		log.Info("Loaded parser rules", "file", cfg.ParserRulesFile)
	}
	parser := eticket.NewParser(cfg.ParserConfig(rules))
	appMetrics := metrics.NewMetrics("eticket")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("Connecting to MongoDB")
	db, err := persistence.NewMongoDatabase(ctx, persistence.MongoConfig{
		URI:         cfg.MongoURI,
		Database:    cfg.MongoDB,
		Username:    cfg.MongoUser,
		Password:    cfg.MongoPassword,
		MaxPoolSize: uint64(cfg.WorkerCount * 4),
	})
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	emailRepo := repo.NewMongoEmailRepository(db, log)
	ticketRepo := repo.NewMongoTicketRecordRepository(db, log)

	// Airline names are optional enrichment
	var airlineRepo repository.AirlineRepository
	if cfg.PostgresDSN != "" {
		gormDB, err := persistence.NewPostgresDB(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepo = repo.NewGormAirlineRepository(gormDB)
	} else {
		log.Warn("POSTGRES_DSN not set, airline names will not be enriched")
	}

	processor := usecase.NewTicketProcessor(parser, emailRepo, ticketRepo, airlineRepo, appMetrics, log)

	subjectRouter := router.NewSubjectRouter(log)
	subjectRouter.Register(usecase.NewTicketHandlerAdapter(processor, "ticket", cfg.GmailSubjectPatterns))
	orchestrator := usecase.NewEmailOrchestrator(emailRepo, subjectRouter, cfg.WorkerCount, log)

	if cfg.GmailRefreshToken != "" {
		gmailOAuth := oauth.NewGmailOAuth(
			cfg.GmailClientID,
			cfg.GmailClientSecret,
			cfg.GmailRefreshToken,
			log,
		)

		gmailService, err := gmail.NewGmailService(ctx, gmailOAuth.GetTokenSource(ctx), emailRepo, orchestrator, cfg.GmailSubjectPatterns, log, cfg.GmailPollInterval)
		if err != nil {
			log.Fatal("Failed to create Gmail service", "error", err)
		}
		go gmailService.StartPolling(ctx)
	} else {
		log.Warn("GMAIL_REFRESH_TOKEN not set, mailbox polling disabled")
	}

	// Sweep emails left PENDING or stuck in PROCESSING
	go func() {
		processTicker := time.NewTicker(cfg.ProcessInterval)
		defer processTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Email processor stopped")
				return
			case <-processTicker.C:
				if err := orchestrator.ProcessPendingEmails(ctx); err != nil {
					log.Error("Error processing emails", "error", err)
				}
			}
		}
	}()

	var parseCache cache.Cache
	if cfg.RedisEnabled {
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		parseCache = redisCache
		log.Info("Redis parse cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.RedisTTL)
	} else {
		parseCache = cache.NewNoOpCache()
	}
	defer parseCache.Close()

	limiter := ratelimit.NewClientLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.APIRateLimit,
		BurstSize:         cfg.APIRateBurst,
	})
	ticketHandler := api.NewTicketHandler(parser, parseCache, ticketRepo, appMetrics, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(ticketHandler, limiter, promhttp.Handler()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // stops polling and the sweeper

	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("E-Ticket Service stopped")
}
