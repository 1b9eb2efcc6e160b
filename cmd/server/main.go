package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brl-rate-service/internal/adapter/cache"
	httpRouter "brl-rate-service/internal/adapter/http"
	"brl-rate-service/internal/adapter/repository"
	"brl-rate-service/internal/adapter/store"
	"brl-rate-service/internal/config"
	"brl-rate-service/internal/domain/model"
	"brl-rate-service/internal/domain/ports"
	"brl-rate-service/internal/metrics"
	"brl-rate-service/internal/service"
	"brl-rate-service/pkg/logger"
	"brl-rate-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	convert := flag.Bool("convert", false, "perform one conversion and exit")
	from := flag.String("from", model.HomeSymbol, "currency to convert from")
	to := flag.String("to", "USD", "currency to convert to")
	amount := flag.Float64("amount", 1, "amount to convert")
	date := flag.String("date", utils.Today(time.Now()), "quote date (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting BRL rate service")

	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)

	kv, closeStore, err := openStore(context.Background(), cfg.Store, log)
	if err != nil {
		log.Error("Failed to open store", "error", err, "backend", cfg.Store.Backend)
		os.Exit(1)
	}
	defer closeStore()

	rateRepo := repository.NewLoggingRepository(log, appMetrics, repository.NewBrasilAPI(
		cfg.RatesAPI.BaseURL,
		cfg.RatesAPI.FlagsURL,
		cfg.RatesAPI.Timeout,
		log,
	))
	rateCache := cache.NewHistoryCache(kv, log)

	exchangeService := service.NewExchangeService(rateRepo, rateCache, appMetrics, log)
	directoryService := service.NewDirectoryService(rateRepo, kv, cfg.HomeCurrencyName, log)

	if *convert {
		if err := runConversion(exchangeService, model.ConversionRequest{From: *from, To: *to, Amount: *amount, Date: *date}); err != nil {
			log.Error("Conversion failed", "error", err)
			closeStore()
			os.Exit(1)
		}
		return
	}

	warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.RatesAPI.Timeout)
	if currencies, err := directoryService.GetOrFetch(warmCtx); err != nil {
		log.Warn("Failed to warm currency directory", "error", err)
	} else {
		log.Info("Currency directory ready", "count", len(currencies))
	}
	cancelWarm()

	handler := httpRouter.NewHandler(exchangeService, directoryService, log, appMetrics)
	router := httpRouter.NewRouter(handler, log, appMetrics, prometheus.DefaultGatherer)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}

// openStore returns the configured key-value backend and a function that
// releases it.
func openStore(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (ports.KeyValueStore, func(), error) {
	switch cfg.Backend {
	case config.StoreRedis:
		rs := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, err
		}
		log.Info("Using redis store", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return rs, func() { _ = rs.Close() }, nil
	case config.StorePostgres:
		ps, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using postgres store")
		return ps, ps.Close, nil
	default:
		log.Info("Using in-memory store")
		return store.NewMemoryStore(), func() {}, nil
	}
}

func runConversion(exchange ports.ExchangeService, request model.ConversionRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := exchange.Convert(ctx, request)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
