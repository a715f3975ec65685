package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shaiso/Vitrina/internal/api"
	"github.com/shaiso/Vitrina/internal/config"
	"github.com/shaiso/Vitrina/internal/mq"
	"github.com/shaiso/Vitrina/internal/repo"
	"github.com/shaiso/Vitrina/internal/telemetry"
)

var (
	startTime = time.Now()
	reqTotal  = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vitrina_api_http_requests_total",
		Help: "Total HTTP requests handled by vitrina_api",
	})
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting vitrina-api")

	if err := config.LoadEnv(); err != nil {
		logger.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load(context.Background())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Подключаемся к базе данных
	pool, err := repo.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Накатываем миграции (идемпотентно)
	if err := repo.Migrate(pool); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// RabbitMQ: через него уходит команда немедленного прогона
	mqConn, err := mq.NewConnection(cfg.AMQPURL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer mqConn.Close()
	if err := mq.SetupTopology(context.Background(), mqConn); err != nil {
		logger.Error("failed to setup topology", "error", err)
		os.Exit(1)
	}
	publisher := mq.NewPublisher(mqConn, logger)

	// Создаём API handler
	handler := api.NewHandler(api.Config{
		ProductRepo:  repo.NewProductRepo(pool),
		ScheduleRepo: repo.NewScheduleRepo(pool),
		SettingsRepo: repo.NewSettingsRepo(pool),
		ReportRepo:   repo.NewReportRepo(pool),
		Publisher:    publisher,
		Logger:       logger,
		HostTimezone: config.HostTimezone(),
	})

	mux := http.NewServeMux()

	// Health и metrics
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		reqTotal.Inc()
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime))
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Регистрируем API маршруты
	handler.RegisterRoutes(mux)

	addr := fmt.Sprintf(":%d", cfg.APIPort)

	// Создаём HTTP сервер с возможностью graceful shutdown
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Запускаем сервер в горутине
	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Ожидаем сигнал завершения
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()
	logger.Info("shutting down")

	// Graceful shutdown с таймаутом 10 секунд
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}
