// Vitrina Scheduler — единственный процесс, который применяет
// запланированные переходы товаров.
//
// Scheduler:
//   - Раз в интервал (RUN_INTERVAL) запускает прогон назревших записей
//   - Принимает команды немедленного прогона из RabbitMQ
//   - Публикует отчёт каждого прогона
//
// Единственность пишущего процесса обеспечивается advisory lock в
// Postgres: второй экземпляр ждёт, пока первый не отпустит lock.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shaiso/Vitrina/internal/config"
	"github.com/shaiso/Vitrina/internal/domain"
	"github.com/shaiso/Vitrina/internal/executor"
	"github.com/shaiso/Vitrina/internal/mq"
	"github.com/shaiso/Vitrina/internal/repo"
	"github.com/shaiso/Vitrina/internal/runner"
	"github.com/shaiso/Vitrina/internal/scheduler"
	"github.com/shaiso/Vitrina/internal/telemetry"
)

const schedLockKey int64 = 727272

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vitrina_scheduler_runs_total",
		Help: "Total scheduler runs",
	}, []string{"trigger"})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vitrina_scheduler_transitions_total",
		Help: "Total transitions processed by the scheduler",
	}, []string{"result"})
)

// meteredRunner считает метрики поверх прогонов runner'а.
type meteredRunner struct {
	inner *runner.Runner
}

func (m *meteredRunner) Run(ctx context.Context, now time.Time, manual bool) (*domain.RunReport, error) {
	report, err := m.inner.Run(ctx, now, manual)
	if err != nil {
		return nil, err
	}

	trigger := "periodic"
	if manual {
		trigger = "manual"
	}
	runsTotal.WithLabelValues(trigger).Inc()
	transitionsTotal.WithLabelValues("succeeded").Add(float64(len(report.Succeeded)))
	transitionsTotal.WithLabelValues("failed").Add(float64(len(report.Failed)))

	return report, nil
}

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting vitrina-scheduler")

	if err := config.LoadEnv(); err != nil {
		logger.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load(context.Background())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// DB pool
	pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
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

	// Режим деинсталляции: снести схему и выйти.
	if len(os.Args) > 1 && os.Args[1] == "uninstall" {
		uninstall(ctx, pool, logger)
		return
	}

	// Становимся единственным пишущим процессом
	if !acquireLock(ctx, pool, logger) {
		return
	}
	defer func() {
		_, _ = pool.Exec(context.Background(), "select pg_advisory_unlock($1)", schedLockKey)
	}()

	// RabbitMQ
	mqConn, err := mq.NewConnection(cfg.AMQPURL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer mqConn.Close()
	if err := mq.SetupTopology(ctx, mqConn); err != nil {
		logger.Error("failed to setup topology", "error", err)
		os.Exit(1)
	}
	publisher := mq.NewPublisher(mqConn, logger)

	// Собираем конвейер: репозитории → executor → runner → trigger
	productRepo := repo.NewProductRepo(pool)
	scheduleRepo := repo.NewScheduleRepo(pool)
	reportRepo := repo.NewReportRepo(pool)

	exec := executor.New(productRepo, logger)
	run := runner.New(scheduleRepo, exec, reportRepo, publisher, logger)
	trigger := scheduler.NewTrigger(&meteredRunner{inner: run}, logger)

	if err := trigger.EnsureArmed(cfg.RunInterval); err != nil {
		logger.Error("failed to arm periodic trigger", "error", err)
		os.Exit(1)
	}
	defer trigger.Stop()

	// Команды немедленного прогона из очереди
	consumer := mq.NewConsumer(mqConn, logger, mq.ConsumerConfig{
		Queue: string(mq.QueueSchedulerTrigger),
		Handler: func(ctx context.Context, msg *mq.Delivery) error {
			payload, err := mq.ParsePayload[mq.RunTriggerPayload](&msg.Message)
			if err != nil {
				return fmt.Errorf("parse trigger payload: %w", err)
			}
			logger.Info("manual run requested", "requested_by", payload.RequestedBy)
			trigger.FireManual(ctx)
			return nil
		},
	})
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("consumer stopped", "error", err)
			cancel()
		}
	}()

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.SchedPort)
	go func() {
		logger.Info("listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	consumer.Stop()
	<-trigger.Stop().Done()
	logger.Info("vitrina-scheduler stopped")
}

// acquireLock ждёт advisory lock единственного пишущего процесса.
// Возвращает false, если ожидание прервано сигналом завершения.
func acquireLock(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) bool {
	for {
		var ok bool
		if err := pool.QueryRow(ctx, "select pg_try_advisory_lock($1)", schedLockKey).Scan(&ok); err != nil {
			logger.Error("advisory lock query failed", "error", err)
			return false
		}
		if ok {
			logger.Info("acquired scheduler lock")
			return true
		}

		logger.Info("another scheduler instance holds the lock, waiting")
		select {
		case <-ctx.Done():
			return false
		case <-time.After(5 * time.Second):
		}
	}
}

// uninstall сносит схему вместе с данными, если это явно разрешено
// настройкой delete_data_on_uninstall.
func uninstall(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) {
	settingsRepo := repo.NewSettingsRepo(pool)

	allowed, err := settingsRepo.DeleteDataOnUninstall(ctx)
	if err != nil {
		logger.Error("failed to read uninstall setting", "error", err)
		os.Exit(1)
	}
	if !allowed {
		logger.Info("delete_data_on_uninstall is not enabled, keeping all data")
		return
	}

	if err := repo.Teardown(pool); err != nil {
		logger.Error("failed to drop schema", "error", err)
		os.Exit(1)
	}
	logger.Info("schema dropped, all data deleted")
}
