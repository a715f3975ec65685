package api

import (
	"context"
	"log/slog"

	"github.com/shaiso/Vitrina/internal/localtime"
	"github.com/shaiso/Vitrina/internal/repo"
)

// TriggerPublisher публикует команду немедленного прогона.
//
// Реализация: mq.Publisher.
type TriggerPublisher interface {
	PublishRunTrigger(ctx context.Context, requestedBy string) error
}

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	productRepo  *repo.ProductRepo
	scheduleRepo *repo.ScheduleRepo
	settingsRepo *repo.SettingsRepo
	reportRepo   *repo.ReportRepo
	publisher    TriggerPublisher
	logger       *slog.Logger

	// hostTimezone — таймзона хоста (TZ), последнее звено цепочки
	// разрешения таймзон перед UTC.
	hostTimezone string
}

// Config — конфигурация для создания Handler.
type Config struct {
	ProductRepo  *repo.ProductRepo
	ScheduleRepo *repo.ScheduleRepo
	SettingsRepo *repo.SettingsRepo
	ReportRepo   *repo.ReportRepo
	Publisher    TriggerPublisher
	Logger       *slog.Logger
	HostTimezone string
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		productRepo:  cfg.ProductRepo,
		scheduleRepo: cfg.ScheduleRepo,
		settingsRepo: cfg.SettingsRepo,
		reportRepo:   cfg.ReportRepo,
		publisher:    cfg.Publisher,
		logger:       cfg.Logger,
		hostTimezone: cfg.HostTimezone,
	}
}

// resolveZone возвращает эффективную таймзону для товара с данным
// override (пустой — не задан).
func (h *Handler) resolveZone(ctx context.Context, override string) (string, error) {
	processDefault, err := h.settingsRepo.DefaultTimezone(ctx)
	if err != nil {
		return "", err
	}
	return localtime.Resolve(override, processDefault, h.hostTimezone), nil
}
